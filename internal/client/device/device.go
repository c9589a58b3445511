// Package device holds the capability interfaces the client uses for media
// and reminders, and desktop implementations of them.
//
// Camera, recorder, player and speaker run external programs described by
// command templates such as "fswebcam --no-banner {out}". Placeholders:
//
//	{out}   file the program must write
//	{in}    file the program reads
//	{text}  text to speak, passed as one argument
//
// The daily reminder is a cron job that calls a Notifier.
package device

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("not recording")
	ErrAlreadyPlaying   = errors.New("already playing")
	ErrNoOutput         = errors.New("command produced no file")
)

type Camera interface {
	// CapturePhoto takes a picture and returns the file it was written to.
	CapturePhoto(ctx context.Context) (string, error)
}

type Recorder interface {
	StartRecording(ctx context.Context) (string, error)
	// StopRecording ends the recording and returns its file.
	StopRecording() (string, error)
	IsRecording() bool
}

type Player interface {
	Play(ctx context.Context, path string) error
	Stop() error
}

type Speaker interface {
	Speak(ctx context.Context, text string) error
}

type Reminder interface {
	ScheduleDailyReminder(hour, minute int) error
	CancelDailyReminder()
	NextRun() (time.Time, bool)
}

type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
