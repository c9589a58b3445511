package cli

import (
	"context"
	"fmt"
)

// Photo captures a picture and attaches it to the next meal. A failed
// upload still attaches the local file.
func (a *App) Photo(ctx context.Context) error {
	local, attach, err := a.media.CapturePhoto(ctx)
	if attach == "" {
		return a.fail(err)
	}
	if err != nil {
		fmt.Fprintln(a.out, "Upload failed, keeping the local file")
	}

	a.pendingPhoto = attach
	fmt.Fprintf(a.out, "Photo saved to %s, it will be attached to the next meal\n", local)
	return nil
}

func (a *App) Record(ctx context.Context) error {
	path, err := a.media.StartRecording(ctx)
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "Recording to %s, type 'stop' to finish\n", path)
	return nil
}

// Stop ends the voice note and attaches it to the next meal.
func (a *App) Stop(ctx context.Context) error {
	local, attach, err := a.media.StopRecording(ctx)
	if attach == "" {
		return a.fail(err)
	}
	if err != nil {
		fmt.Fprintln(a.out, "Upload failed, keeping the local file")
	}

	a.pendingAudio = attach
	a.lastAudio = local
	fmt.Fprintf(a.out, "Voice note saved to %s, it will be attached to the next meal\n", local)
	return nil
}

// Play plays path, or the last voice note when path is empty.
func (a *App) Play(ctx context.Context, path string) error {
	if path == "" {
		path = a.lastAudio
	}
	if path == "" {
		fmt.Fprintln(a.out, "Usage: play <path>")
		return nil
	}

	if err := a.media.Play(ctx, path); err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Playing %s\n", path)
	return nil
}

// Speak reads today's total aloud.
func (a *App) Speak(ctx context.Context) error {
	total := a.meals.Snapshot().TotalCalories
	if err := a.media.SpeakSummary(ctx, total, a.calorieGoal(ctx)); err != nil {
		return a.fail(err)
	}
	return nil
}
