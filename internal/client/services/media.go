package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eatsbalance/internal/client/device"
	"github.com/dmitrijs2005/eatsbalance/internal/client/media"
	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
	"github.com/dmitrijs2005/eatsbalance/internal/logging"
)

// MediaService captures meal media and hands back the path to store with
// the meal, uploaded when an uploader is configured.
type MediaService struct {
	camera   device.Camera
	recorder device.Recorder
	player   device.Player
	speaker  device.Speaker
	uploader media.Uploader
	log      logging.Logger
}

func NewMediaService(cam device.Camera, rec device.Recorder, pl device.Player, sp device.Speaker, up media.Uploader, log logging.Logger) *MediaService {
	if up == nil {
		up = media.LocalOnly{}
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &MediaService{camera: cam, recorder: rec, player: pl, speaker: sp, uploader: up, log: log.With("component", "media")}
}

// CapturePhoto returns the local file and the path to attach to a meal.
func (m *MediaService) CapturePhoto(ctx context.Context) (local, attach string, err error) {
	local, err = m.camera.CapturePhoto(ctx)
	if err != nil {
		return "", "", err
	}
	attach, err = m.upload(ctx, local)
	return local, attach, err
}

func (m *MediaService) StartRecording(ctx context.Context) (string, error) {
	return m.recorder.StartRecording(ctx)
}

// StopRecording returns the local file and the path to attach to a meal.
func (m *MediaService) StopRecording(ctx context.Context) (local, attach string, err error) {
	local, err = m.recorder.StopRecording()
	if err != nil {
		return "", "", err
	}
	attach, err = m.upload(ctx, local)
	return local, attach, err
}

func (m *MediaService) Recording() bool {
	return m.recorder.IsRecording()
}

func (m *MediaService) Play(ctx context.Context, path string) error {
	return m.player.Play(ctx, path)
}

func (m *MediaService) Speak(ctx context.Context, text string) error {
	return m.speaker.Speak(ctx, text)
}

// SpeakSummary reads the day's total against the goal.
func (m *MediaService) SpeakSummary(ctx context.Context, total, goal int) error {
	return m.speaker.Speak(ctx, SummaryText(total, goal))
}

// SpeakMeal reads one meal aloud.
func (m *MediaService) SpeakMeal(ctx context.Context, meal models.Meal) error {
	return m.speaker.Speak(ctx, fmt.Sprintf("%s, %d calories. %s", meal.Name, meal.Calories, meal.Description))
}

func SummaryText(total, goal int) string {
	switch {
	case goal <= 0:
		return fmt.Sprintf("You have eaten %d calories.", total)
	case total > goal:
		return fmt.Sprintf("You have eaten %d calories, %d over your goal of %d.", total, total-goal, goal)
	default:
		return fmt.Sprintf("You have eaten %d of %d calories, %d left.", total, goal, goal-total)
	}
}

func (m *MediaService) upload(ctx context.Context, local string) (string, error) {
	attach, err := m.uploader.Upload(ctx, local)
	if err != nil {
		m.log.Warn(ctx, "media upload failed, keeping local path", "file", local, "error", err)
		return local, err
	}
	return attach, nil
}
