package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
)

type mediaFixture struct {
	svc *MediaService
	cam *fakeCamera
	rec *fakeRecorder
	pl  *fakePlayer
	sp  *fakeSpeaker
	up  *fakeUploader
}

func newMedia() mediaFixture {
	f := mediaFixture{
		cam: &fakeCamera{Path: "/tmp/photo.jpg"},
		rec: &fakeRecorder{Path: "/tmp/note.wav"},
		pl:  &fakePlayer{},
		sp:  &fakeSpeaker{},
		up:  &fakeUploader{Prefix: "https://cdn.example.com"},
	}
	f.svc = NewMediaService(f.cam, f.rec, f.pl, f.sp, f.up, nil)
	return f
}

func TestMedia_CapturePhoto(t *testing.T) {
	f := newMedia()

	local, attach, err := f.svc.CapturePhoto(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/photo.jpg", local)
	assert.Equal(t, "https://cdn.example.com/tmp/photo.jpg", attach)
	assert.Equal(t, []string{"/tmp/photo.jpg"}, f.up.Calls)
}

func TestMedia_CapturePhoto_CameraError(t *testing.T) {
	f := newMedia()
	f.cam.Err = errBoom

	_, _, err := f.svc.CapturePhoto(context.Background())
	require.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.up.Calls)
}

func TestMedia_UploadFailureKeepsLocalPath(t *testing.T) {
	f := newMedia()
	f.up.Err = errBoom

	local, attach, err := f.svc.CapturePhoto(context.Background())
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, local, attach)
}

func TestMedia_Recording(t *testing.T) {
	f := newMedia()
	ctx := context.Background()

	path, err := f.svc.StartRecording(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/note.wav", path)
	assert.True(t, f.svc.Recording())

	local, attach, err := f.svc.StopRecording(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/note.wav", local)
	assert.Equal(t, "https://cdn.example.com/tmp/note.wav", attach)
	assert.False(t, f.svc.Recording())

	f.rec.StopErr = errBoom
	_, _, err = f.svc.StopRecording(ctx)
	require.ErrorIs(t, err, errBoom)
}

func TestMedia_PlayAndSpeak(t *testing.T) {
	f := newMedia()
	ctx := context.Background()

	require.NoError(t, f.svc.Play(ctx, "/tmp/note.wav"))
	assert.Equal(t, "/tmp/note.wav", f.pl.LastPath)

	require.NoError(t, f.svc.Speak(ctx, "hello"))
	require.NoError(t, f.svc.SpeakSummary(ctx, 500, 2000))
	require.NoError(t, f.svc.SpeakMeal(ctx, models.Meal{Name: "Toast", Calories: 200, Description: "Breakfast"}))
	assert.Equal(t, []string{
		"hello",
		"You have eaten 500 of 2000 calories, 1500 left.",
		"Toast, 200 calories. Breakfast",
	}, f.sp.Said)
}

func TestSummaryText(t *testing.T) {
	tests := []struct {
		total, goal int
		want        string
	}{
		{0, 2000, "You have eaten 0 of 2000 calories, 2000 left."},
		{2500, 2000, "You have eaten 2500 calories, 500 over your goal of 2000."},
		{300, 0, "You have eaten 300 calories."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SummaryText(tt.total, tt.goal))
	}
}

func TestMedia_NilUploaderIsLocal(t *testing.T) {
	svc := NewMediaService(&fakeCamera{Path: "/tmp/a.jpg"}, nil, nil, nil, nil, nil)
	_, attach, err := svc.CapturePhoto(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a.jpg", attach)
}
