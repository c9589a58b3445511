package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
	"github.com/dmitrijs2005/eatsbalance/internal/client/securestore"
)

var errBoom = errors.New("boom")

type memPrefs struct {
	mu     sync.Mutex
	values map[string]string
	SetErr error
}

func newMemPrefs() *memPrefs { return &memPrefs{values: map[string]string{}} }

func (m *memPrefs) Preferences(_ context.Context) (models.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := models.DefaultPreferences()
	if v, ok := m.values[securestore.KeyCalorieGoal]; ok {
		p.CalorieGoal, _ = strconv.Atoi(v)
	}
	if v, ok := m.values[securestore.KeyNotificationsEnabled]; ok {
		p.NotificationsEnabled, _ = strconv.ParseBool(v)
	}
	if v, ok := m.values[securestore.KeyDarkMode]; ok {
		p.DarkMode, _ = strconv.ParseBool(v)
	}
	if v, ok := m.values[securestore.KeyDietType]; ok {
		p.DietType = v
	}
	return p, nil
}

func (m *memPrefs) GetString(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memPrefs) SetString(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	return nil
}

func (m *memPrefs) SetInt(ctx context.Context, key string, v int) error {
	return m.SetString(ctx, key, strconv.Itoa(v))
}

func (m *memPrefs) SetBool(ctx context.Context, key string, v bool) error {
	return m.SetString(ctx, key, strconv.FormatBool(v))
}

type fakeReminder struct {
	Scheduled   bool
	Hour        int
	Minute      int
	Cancels     int
	ScheduleErr error
}

func (r *fakeReminder) ScheduleDailyReminder(hour, minute int) error {
	if r.ScheduleErr != nil {
		return r.ScheduleErr
	}
	r.Scheduled, r.Hour, r.Minute = true, hour, minute
	return nil
}

func (r *fakeReminder) CancelDailyReminder() {
	r.Scheduled = false
	r.Cancels++
}

func (r *fakeReminder) NextRun() (time.Time, bool) { return time.Time{}, r.Scheduled }

type fakeCamera struct {
	Path string
	Err  error
}

func (c *fakeCamera) CapturePhoto(context.Context) (string, error) { return c.Path, c.Err }

type fakeRecorder struct {
	Path      string
	recording bool
	StopErr   error
}

func (r *fakeRecorder) StartRecording(context.Context) (string, error) {
	r.recording = true
	return r.Path, nil
}

func (r *fakeRecorder) StopRecording() (string, error) {
	if r.StopErr != nil {
		return "", r.StopErr
	}
	r.recording = false
	return r.Path, nil
}

func (r *fakeRecorder) IsRecording() bool { return r.recording }

type fakePlayer struct{ LastPath string }

func (p *fakePlayer) Play(_ context.Context, path string) error {
	p.LastPath = path
	return nil
}

func (p *fakePlayer) Stop() error { return nil }

type fakeSpeaker struct{ Said []string }

func (s *fakeSpeaker) Speak(_ context.Context, text string) error {
	s.Said = append(s.Said, text)
	return nil
}

type fakeUploader struct {
	Prefix string
	Err    error
	Calls  []string
}

func (u *fakeUploader) Upload(_ context.Context, path string) (string, error) {
	u.Calls = append(u.Calls, path)
	if u.Err != nil {
		return "", u.Err
	}
	return u.Prefix + path, nil
}
