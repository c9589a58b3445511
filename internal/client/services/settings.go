// Package services contains the application services behind the CLI that
// are not part of the meal or auth state: user settings and device media.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eatsbalance/internal/client/config"
	"github.com/dmitrijs2005/eatsbalance/internal/client/device"
	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
	"github.com/dmitrijs2005/eatsbalance/internal/client/securestore"
	"github.com/dmitrijs2005/eatsbalance/internal/logging"
)

// PreferenceStore is the slice of securestore.Store the settings use.
type PreferenceStore interface {
	Preferences(ctx context.Context) (models.Preferences, error)
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string) error
	SetInt(ctx context.Context, key string, v int) error
	SetBool(ctx context.Context, key string, v bool) error
}

var _ PreferenceStore = (*securestore.Store)(nil)

type SettingsService struct {
	store           PreferenceStore
	reminder        device.Reminder
	defaultReminder string
	log             logging.Logger
}

// NewSettingsService uses defaultReminder ("HH:MM") until the user picks a
// reminder time.
func NewSettingsService(store PreferenceStore, reminder device.Reminder, defaultReminder string, log logging.Logger) *SettingsService {
	if log == nil {
		log = logging.NewNop()
	}
	return &SettingsService{store: store, reminder: reminder, defaultReminder: defaultReminder, log: log}
}

func (s *SettingsService) Preferences(ctx context.Context) (models.Preferences, error) {
	return s.store.Preferences(ctx)
}

func (s *SettingsService) SetCalorieGoal(ctx context.Context, goal int) error {
	if goal <= 0 {
		return &models.ValidationError{Problems: []string{"calorie goal must be greater than zero"}}
	}
	return s.store.SetInt(ctx, securestore.KeyCalorieGoal, goal)
}

func (s *SettingsService) SetDarkMode(ctx context.Context, on bool) error {
	return s.store.SetBool(ctx, securestore.KeyDarkMode, on)
}

func (s *SettingsService) SetDietType(ctx context.Context, diet string) error {
	diet = strings.ToLower(strings.TrimSpace(diet))
	if diet == "" {
		return &models.ValidationError{Problems: []string{"diet type is required"}}
	}
	return s.store.SetString(ctx, securestore.KeyDietType, diet)
}

// SetNotifications stores the flag and schedules or cancels the reminder.
func (s *SettingsService) SetNotifications(ctx context.Context, enabled bool) error {
	if err := s.store.SetBool(ctx, securestore.KeyNotificationsEnabled, enabled); err != nil {
		return err
	}
	return s.ApplyReminder(ctx)
}

// ReminderTime returns the stored reminder time, or the default.
func (s *SettingsService) ReminderTime(ctx context.Context) (hour, minute int, err error) {
	v, ok, err := s.store.GetString(ctx, securestore.KeyReminderTime)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		v = s.defaultReminder
	}
	return config.ParseClock(v)
}

func (s *SettingsService) SetReminderTime(ctx context.Context, hour, minute int) error {
	v := fmt.Sprintf("%02d:%02d", hour, minute)
	if _, _, err := config.ParseClock(v); err != nil {
		return &models.ValidationError{Problems: []string{err.Error()}}
	}
	if err := s.store.SetString(ctx, securestore.KeyReminderTime, v); err != nil {
		return err
	}
	return s.ApplyReminder(ctx)
}

// NextReminder reports when the reminder fires next, if it is scheduled.
func (s *SettingsService) NextReminder() (time.Time, bool) {
	return s.reminder.NextRun()
}

// ApplyReminder brings the scheduler in line with the stored settings.
func (s *SettingsService) ApplyReminder(ctx context.Context) error {
	prefs, err := s.store.Preferences(ctx)
	if err != nil {
		return err
	}

	if !prefs.NotificationsEnabled {
		s.reminder.CancelDailyReminder()
		return nil
	}

	h, m, err := s.ReminderTime(ctx)
	if err != nil {
		return err
	}
	if err := s.reminder.ScheduleDailyReminder(h, m); err != nil {
		return err
	}
	s.log.Debug(ctx, "reminder applied", "hour", h, "minute", m)
	return nil
}
