package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/eatsbalance/internal/client/config"
	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
)

func (a *App) Settings(ctx context.Context) error {
	prefs, err := a.settings.Preferences(ctx)
	if err != nil {
		return a.fail(err)
	}
	h, m, err := a.settings.ReminderTime(ctx)
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "Calorie goal:  %d kcal\n", prefs.CalorieGoal)
	fmt.Fprintf(a.out, "Diet type:     %s\n", prefs.DietType)
	fmt.Fprintf(a.out, "Dark mode:     %s\n", onOff(prefs.DarkMode))
	fmt.Fprintf(a.out, "Notifications: %s (daily at %02d:%02d)\n", onOff(prefs.NotificationsEnabled), h, m)
	if next, ok := a.settings.NextReminder(); ok {
		fmt.Fprintf(a.out, "Next reminder: %s\n", next.Format(dateLayout))
	}
	return nil
}

func (a *App) Goal(ctx context.Context, value string) error {
	goal, err := parseNumber(value)
	if err != nil {
		return a.fail(err)
	}
	if err := a.settings.SetCalorieGoal(ctx, goal); err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "Calorie goal set to %d kcal\n", goal)
	return nil
}

// Notify switches the daily reminder; args are "on|off" and an optional
// "hh:mm".
func (a *App) Notify(ctx context.Context, args []string) error {
	on, err := parseOnOff(args[0])
	if err != nil {
		return a.fail(err)
	}

	if len(args) > 1 {
		h, m, err := config.ParseClock(args[1])
		if err != nil {
			return a.fail(&models.ValidationError{Problems: []string{err.Error()}})
		}
		if err := a.settings.SetReminderTime(ctx, h, m); err != nil {
			return a.fail(err)
		}
	}

	if err := a.settings.SetNotifications(ctx, on); err != nil {
		return a.fail(err)
	}

	if on {
		h, m, _ := a.settings.ReminderTime(ctx)
		fmt.Fprintf(a.out, "Daily reminder at %02d:%02d\n", h, m)
	} else {
		fmt.Fprintln(a.out, "Daily reminder off")
	}
	return nil
}

func (a *App) DarkMode(ctx context.Context, value string) error {
	on, err := parseOnOff(value)
	if err != nil {
		return a.fail(err)
	}
	if err := a.settings.SetDarkMode(ctx, on); err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "Dark mode %s\n", onOff(on))
	return nil
}

func (a *App) Diet(ctx context.Context, value string) error {
	if err := a.settings.SetDietType(ctx, value); err != nil {
		return a.fail(err)
	}

	prefs, err := a.settings.Preferences(ctx)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Diet type set to %s\n", prefs.DietType)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "yes", "true":
		return true, nil
	case "off", "no", "false":
		return false, nil
	}
	return false, &models.ValidationError{Problems: []string{fmt.Sprintf("want on or off, got %q", s)}}
}

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &models.ValidationError{Problems: []string{fmt.Sprintf("%q is not a number", s)}}
	}
	return n, nil
}
