package device

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrijs2005/eatsbalance/internal/logging"
)

const (
	ReminderTitle = "Have you logged your meal?"
	ReminderBody  = "Don't forget to log what you ate to keep an accurate track."
)

// CronReminder fires one daily notification. Scheduling again replaces the
// previous time.
type CronReminder struct {
	cron     *cron.Cron
	notifier Notifier
	log      logging.Logger

	mu    sync.Mutex
	entry cron.EntryID
	set   bool
}

var _ Reminder = (*CronReminder)(nil)

func NewCronReminder(n Notifier, log logging.Logger, opts ...cron.Option) *CronReminder {
	if log == nil {
		log = logging.NewNop()
	}
	r := &CronReminder{
		cron:     cron.New(opts...),
		notifier: n,
		log:      log.With("component", "reminder"),
	}
	r.cron.Start()
	return r
}

func (r *CronReminder) ScheduleDailyReminder(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("reminder: invalid time %02d:%02d", hour, minute)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.cron.AddFunc(fmt.Sprintf("%d %d * * *", minute, hour), r.Fire)
	if err != nil {
		return fmt.Errorf("reminder: %w", err)
	}
	if r.set {
		r.cron.Remove(r.entry)
	}
	r.entry, r.set = id, true

	r.log.Info(context.Background(), "daily reminder scheduled", "at", fmt.Sprintf("%02d:%02d", hour, minute))
	return nil
}

func (r *CronReminder) CancelDailyReminder() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.set {
		r.cron.Remove(r.entry)
		r.set = false
		r.log.Info(context.Background(), "daily reminder cancelled")
	}
}

// NextRun reports when the reminder fires next.
func (r *CronReminder) NextRun() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.set {
		return time.Time{}, false
	}
	e := r.cron.Entry(r.entry)
	if !e.Valid() {
		return time.Time{}, false
	}
	if e.Next.IsZero() {
		return e.Schedule.Next(time.Now()), true
	}
	return e.Next, true
}

// Fire sends the reminder now.
func (r *CronReminder) Fire() {
	ctx := context.Background()
	if err := r.notifier.Notify(ctx, ReminderTitle, ReminderBody); err != nil {
		r.log.Warn(ctx, "reminder notification failed", "error", err)
	}
}

// Stop halts the scheduler and waits for a running job.
func (r *CronReminder) Stop() {
	<-r.cron.Stop().Done()
}
