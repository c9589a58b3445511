package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/eatsbalance/internal/client/client"
	"github.com/dmitrijs2005/eatsbalance/internal/client/config"
	"github.com/dmitrijs2005/eatsbalance/internal/client/device"
	"github.com/dmitrijs2005/eatsbalance/internal/client/media"
	"github.com/dmitrijs2005/eatsbalance/internal/client/metrics"
	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
	"github.com/dmitrijs2005/eatsbalance/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/eatsbalance/internal/client/repositories/meals"
	"github.com/dmitrijs2005/eatsbalance/internal/client/securestore"
	"github.com/dmitrijs2005/eatsbalance/internal/client/services"
	"github.com/dmitrijs2005/eatsbalance/internal/client/session"
	"github.com/dmitrijs2005/eatsbalance/internal/client/state"
	"github.com/dmitrijs2005/eatsbalance/internal/filex"
	"github.com/dmitrijs2005/eatsbalance/internal/logging"
)

const (
	storeFile   = "store.db"
	keyFileName = "device.key"
)

type authState interface {
	Login(ctx context.Context, creds models.Credentials) error
	Register(ctx context.Context, creds models.Credentials) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (models.Session, error)
	Status() state.Status
	Session() models.Session
}

type mealState interface {
	FetchMeals(ctx context.Context) error
	AddMeal(ctx context.Context, meal models.Meal) error
	DeleteMeal(ctx context.Context, id int) error
	Meal(ctx context.Context, id int) (models.Meal, error)
	Snapshot() state.Snapshot
	Subscribe() (<-chan state.Snapshot, func())
}

type settingsService interface {
	Preferences(ctx context.Context) (models.Preferences, error)
	SetCalorieGoal(ctx context.Context, goal int) error
	SetNotifications(ctx context.Context, enabled bool) error
	ReminderTime(ctx context.Context) (int, int, error)
	SetReminderTime(ctx context.Context, hour, minute int) error
	NextReminder() (time.Time, bool)
	SetDarkMode(ctx context.Context, on bool) error
	SetDietType(ctx context.Context, diet string) error
	ApplyReminder(ctx context.Context) error
}

type mediaService interface {
	CapturePhoto(ctx context.Context) (string, string, error)
	StartRecording(ctx context.Context) (string, error)
	StopRecording(ctx context.Context) (string, string, error)
	Recording() bool
	Play(ctx context.Context, path string) error
	SpeakSummary(ctx context.Context, total, goal int) error
}

type mealGauges interface {
	SetMealTotals(count, calories int)
}

type App struct {
	auth     authState
	meals    mealState
	settings settingsService
	media    mediaService
	gauges   mealGauges
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// serveMetrics is set when a metrics address is configured.
	serveMetrics func(ctx context.Context) error
	closers      []func() error

	// Media captured since the last add, attached to the next meal.
	pendingPhoto string
	pendingAudio string
	lastAudio    string
}

// NewApp opens the local store and builds the services from c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	a := &App{log: log, reader: bufio.NewReader(os.Stdin), out: os.Stdout}

	dataDir, err := filex.ExpandHome(c.DataDir)
	if err != nil {
		return nil, err
	}
	if dataDir, err = filex.EnsureDir(dataDir, ""); err != nil {
		return nil, err
	}
	photos, err := filex.EnsureDir(dataDir, "photos")
	if err != nil {
		return nil, err
	}
	audio, err := filex.EnsureDir(dataDir, "audio")
	if err != nil {
		return nil, err
	}

	db, err := securestore.OpenDatabase(ctx, filepath.Join(dataDir, storeFile))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	store, err := securestore.Open(ctx, db, keySource(c, dataDir))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, store.Close)

	sessions := session.NewManager(store)
	rec := metrics.NewRecorder()
	a.gauges = rec
	if c.MetricsAddr != "" {
		addr := c.MetricsAddr
		a.serveMetrics = func(ctx context.Context) error { return rec.Serve(ctx, addr) }
	}

	api, err := client.NewHTTPClient(c.ServerBaseURL,
		client.WithTokenSource(sessions),
		client.WithAuthHeader(c.AuthHeader, c.AuthScheme),
		client.WithObserver(rec),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, api.Close)

	a.auth = state.NewAuthStore(accounts.NewRemoteRepository(api), sessions, log)
	a.meals = state.NewMealStore(meals.NewRemoteRepository(api), log)

	reminder := device.NewCronReminder(device.NewWriterNotifier(a.out, log), log)
	a.closers = append(a.closers, func() error { reminder.Stop(); return nil })
	a.settings = services.NewSettingsService(store, reminder, c.ReminderTime, log)

	uploader, err := media.NewUploader(ctx, c.S3)
	if err != nil {
		a.Close()
		return nil, err
	}

	runner := device.ExecRunner{}
	a.media = services.NewMediaService(
		device.NewCommandCamera(runner, c.Devices.Camera, photos),
		device.NewCommandRecorder(runner, c.Devices.Recorder, audio),
		device.NewCommandPlayer(runner, c.Devices.Player),
		device.NewCommandSpeaker(runner, c.Devices.Speaker),
		uploader,
		log,
	)

	return a, nil
}

// keySource prefers the passphrase and falls back to a key file in the
// data directory.
func keySource(c *config.Config, dataDir string) securestore.KeySource {
	if c.StorePassphrase != "" {
		return securestore.Passphrase(c.StorePassphrase)
	}
	if c.KeyFile != "" {
		if p, err := filex.ExpandHome(c.KeyFile); err == nil {
			return securestore.KeyFile(p)
		}
	}
	return securestore.KeyFile(filepath.Join(dataDir, keyFileName))
}

// Run starts the background watchers and blocks in the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.watchMeals(ctx)

	if a.serveMetrics != nil {
		go func() {
			if err := a.serveMetrics(ctx); err != nil {
				a.log.Error(ctx, "metrics server stopped", "error", err)
			}
		}()
	}

	fmt.Fprintln(a.out, "Welcome to EatsBalance CLI (type 'help' for commands)")
	a.start(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// start restores the saved session and the reminder schedule.
func (a *App) start(ctx context.Context) {
	if err := a.settings.ApplyReminder(ctx); err != nil {
		a.log.Warn(ctx, "cannot schedule reminder", "error", err)
	}

	s, err := a.auth.Restore(ctx)
	if err != nil {
		a.log.Error(ctx, "cannot restore session", "error", err)
		return
	}
	if st := a.auth.Status(); st.Kind == state.LoggedOut && st.Message != "" {
		fmt.Fprintf(a.out, "Your %s, please login again\n", st.Message)
		return
	}
	if !s.Authenticated() {
		return
	}

	fmt.Fprintf(a.out, "Welcome back, %s\n", s.UserEmail)
	_ = a.List(ctx)
}

// Close releases the store, the API client and the reminder in reverse
// order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.auth.Session().Authenticated()
}

func (a *App) getStatus() string {
	s := a.auth.Session()
	if !s.Authenticated() {
		return ""
	}
	return fmt.Sprintf("(%s)", s.UserEmail)
}

// watchMeals logs meal store transitions and keeps the gauges current.
func (a *App) watchMeals(ctx context.Context) {
	ch, cancel := a.meals.Subscribe()
	defer cancel()

	var last state.Status
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			if a.gauges != nil {
				a.gauges.SetMealTotals(len(snap.Meals), snap.TotalCalories)
			}
			if snap.Status.Kind != last.Kind || snap.Status.Message != last.Message {
				a.log.Debug(ctx, "meal status changed", "from", last.String(), "to", snap.Status.String())
				last = snap.Status
			}
		}
	}
}

// fail prints the user-facing message for err.
func (a *App) fail(err error) error {
	fmt.Fprintln(a.out, "Error:", state.Describe(err))
	return err
}
