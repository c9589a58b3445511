package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/eatsbalance/internal/client/client"
	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
	"github.com/dmitrijs2005/eatsbalance/internal/client/state"
	"github.com/dmitrijs2005/eatsbalance/internal/logging"
)

var errBoom = errors.New("boom")

// fakeServer is an in-memory meals.Repository.
type fakeServer struct {
	mu     sync.Mutex
	meals  []models.Meal
	nextID int
	added  []models.Meal
	GetErr error
	AddErr error
}

func (s *fakeServer) GetMeals(context.Context) ([]models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	return append([]models.Meal(nil), s.meals...), nil
}

func (s *fakeServer) GetMealByID(_ context.Context, id int) (models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.meals {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Meal{}, &client.StatusError{Op: "get_meal", StatusCode: 404, Message: "Meal not found"}
}

func (s *fakeServer) AddMeal(_ context.Context, meal models.Meal) (models.MealResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AddErr != nil {
		return models.MealResponse{}, s.AddErr
	}
	s.nextID++
	meal.ID = s.nextID
	s.added = append(s.added, meal)
	s.meals = append(s.meals, meal)
	return models.MealResponse{Success: true, Meal: &meal}, nil
}

func (s *fakeServer) DeleteMeal(_ context.Context, id int) (models.MealResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.meals {
		if m.ID == id {
			s.meals = append(s.meals[:i], s.meals[i+1:]...)
			break
		}
	}
	return models.MealResponse{Success: true}, nil
}

type fakeAuth struct {
	session  models.Session
	status   state.Status
	LoginErr error
	Restored models.Session
	logins   []models.Credentials
}

func (f *fakeAuth) Login(_ context.Context, creds models.Credentials) error {
	f.logins = append(f.logins, creds)
	if f.LoginErr != nil {
		return f.LoginErr
	}
	f.session = models.Session{Token: "tok", UserID: 1, UserEmail: creds.Email}
	return nil
}

func (f *fakeAuth) Register(ctx context.Context, creds models.Credentials) error {
	return f.Login(ctx, creds)
}

func (f *fakeAuth) Logout(context.Context) error {
	f.session = models.Session{}
	return nil
}

func (f *fakeAuth) Restore(context.Context) (models.Session, error) {
	f.session = f.Restored
	return f.Restored, nil
}

func (f *fakeAuth) Status() state.Status { return f.status }
func (f *fakeAuth) Session() models.Session { return f.session }

type fakeSettings struct {
	prefs        models.Preferences
	hour, minute int
	applied      int
	next         time.Time
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{prefs: models.DefaultPreferences(), hour: 20}
}

func (f *fakeSettings) Preferences(context.Context) (models.Preferences, error) { return f.prefs, nil }

func (f *fakeSettings) SetCalorieGoal(_ context.Context, goal int) error {
	if goal <= 0 {
		return &models.ValidationError{Problems: []string{"calorie goal must be greater than zero"}}
	}
	f.prefs.CalorieGoal = goal
	return nil
}

func (f *fakeSettings) SetNotifications(_ context.Context, on bool) error {
	f.prefs.NotificationsEnabled = on
	return nil
}

func (f *fakeSettings) ReminderTime(context.Context) (int, int, error) { return f.hour, f.minute, nil }

func (f *fakeSettings) SetReminderTime(_ context.Context, h, m int) error {
	f.hour, f.minute = h, m
	return nil
}

func (f *fakeSettings) NextReminder() (time.Time, bool) { return f.next, !f.next.IsZero() }

func (f *fakeSettings) SetDarkMode(_ context.Context, on bool) error {
	f.prefs.DarkMode = on
	return nil
}

func (f *fakeSettings) SetDietType(_ context.Context, diet string) error {
	f.prefs.DietType = strings.ToLower(strings.TrimSpace(diet))
	return nil
}

func (f *fakeSettings) ApplyReminder(context.Context) error {
	f.applied++
	return nil
}

type fakeMedia struct {
	Photo     string
	Audio     string
	UploadErr error
	CamErr    error
	played    []string
	spoken    [][2]int
	recording bool
}

func (f *fakeMedia) CapturePhoto(context.Context) (string, string, error) {
	if f.CamErr != nil {
		return "", "", f.CamErr
	}
	if f.UploadErr != nil {
		return f.Photo, f.Photo, f.UploadErr
	}
	return f.Photo, "s3://meals/" + f.Photo, nil
}

func (f *fakeMedia) StartRecording(context.Context) (string, error) {
	f.recording = true
	return f.Audio, nil
}

func (f *fakeMedia) StopRecording(context.Context) (string, string, error) {
	f.recording = false
	return f.Audio, f.Audio, nil
}

func (f *fakeMedia) Recording() bool { return f.recording }

func (f *fakeMedia) Play(_ context.Context, path string) error {
	f.played = append(f.played, path)
	return nil
}

func (f *fakeMedia) SpeakSummary(_ context.Context, total, goal int) error {
	f.spoken = append(f.spoken, [2]int{total, goal})
	return nil
}

type fakeGauges struct {
	mu              sync.Mutex
	count, calories int
	calls           int
}

func (g *fakeGauges) SetMealTotals(count, calories int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.count, g.calories = count, calories
	g.calls++
}

func (g *fakeGauges) get() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count, g.calories
}

type fixture struct {
	app      *App
	server   *fakeServer
	auth     *fakeAuth
	settings *fakeSettings
	media    *fakeMedia
	out      *bytes.Buffer
}

// newFixture builds an App over a real meal store. input feeds the prompts.
func newFixture(t *testing.T, input ...string) *fixture {
	t.Helper()

	f := &fixture{
		server:   &fakeServer{},
		auth:     &fakeAuth{},
		settings: newFakeSettings(),
		media:    &fakeMedia{Photo: "/data/photos/a.jpg", Audio: "/data/audio/b.wav"},
		out:      &bytes.Buffer{},
	}
	f.app = &App{
		auth:     f.auth,
		meals:    state.NewMealStore(f.server, nil),
		settings: f.settings,
		media:    f.media,
		log:      logging.NewNop(),
		reader:   rdr(strings.Join(input, "\n") + "\n"),
		out:      f.out,
	}

	origPw := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte("pw"), nil }
	t.Cleanup(func() { getPassword = origPw })

	origNow := nowFn
	nowFn = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 0, 0, time.Local) }
	t.Cleanup(func() { nowFn = origNow })

	return f
}

func (f *fixture) login() {
	f.auth.session = models.Session{Token: "tok", UserID: 1, UserEmail: "a@b.c"}
}

func (f *fixture) seed(meals ...models.Meal) {
	for _, m := range meals {
		f.server.nextID = max(f.server.nextID, m.ID)
	}
	f.server.meals = append(f.server.meals, meals...)
}

func meal(id int, name string, cal int) models.Meal {
	return models.Meal{ID: id, Name: name, Calories: cal, Description: name, NutritionRating: 3,
		Date: time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local).UnixMilli()}
}

func unreachable() error { return fmt.Errorf("%w: dial tcp: refused", client.ErrUnavailable) }
