package state

import (
	"context"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/eatsbalance/internal/client/client"
	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
)

// fakeMeals is an in-memory meals API. Hooks run after the server state has
// been read, so a blocked GetMeals returns the list as it was when called.
type fakeMeals struct {
	mu     sync.Mutex
	server []models.Meal
	nextID int

	GetErr error
	AddErr error
	DelErr error

	GetCalls int
	AddCalls int
	DelCalls int

	GetHook func(ctx context.Context, call int)
	AddHook func(ctx context.Context, call int)
}

func newFakeMeals(initial ...models.Meal) *fakeMeals {
	f := &fakeMeals{nextID: 100}
	f.server = append(f.server, initial...)
	return f
}

func (f *fakeMeals) GetMeals(ctx context.Context) ([]models.Meal, error) {
	f.mu.Lock()
	f.GetCalls++
	call := f.GetCalls
	list := append([]models.Meal(nil), f.server...)
	err := f.GetErr
	hook := f.GetHook
	f.mu.Unlock()

	if hook != nil {
		hook(ctx, call)
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (f *fakeMeals) GetMealByID(_ context.Context, id int) (models.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.server {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Meal{}, &client.StatusError{Op: "get_meal", StatusCode: http.StatusNotFound, Message: "meal not found"}
}

func (f *fakeMeals) AddMeal(ctx context.Context, meal models.Meal) (models.MealResponse, error) {
	f.mu.Lock()
	f.AddCalls++
	call := f.AddCalls
	hook := f.AddHook
	f.mu.Unlock()

	if hook != nil {
		hook(ctx, call)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AddErr != nil {
		return models.MealResponse{}, f.AddErr
	}
	f.nextID++
	meal.ID = f.nextID
	f.server = append(f.server, meal)
	return models.MealResponse{Success: true, Message: "Meal added", Meal: &meal}, nil
}

func (f *fakeMeals) DeleteMeal(_ context.Context, id int) (models.MealResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DelCalls++
	if f.DelErr != nil {
		return models.MealResponse{}, f.DelErr
	}
	for i, m := range f.server {
		if m.ID == id {
			f.server = append(f.server[:i], f.server[i+1:]...)
			return models.MealResponse{Success: true, Message: "deleted", Meal: &m}, nil
		}
	}
	return models.MealResponse{Success: false, Message: "no such meal"}, nil
}

func (f *fakeMeals) set(fn func(f *fakeMeals)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeMeals) Server() []models.Meal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Meal(nil), f.server...)
}

// gate blocks a hook call until released.
type gate struct {
	entered chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gate) wait() {
	close(g.entered)
	<-g.release
}
