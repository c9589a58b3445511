package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
)

type Client interface {
	Close() error
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	AddMeal(ctx context.Context, meal models.Meal) (models.MealResponse, error)
	GetMeals(ctx context.Context) ([]models.Meal, error)
	GetMeal(ctx context.Context, id int) (models.Meal, error)
	DeleteMeal(ctx context.Context, id int) (models.MealResponse, error)
}

// TokenSource supplies the current session token; "" means anonymous.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Observer is told about every request once it has finished.
type Observer interface {
	ObserveRequest(operation, outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, string, time.Duration) {}
