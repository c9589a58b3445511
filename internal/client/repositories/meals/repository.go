// Package meals is the domain-facing meal repository. RemoteRepository
// forwards every call to the transport client unchanged.
package meals

import (
	"context"

	"github.com/dmitrijs2005/eatsbalance/internal/client/client"
	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
)

type Repository interface {
	GetMeals(ctx context.Context) ([]models.Meal, error)
	GetMealByID(ctx context.Context, id int) (models.Meal, error)
	AddMeal(ctx context.Context, meal models.Meal) (models.MealResponse, error)
	DeleteMeal(ctx context.Context, id int) (models.MealResponse, error)
}

type RemoteRepository struct {
	client client.Client
}

var _ Repository = (*RemoteRepository)(nil)

func NewRemoteRepository(c client.Client) *RemoteRepository {
	return &RemoteRepository{client: c}
}

func (r *RemoteRepository) GetMeals(ctx context.Context) ([]models.Meal, error) {
	return r.client.GetMeals(ctx)
}

func (r *RemoteRepository) GetMealByID(ctx context.Context, id int) (models.Meal, error) {
	return r.client.GetMeal(ctx, id)
}

func (r *RemoteRepository) AddMeal(ctx context.Context, meal models.Meal) (models.MealResponse, error) {
	return r.client.AddMeal(ctx, meal)
}

func (r *RemoteRepository) DeleteMeal(ctx context.Context, id int) (models.MealResponse, error) {
	return r.client.DeleteMeal(ctx, id)
}
