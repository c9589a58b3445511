package models

import (
	"strings"
	"time"
)

const (
	MinNutritionRating = 0
	MaxNutritionRating = 5
)

// Meal is one logged food entry. ID is 0 until the server assigns one; Date
// is in epoch milliseconds.
type Meal struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Calories        int    `json:"calories"`
	Description     string `json:"description"`
	Date            int64  `json:"date"`
	NutritionRating int    `json:"nutritionRating"`
	ImagePath       string `json:"imagePath,omitempty"`
	AudioPath       string `json:"audioPath,omitempty"`
}

// NewMeal builds a meal from form input, trimming text fields and stamping
// the current time.
func NewMeal(name string, calories int, description string, rating int, now time.Time) Meal {
	return Meal{
		Name:            strings.TrimSpace(name),
		Calories:        calories,
		Description:     strings.TrimSpace(description),
		Date:            now.UnixMilli(),
		NutritionRating: rating,
	}
}

func (m Meal) Validate() error {
	var p problems
	p.check(strings.TrimSpace(m.Name) != "", "name is required")
	p.check(m.Calories > 0, "calories must be greater than zero")
	p.check(strings.TrimSpace(m.Description) != "", "description is required")
	p.check(m.NutritionRating >= MinNutritionRating && m.NutritionRating <= MaxNutritionRating,
		"nutrition rating must be between 0 and 5")
	return p.err()
}

func (m Meal) Time() time.Time {
	return time.UnixMilli(m.Date)
}

// MealResponse is returned by POST /meal and DELETE /meal/{id}.
type MealResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Meal    *Meal  `json:"meal"`
}

// TotalCalories sums calories over meals.
func TotalCalories(meals []Meal) int {
	total := 0
	for _, m := range meals {
		total += m.Calories
	}
	return total
}
