package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
)

const dateLayout = "2006-01-02 15:04"

// nowFn is a test seam for the meal timestamp.
var nowFn = time.Now

// List refreshes the meals from the server and prints them with the
// dashboard line. On failure the previous list is printed.
func (a *App) List(ctx context.Context) error {
	err := a.meals.FetchMeals(ctx)
	if err != nil {
		a.fail(err)
	}

	snap := a.meals.Snapshot()
	if len(snap.Meals) == 0 {
		fmt.Fprintln(a.out, "No meals logged yet")
	} else {
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tNAME\tKCAL\tRATING")
		for _, m := range snap.Meals {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", m.ID, m.Time().Format(dateLayout), m.Name, m.Calories, stars(m.NutritionRating))
		}
		tw.Flush()
	}

	a.printDashboard(ctx, snap.TotalCalories)
	return err
}

// Show fetches one meal from the server.
func (a *App) Show(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return a.fail(err)
	}

	m, err := a.meals.Meal(ctx, id)
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "#%d %s\n", m.ID, m.Name)
	fmt.Fprintf(a.out, "  Date:        %s\n", m.Time().Format(dateLayout))
	fmt.Fprintf(a.out, "  Calories:    %d kcal\n", m.Calories)
	fmt.Fprintf(a.out, "  Rating:      %s\n", stars(m.NutritionRating))
	fmt.Fprintf(a.out, "  Description: %s\n", m.Description)
	if m.ImagePath != "" {
		fmt.Fprintf(a.out, "  Photo:       %s\n", m.ImagePath)
	}
	if m.AudioPath != "" {
		fmt.Fprintf(a.out, "  Voice note:  %s\n", m.AudioPath)
	}
	return nil
}

// Add prompts for a meal, attaches pending media and sends it.
func (a *App) Add(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Meal name", a.out)
	if err != nil {
		return err
	}
	calories, err := GetNumber(a.reader, "Calories", 0, a.out)
	if err != nil {
		return a.fail(err)
	}
	desc, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	rating, err := GetNumber(a.reader, fmt.Sprintf("Nutrition rating %d-%d (Enter for %d)",
		models.MinNutritionRating, models.MaxNutritionRating, models.MinNutritionRating), models.MinNutritionRating, a.out)
	if err != nil {
		return a.fail(err)
	}

	meal := models.NewMeal(name, calories, desc, rating, nowFn())
	meal.ImagePath = a.pendingPhoto
	meal.AudioPath = a.pendingAudio

	if err := a.meals.AddMeal(ctx, meal); err != nil {
		return a.fail(err)
	}

	a.pendingPhoto, a.pendingAudio = "", ""
	fmt.Fprintln(a.out, "Meal added")
	a.printDashboard(ctx, a.meals.Snapshot().TotalCalories)
	return nil
}

func (a *App) Delete(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return a.fail(err)
	}

	if err := a.meals.DeleteMeal(ctx, id); err != nil {
		return a.fail(err)
	}

	fmt.Fprintln(a.out, "Meal deleted")
	a.printDashboard(ctx, a.meals.Snapshot().TotalCalories)
	return nil
}

// Total prints the dashboard line for the meals already loaded.
func (a *App) Total(ctx context.Context) error {
	a.printDashboard(ctx, a.meals.Snapshot().TotalCalories)
	return nil
}

func (a *App) calorieGoal(ctx context.Context) int {
	prefs, err := a.settings.Preferences(ctx)
	if err != nil {
		a.log.Warn(ctx, "cannot read preferences", "error", err)
		return models.DefaultCalorieGoal
	}
	return prefs.CalorieGoal
}

func (a *App) printDashboard(ctx context.Context, total int) {
	fmt.Fprintf(a.out, "Total: %d kcal (goal %d kcal)\n", total, a.calorieGoal(ctx))
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || id <= 0 {
		return 0, &models.ValidationError{Problems: []string{fmt.Sprintf("invalid meal id %q", s)}}
	}
	return id, nil
}

func stars(rating int) string {
	rating = min(max(rating, models.MinNutritionRating), models.MaxNutritionRating)
	return strings.Repeat("*", rating) + strings.Repeat(".", models.MaxNutritionRating-rating)
}
