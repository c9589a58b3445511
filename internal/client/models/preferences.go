package models

const (
	DefaultCalorieGoal          = 2000
	DefaultNotificationsEnabled = true
	DefaultDarkMode             = false
	DefaultDietType             = "balanced"
)

// Preferences survive logout.
type Preferences struct {
	CalorieGoal          int
	NotificationsEnabled bool
	DarkMode             bool
	DietType             string
}

func DefaultPreferences() Preferences {
	return Preferences{
		CalorieGoal:          DefaultCalorieGoal,
		NotificationsEnabled: DefaultNotificationsEnabled,
		DarkMode:             DefaultDarkMode,
		DietType:             DefaultDietType,
	}
}
