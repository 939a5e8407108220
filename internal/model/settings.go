package model

// Settings are user preferences carried inside the persisted snapshot.
// WorkingDays is captured for the user but deliberately not consulted by
// due-date math: periodicity counts calendar days.
type Settings struct {
	NotificationsEnabled       bool     `json:"notificationsEnabled"`
	EmailReminders             bool     `json:"emailReminders"`
	DefaultCommunicationPeriod int      `json:"defaultCommunicationPeriod"`
	WorkingDays                []string `json:"workingDays"`
}

// DefaultSettings returns the settings applied to a fresh state.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled:       true,
		EmailReminders:             false,
		DefaultCommunicationPeriod: 14,
		WorkingDays:                []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
	}
}
