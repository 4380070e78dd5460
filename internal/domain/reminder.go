package domain

import "context"

// Reminder is a daily nudge shown by the shell.
type Reminder struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Active  bool   `json:"active"`
}

// DefaultReminders is the set every new session starts with.
func DefaultReminders() []Reminder {
	return []Reminder{
		{ID: 1, Type: "hydration", Message: "Time to drink water!", Time: "10:00", Active: true},
		{ID: 2, Type: "calories", Message: "Log your lunch", Time: "13:00", Active: true},
		{ID: 3, Type: "exercise", Message: "Time for a quick workout!", Time: "17:00", Active: false},
	}
}

// ReminderRepository is the port for per-session reminders.
type ReminderRepository interface {
	ListReminders(ctx context.Context, sessionID string) ([]Reminder, error)
	SaveReminders(ctx context.Context, sessionID string, items []Reminder) error
}
