package app

import (
	"context"
	"errors"
	"fmt"

	"healthmetrics/internal/domain"
)

// ErrReminderNotFound is returned when toggling an unknown reminder.
var ErrReminderNotFound = errors.New("reminder not found")

// ReminderService manages the per-session reminder list.
type ReminderService struct {
	repo domain.ReminderRepository
}

// NewReminderService creates a ReminderService backed by repo.
func NewReminderService(repo domain.ReminderRepository) *ReminderService {
	return &ReminderService{repo: repo}
}

// List returns the session's reminders, seeding the defaults on first use.
func (s *ReminderService) List(ctx context.Context, sessionID string) ([]domain.Reminder, error) {
	items, err := s.repo.ListReminders(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	items = domain.DefaultReminders()
	if err := s.repo.SaveReminders(ctx, sessionID, items); err != nil {
		return nil, fmt.Errorf("seed reminders: %w", err)
	}
	return items, nil
}

// Toggle flips the Active flag of reminder id and returns the updated
// reminder.
func (s *ReminderService) Toggle(ctx context.Context, sessionID string, id int64) (*domain.Reminder, error) {
	items, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Active = !items[i].Active
		if err := s.repo.SaveReminders(ctx, sessionID, items); err != nil {
			return nil, err
		}
		r := items[i]
		return &r, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrReminderNotFound, id)
}
