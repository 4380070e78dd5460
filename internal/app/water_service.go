package app

import (
	"context"
	"errors"
	"time"

	"healthmetrics/internal/domain"
)

// ErrNoReport is returned when a hydration goal is requested before any
// report has been recorded.
var ErrNoReport = errors.New("no report recorded yet")

const (
	maxWaterDeltaMl    = 5000
	defaultRecentWater = 20
)

// WaterService encapsulates hydration-log use cases.
type WaterService struct {
	repo    domain.WaterRepository
	history domain.HistoryRepository
}

// NewWaterService creates a WaterService backed by the given repositories.
// The history repository supplies the daily target.
func NewWaterService(repo domain.WaterRepository, history domain.HistoryRepository) *WaterService {
	return &WaterService{repo: repo, history: history}
}

// WaterStatus compares the day's intake with the recommended target.
type WaterStatus struct {
	Day         string `json:"day"`
	TotalMl     int    `json:"totalMl"`
	GoalMl      int    `json:"goalMl"`
	RemainingMl int    `json:"remainingMl"`
	GoalMet     bool   `json:"goalMet"`
}

// Status returns today's intake against the newest report's target. It
// returns ErrNoReport if the session has no report yet.
func (s *WaterService) Status(ctx context.Context, sessionID string, today string) (*WaterStatus, error) {
	total, err := s.repo.WaterTotalForLocalDay(ctx, sessionID, today)
	if err != nil {
		return nil, err
	}
	latest, err := s.history.LatestHistoryEntry(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return &WaterStatus{Day: today, TotalMl: total}, ErrNoReport
	}
	goal := latest.Report.WaterIntakeMl
	remaining := goal - total
	if remaining < 0 {
		remaining = 0
	}
	return &WaterStatus{Day: today, TotalMl: total, GoalMl: goal, RemainingMl: remaining, GoalMet: total >= goal}, nil
}

// RecordEvent validates and stores a water intake event.
func (s *WaterService) RecordEvent(ctx context.Context, sessionID string, deltaMl int) (int64, error) {
	if deltaMl == 0 || deltaMl < -maxWaterDeltaMl || deltaMl > maxWaterDeltaMl {
		return 0, &domain.InvalidInputError{Field: "deltaMl", Reason: "must be non-zero and within [-5000, 5000]"}
	}
	return s.repo.AddWaterEvent(ctx, sessionID, deltaMl, time.Now())
}

// ListRecent returns the most recent water events up to limit. A
// non-positive limit falls back to defaultRecentWater.
func (s *WaterService) ListRecent(ctx context.Context, sessionID string, limit int) ([]domain.WaterEvent, error) {
	if limit <= 0 {
		limit = defaultRecentWater
	}
	return s.repo.ListRecentWaterEvents(ctx, sessionID, limit)
}

// UndoLast deletes the most recent water event.
func (s *WaterService) UndoLast(ctx context.Context, sessionID string) (bool, int64, error) {
	items, err := s.repo.ListRecentWaterEvents(ctx, sessionID, 1)
	if err != nil {
		return false, 0, err
	}
	if len(items) == 0 {
		return false, 0, nil
	}
	if err := s.repo.DeleteWaterEvent(ctx, sessionID, items[0].ID); err != nil {
		return false, 0, err
	}
	return true, items[0].ID, nil
}
