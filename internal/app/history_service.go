package app

import (
	"context"
	"time"

	"healthmetrics/internal/domain"
)

const maxHistoryPoints = 366

// HistoryService encapsulates progress-chart use cases.
type HistoryService struct {
	repo domain.HistoryRepository
}

// NewHistoryService creates a HistoryService backed by the given repository.
func NewHistoryService(repo domain.HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// ProgressPoint is a single data point returned by Series.
type ProgressPoint struct {
	Day           string             `json:"day"`
	Weight        float64            `json:"weight"`
	Unit          string             `json:"unit"`
	BMI           float64            `json:"bmi"`
	Category      domain.BMICategory `json:"category"`
	DailyCalories int                `json:"dailyCalories"`
	WaterIntakeMl int                `json:"waterIntakeMl"`
}

// Series returns up to limit recorded reports, oldest first, with weights
// converted to the requested unit.
func (s *HistoryService) Series(ctx context.Context, sessionID string, limit int, unit string) ([]ProgressPoint, error) {
	if unit != "kg" && unit != "lb" {
		return nil, &domain.InvalidInputError{Field: "unit", Reason: "unit must be \"kg\" or \"lb\""}
	}
	entries, err := s.Entries(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}

	points := make([]ProgressPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, ProgressPoint{
			Day:           e.CreatedAt.In(time.Local).Format("2006-01-02"),
			Weight:        domain.ConvertWeight(e.Measurement.WeightKg, "kg", unit),
			Unit:          unit,
			BMI:           e.Report.BMI,
			Category:      e.Report.BMICategory,
			DailyCalories: e.Report.DailyCalories,
			WaterIntakeMl: e.Report.WaterIntakeMl,
		})
	}
	return points, nil
}

// Entries returns up to limit recorded entries, oldest first. limit is
// clamped to 366.
func (s *HistoryService) Entries(ctx context.Context, sessionID string, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 || limit > maxHistoryPoints {
		limit = maxHistoryPoints
	}
	return s.repo.ListHistory(ctx, sessionID, limit)
}

// UndoLast deletes the most recent entry and returns the new latest one.
func (s *HistoryService) UndoLast(ctx context.Context, sessionID string) (bool, *domain.HistoryEntry, error) {
	deleted, err := s.repo.DeleteLatestHistoryEntry(ctx, sessionID)
	if err != nil {
		return false, nil, err
	}
	entry, err := s.repo.LatestHistoryEntry(ctx, sessionID)
	if err != nil {
		return deleted, nil, err
	}
	return deleted, entry, nil
}
