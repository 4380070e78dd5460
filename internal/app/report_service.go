package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"healthmetrics/internal/domain"
)

// Recorder receives computation outcomes for instrumentation.
type Recorder interface {
	ReportComputed(category domain.BMICategory)
	InputRejected(field string)
}

type nopRecorder struct{}

func (nopRecorder) ReportComputed(domain.BMICategory) {}
func (nopRecorder) InputRejected(string)              {}

// ReportService runs the engine and keeps the per-session history.
type ReportService struct {
	history domain.HistoryRepository
	water   domain.WaterRepository
	rec     Recorder
	now     func() time.Time

	// recordMu serializes Record so the achievement diff around the insert
	// sees no concurrent writes.
	recordMu sync.Mutex
}

// NewReportService creates a ReportService. rec may be nil.
func NewReportService(history domain.HistoryRepository, water domain.WaterRepository, rec Recorder) *ReportService {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &ReportService{history: history, water: water, rec: rec, now: time.Now}
}

// RecordResult is returned by Record.
type RecordResult struct {
	Entry          domain.HistoryEntry  `json:"entry"`
	Recommendation string               `json:"recommendation"`
	Unlocked       []domain.Achievement `json:"unlocked"`
}

// Preview computes a report without recording it.
func (s *ReportService) Preview(req Request) (domain.HealthReport, error) {
	r, err := domain.BuildReport(req.Measurement, req.Activity, req.Goals)
	if err != nil {
		s.reject(err)
		return domain.HealthReport{}, err
	}
	s.rec.ReportComputed(r.BMICategory)
	return r, nil
}

// Record computes a report, appends it to the session history and returns
// any achievements the new entry unlocked.
func (s *ReportService) Record(ctx context.Context, sessionID string, req Request) (*RecordResult, error) {
	report, err := s.Preview(req)
	if err != nil {
		return nil, err
	}

	s.recordMu.Lock()
	defer s.recordMu.Unlock()

	before, err := s.Achievements(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	entry := domain.HistoryEntry{
		SessionID:   sessionID,
		Measurement: req.Measurement,
		Activity:    req.Activity,
		Goals:       req.Goals,
		Report:      report,
		CreatedAt:   s.now(),
	}
	id, err := s.history.AddHistoryEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("record history: %w", err)
	}
	entry.ID = id

	after, err := s.Achievements(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &RecordResult{
		Entry:          entry,
		Recommendation: report.BMICategory.Recommendation(),
		Unlocked:       domain.NewlyAchieved(before, after),
	}, nil
}

// Latest returns the newest recorded entry, or nil if there is none.
func (s *ReportService) Latest(ctx context.Context, sessionID string) (*domain.HistoryEntry, error) {
	return s.history.LatestHistoryEntry(ctx, sessionID)
}

// Achievements evaluates the session's achievements from its full history.
func (s *ReportService) Achievements(ctx context.Context, sessionID string) ([]domain.Achievement, error) {
	history, err := s.history.ListHistory(ctx, sessionID, 0)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	totals, err := s.water.WaterTotalsByLocalDay(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("water totals: %w", err)
	}
	return domain.EvaluateAchievements(history, totals, time.Local), nil
}

func (s *ReportService) reject(err error) {
	var ie *domain.InvalidInputError
	if errors.As(err, &ie) {
		field := ie.Field
		if field == "" {
			field = "form"
		}
		s.rec.InputRejected(field)
	}
}

// RejectInput records a validation failure raised before the engine ran,
// e.g. while parsing raw input.
func (s *ReportService) RejectInput(err error) {
	s.reject(err)
}
