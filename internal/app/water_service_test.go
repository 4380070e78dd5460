package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthmetrics/internal/app"
	"healthmetrics/internal/domain"
)

type mockWaterRepo struct {
	addFn    func(ctx context.Context, sessionID string, d int, t time.Time) (int64, error)
	delFn    func(ctx context.Context, sessionID string, id int64) error
	listFn   func(ctx context.Context, sessionID string, limit int) ([]domain.WaterEvent, error)
	totalFn  func(ctx context.Context, sessionID string, day string) (int, error)
	totalsFn func(ctx context.Context, sessionID string) (map[string]int, error)
}

func (m *mockWaterRepo) AddWaterEvent(ctx context.Context, sessionID string, d int, t time.Time) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, sessionID, d, t)
	}
	return 0, nil
}

func (m *mockWaterRepo) DeleteWaterEvent(ctx context.Context, sessionID string, id int64) error {
	if m.delFn != nil {
		return m.delFn(ctx, sessionID, id)
	}
	return nil
}

func (m *mockWaterRepo) ListRecentWaterEvents(ctx context.Context, sessionID string, limit int) ([]domain.WaterEvent, error) {
	if m.listFn != nil {
		return m.listFn(ctx, sessionID, limit)
	}
	return nil, nil
}

func (m *mockWaterRepo) WaterTotalForLocalDay(ctx context.Context, sessionID string, day string) (int, error) {
	if m.totalFn != nil {
		return m.totalFn(ctx, sessionID, day)
	}
	return 0, nil
}

func (m *mockWaterRepo) WaterTotalsByLocalDay(ctx context.Context, sessionID string) (map[string]int, error) {
	if m.totalsFn != nil {
		return m.totalsFn(ctx, sessionID)
	}
	return nil, nil
}

type mockHistoryRepo struct {
	addFn    func(ctx context.Context, e domain.HistoryEntry) (int64, error)
	deleteFn func(ctx context.Context, sessionID string) (bool, error)
	listFn   func(ctx context.Context, sessionID string, limit int) ([]domain.HistoryEntry, error)
	latestFn func(ctx context.Context, sessionID string) (*domain.HistoryEntry, error)
}

func (m *mockHistoryRepo) AddHistoryEntry(ctx context.Context, e domain.HistoryEntry) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, e)
	}
	return 1, nil
}

func (m *mockHistoryRepo) DeleteLatestHistoryEntry(ctx context.Context, sessionID string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, sessionID)
	}
	return false, nil
}

func (m *mockHistoryRepo) ListHistory(ctx context.Context, sessionID string, limit int) ([]domain.HistoryEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, sessionID, limit)
	}
	return nil, nil
}

func (m *mockHistoryRepo) LatestHistoryEntry(ctx context.Context, sessionID string) (*domain.HistoryEntry, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, sessionID)
	}
	return nil, nil
}

func TestRecordWaterEvent_Validation(t *testing.T) {
	svc := app.NewWaterService(&mockWaterRepo{}, &mockHistoryRepo{})

	tests := []struct {
		name  string
		delta int
	}{
		{"zero delta", 0},
		{"too large positive", 6000},
		{"too large negative", -6000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordEvent(context.Background(), "s1", tc.delta)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRecordWaterEvent_Success(t *testing.T) {
	repo := &mockWaterRepo{
		addFn: func(_ context.Context, sid string, d int, _ time.Time) (int64, error) {
			if sid != "s1" || d != 250 {
				t.Fatalf("unexpected args: %s %d", sid, d)
			}
			return 42, nil
		},
	}
	svc := app.NewWaterService(repo, &mockHistoryRepo{})
	id, err := svc.RecordEvent(context.Background(), "s1", 250)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
}

func TestUndoLastWater_Empty(t *testing.T) {
	svc := app.NewWaterService(&mockWaterRepo{}, &mockHistoryRepo{})
	undone, _, err := svc.UndoLast(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if undone {
		t.Fatal("expected undone=false for empty list")
	}
}

func TestUndoLastWater_Success(t *testing.T) {
	repo := &mockWaterRepo{
		listFn: func(_ context.Context, _ string, _ int) ([]domain.WaterEvent, error) {
			return []domain.WaterEvent{{ID: 7, DeltaMl: 500}}, nil
		},
		delFn: func(_ context.Context, _ string, id int64) error {
			if id != 7 {
				t.Fatalf("expected delete id 7, got %d", id)
			}
			return nil
		},
	}
	svc := app.NewWaterService(repo, &mockHistoryRepo{})
	undone, id, err := svc.UndoLast(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !undone || id != 7 {
		t.Fatalf("expected undone=true id=7, got undone=%v id=%d", undone, id)
	}
}

func TestListRecent_NonPositiveLimit(t *testing.T) {
	for _, limit := range []int{0, -5} {
		var got int
		repo := &mockWaterRepo{
			listFn: func(_ context.Context, _ string, l int) ([]domain.WaterEvent, error) {
				got = l
				return nil, nil
			},
		}
		svc := app.NewWaterService(repo, &mockHistoryRepo{})
		if _, err := svc.ListRecent(context.Background(), "s1", limit); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 20 {
			t.Errorf("limit %d: repo saw %d, want 20", limit, got)
		}
	}
}

func TestWaterStatus(t *testing.T) {
	repo := &mockWaterRepo{
		totalFn: func(_ context.Context, _ string, _ string) (int, error) { return 1800, nil },
	}
	history := &mockHistoryRepo{
		latestFn: func(_ context.Context, _ string) (*domain.HistoryEntry, error) {
			return &domain.HistoryEntry{Report: domain.HealthReport{WaterIntakeMl: 2310}}, nil
		},
	}
	svc := app.NewWaterService(repo, history)
	st, err := svc.Status(context.Background(), "s1", "2026-02-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.GoalMl != 2310 || st.RemainingMl != 510 || st.GoalMet {
		t.Fatalf("unexpected status: %+v", st)
	}
}

func TestWaterStatus_NoReport(t *testing.T) {
	svc := app.NewWaterService(&mockWaterRepo{}, &mockHistoryRepo{})
	st, err := svc.Status(context.Background(), "s1", "2026-02-08")
	if !errors.Is(err, app.ErrNoReport) {
		t.Fatalf("expected ErrNoReport, got %v", err)
	}
	if st == nil || st.Day != "2026-02-08" {
		t.Fatalf("expected partial status, got %+v", st)
	}
}
