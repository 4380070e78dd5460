package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"healthmetrics/internal/adapter/memory"
	"healthmetrics/internal/app"
	"healthmetrics/internal/domain"
)

type spyRecorder struct {
	computed []domain.BMICategory
	rejected []string
}

func (s *spyRecorder) ReportComputed(c domain.BMICategory) { s.computed = append(s.computed, c) }
func (s *spyRecorder) InputRejected(field string)          { s.rejected = append(s.rejected, field) }

func validRequest() app.Request {
	return app.Request{
		Measurement: domain.Measurement{WeightKg: 70, HeightCm: 170, AgeYears: 30, Sex: domain.Male},
		Activity:    domain.Sedentary,
		Goals:       domain.DefaultMacroGoals,
	}
}

func TestPreview(t *testing.T) {
	rec := &spyRecorder{}
	svc := app.NewReportService(&mockHistoryRepo{}, &mockWaterRepo{}, rec)
	r, err := svc.Preview(validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.WaterIntakeMl != 2310 || r.BMICategory != domain.Normal {
		t.Fatalf("unexpected report: %+v", r)
	}
	if len(rec.computed) != 1 || rec.computed[0] != domain.Normal {
		t.Fatalf("expected one computed metric, got %v", rec.computed)
	}
}

func TestPreview_Invalid(t *testing.T) {
	rec := &spyRecorder{}
	svc := app.NewReportService(&mockHistoryRepo{}, &mockWaterRepo{}, rec)
	req := validRequest()
	req.Goals = domain.MacroGoals{ProteinPct: 30, CarbsPct: 50, FatsPct: 30}
	_, err := svc.Preview(req)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(rec.rejected) != 1 || rec.rejected[0] != "macros" {
		t.Fatalf("expected macros rejection, got %v", rec.rejected)
	}
}

func TestRecord_AppendsAndUnlocks(t *testing.T) {
	var stored []domain.HistoryEntry
	history := &mockHistoryRepo{
		addFn: func(_ context.Context, e domain.HistoryEntry) (int64, error) {
			stored = append(stored, e)
			return int64(len(stored)), nil
		},
		listFn: func(_ context.Context, _ string, _ int) ([]domain.HistoryEntry, error) {
			return stored, nil
		},
	}
	svc := app.NewReportService(history, &mockWaterRepo{}, nil)

	res, err := svc.Record(context.Background(), "s1", validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Entry.ID != 1 || res.Entry.SessionID != "s1" {
		t.Fatalf("unexpected entry: %+v", res.Entry)
	}
	if res.Recommendation == "" {
		t.Error("expected a recommendation")
	}
	if len(res.Unlocked) != 1 || res.Unlocked[0].Name != domain.AchievementFirstLog {
		t.Fatalf("expected First Log to unlock, got %v", res.Unlocked)
	}

	res, err = svc.Record(context.Background(), "s1", validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Unlocked) != 0 {
		t.Fatalf("expected nothing new on second record, got %v", res.Unlocked)
	}
}

func TestRecord_InvalidDoesNotStore(t *testing.T) {
	history := &mockHistoryRepo{
		addFn: func(_ context.Context, _ domain.HistoryEntry) (int64, error) {
			t.Fatal("invalid input must not be stored")
			return 0, nil
		},
	}
	svc := app.NewReportService(history, &mockWaterRepo{}, nil)
	req := validRequest()
	req.Measurement.AgeYears = 0
	if _, err := svc.Record(context.Background(), "s1", req); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecord_RepoError(t *testing.T) {
	boom := errors.New("boom")
	history := &mockHistoryRepo{
		addFn: func(_ context.Context, _ domain.HistoryEntry) (int64, error) { return 0, boom },
	}
	svc := app.NewReportService(history, &mockWaterRepo{}, nil)
	if _, err := svc.Record(context.Background(), "s1", validRequest()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestRecord_ConcurrentUnlocksOnce(t *testing.T) {
	db := memory.New()
	svc := app.NewReportService(db, db, nil)

	const n = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstLog int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Record(context.Background(), "s1", validRequest())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			for _, a := range res.Unlocked {
				if a.Name == domain.AchievementFirstLog {
					mu.Lock()
					firstLog++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if firstLog != 1 {
		t.Fatalf("First Log reported %d times; want once", firstLog)
	}
	entries, _ := db.ListHistory(context.Background(), "s1", 0)
	if len(entries) != n {
		t.Fatalf("expected %d entries, got %d", n, len(entries))
	}
}
