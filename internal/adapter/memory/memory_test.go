package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"healthmetrics/internal/domain"
)

func TestHistoryRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	sid := "s1"

	now := time.Now()
	for i, bmi := range []float64{24, 23.5, 23} {
		id, err := db.AddHistoryEntry(ctx, domain.HistoryEntry{
			SessionID: sid,
			Report:    domain.HealthReport{BMI: bmi},
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("AddHistoryEntry: %v", err)
		}
		if id == 0 {
			t.Error("expected non-zero ID")
		}
	}

	entries, err := db.ListHistory(ctx, sid, 0)
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(entries) != 3 || entries[0].Report.BMI != 24 || entries[2].Report.BMI != 23 {
		t.Fatalf("expected 3 entries oldest first, got %+v", entries)
	}

	limited, _ := db.ListHistory(ctx, sid, 2)
	if len(limited) != 2 || limited[0].Report.BMI != 23.5 {
		t.Fatalf("expected newest 2 entries, got %+v", limited)
	}

	// Other session sees nothing
	other, _ := db.ListHistory(ctx, "s2", 10)
	if len(other) != 0 {
		t.Error("expected 0 entries for other session")
	}

	latest, err := db.LatestHistoryEntry(ctx, sid)
	if err != nil {
		t.Fatalf("LatestHistoryEntry: %v", err)
	}
	if latest == nil || latest.Report.BMI != 23 {
		t.Fatalf("expected latest BMI 23, got %v", latest)
	}

	ok, err := db.DeleteLatestHistoryEntry(ctx, sid)
	if err != nil || !ok {
		t.Fatalf("DeleteLatestHistoryEntry: ok=%v err=%v", ok, err)
	}
	latest, _ = db.LatestHistoryEntry(ctx, sid)
	if latest == nil || latest.Report.BMI != 23.5 {
		t.Fatalf("expected latest BMI 23.5 after delete, got %v", latest)
	}

	ok, _ = db.DeleteLatestHistoryEntry(ctx, "s2")
	if ok {
		t.Error("expected false for empty session")
	}
}

func TestWaterRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	sid := "s1"

	now := time.Now()
	if _, err := db.AddWaterEvent(ctx, sid, 250, now); err != nil {
		t.Fatalf("AddWaterEvent: %v", err)
	}
	id2, err := db.AddWaterEvent(ctx, sid, 500, now.Add(time.Second))
	if err != nil {
		t.Fatalf("AddWaterEvent: %v", err)
	}
	if _, err := db.AddWaterEvent(ctx, "s2", 1000, now); err != nil {
		t.Fatalf("AddWaterEvent: %v", err)
	}

	day := now.In(time.Local).Format("2006-01-02")
	total, err := db.WaterTotalForLocalDay(ctx, sid, day)
	if err != nil {
		t.Fatalf("WaterTotalForLocalDay: %v", err)
	}
	if total != 750 {
		t.Errorf("expected 750, got %d", total)
	}

	totals, _ := db.WaterTotalsByLocalDay(ctx, sid)
	if totals[day] != 750 || len(totals) != 1 {
		t.Errorf("unexpected totals: %v", totals)
	}

	events, _ := db.ListRecentWaterEvents(ctx, sid, 10)
	if len(events) != 2 || events[0].ID != id2 {
		t.Fatalf("expected newest first, got %+v", events)
	}
	if events, _ = db.ListRecentWaterEvents(ctx, sid, -1); len(events) != 2 {
		t.Fatalf("expected a negative limit to return everything, got %d", len(events))
	}

	// Deleting with the wrong session is a no-op.
	_ = db.DeleteWaterEvent(ctx, "s2", id2)
	if total, _ = db.WaterTotalForLocalDay(ctx, sid, day); total != 750 {
		t.Errorf("cross-session delete changed total to %d", total)
	}
	_ = db.DeleteWaterEvent(ctx, sid, id2)
	if total, _ = db.WaterTotalForLocalDay(ctx, sid, day); total != 250 {
		t.Errorf("expected 250 after delete, got %d", total)
	}

	if _, err := db.WaterTotalForLocalDay(ctx, sid, "not-a-day"); err == nil {
		t.Error("expected parse error for bad day")
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	now := time.Now()

	if _, err := db.CreateSession(ctx, "live", now.Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := db.CreateSession(ctx, "old", now.Add(-time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	_, _ = db.AddHistoryEntry(ctx, domain.HistoryEntry{SessionID: "old", CreatedAt: now})
	_, _ = db.AddWaterEvent(ctx, "old", 300, now)
	_ = db.SaveReminders(ctx, "old", domain.DefaultReminders())

	s, err := db.GetSession(ctx, "live")
	if err != nil || s == nil || s.ID != "live" {
		t.Fatalf("GetSession: %v %v", s, err)
	}
	if s, _ := db.GetSession(ctx, "missing"); s != nil {
		t.Fatalf("expected nil for missing session, got %v", s)
	}

	n, err := db.DeleteExpiredSessions(ctx, now)
	if err != nil || n != 1 {
		t.Fatalf("DeleteExpiredSessions: n=%d err=%v", n, err)
	}
	if db.SessionCount() != 1 {
		t.Fatalf("expected 1 session left, got %d", db.SessionCount())
	}
	if h, _ := db.ListHistory(ctx, "old", 0); len(h) != 0 {
		t.Error("expected history of expired session to be dropped")
	}
	if w, _ := db.ListRecentWaterEvents(ctx, "old", 10); len(w) != 0 {
		t.Error("expected water events of expired session to be dropped")
	}
	if r, _ := db.ListReminders(ctx, "old"); len(r) != 0 {
		t.Error("expected reminders of expired session to be dropped")
	}
}

func TestReminderRepository_Copies(t *testing.T) {
	db := New()
	ctx := context.Background()
	items := domain.DefaultReminders()
	_ = db.SaveReminders(ctx, "s1", items)
	items[0].Active = false

	got, _ := db.ListReminders(ctx, "s1")
	if !got[0].Active {
		t.Fatal("stored reminders were mutated through the caller's slice")
	}
	got[1].Active = false
	again, _ := db.ListReminders(ctx, "s1")
	if !again[1].Active {
		t.Fatal("stored reminders were mutated through a listed slice")
	}
}

func TestConcurrentAccess(t *testing.T) {
	db := New()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = db.AddHistoryEntry(ctx, domain.HistoryEntry{SessionID: "s1", CreatedAt: time.Now()})
			_, _ = db.AddWaterEvent(ctx, "s1", 100, time.Now())
			_, _ = db.ListHistory(ctx, "s1", 5)
		}()
	}
	wg.Wait()
	h, _ := db.ListHistory(ctx, "s1", 0)
	if len(h) != 20 {
		t.Fatalf("expected 20 entries, got %d", len(h))
	}
}
