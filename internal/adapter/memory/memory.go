// Package memory implements the session-scoped repositories in process
// memory. Nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthmetrics/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu          sync.Mutex
	sessions    map[string]*domain.Session
	history     []domain.HistoryEntry
	waterEvents []domain.WaterEvent
	reminders   map[string][]domain.Reminder

	historyIDCounter int64
	waterIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions:  make(map[string]*domain.Session),
		reminders: make(map[string][]domain.Reminder),
	}
}

// Ensure interfaces are met.
var _ domain.SessionRepository = (*DB)(nil)
var _ domain.HistoryRepository = (*DB)(nil)
var _ domain.WaterRepository = (*DB)(nil)
var _ domain.ReminderRepository = (*DB)(nil)

// --- SessionRepository ---

// CreateSession registers a new session.
func (db *DB) CreateSession(ctx context.Context, id string, expiresAt time.Time) (*domain.Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	s := &domain.Session{ID: id, CreatedAt: time.Now().UTC(), ExpiresAt: expiresAt}
	db.sessions[id] = s
	ret := *s
	return &ret, nil
}

// GetSession returns the session for id, or nil if there is none.
func (db *DB) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s, ok := db.sessions[id]; ok {
		ret := *s
		return &ret, nil
	}
	return nil, nil
}

// DeleteSession removes a session and everything scoped to it.
func (db *DB) DeleteSession(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.dropSessionLocked(id)
	return nil
}

// DeleteExpiredSessions removes sessions that expired before now.
func (db *DB) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := 0
	for id, s := range db.sessions {
		if now.After(s.ExpiresAt) {
			db.dropSessionLocked(id)
			n++
		}
	}
	return n, nil
}

// SessionCount returns the number of live sessions.
func (db *DB) SessionCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.sessions)
}

func (db *DB) dropSessionLocked(id string) {
	delete(db.sessions, id)
	delete(db.reminders, id)

	history := db.history[:0]
	for _, e := range db.history {
		if e.SessionID != id {
			history = append(history, e)
		}
	}
	db.history = history

	water := db.waterEvents[:0]
	for _, w := range db.waterEvents {
		if w.SessionID != id {
			water = append(water, w)
		}
	}
	db.waterEvents = water
}

// --- HistoryRepository ---

// AddHistoryEntry appends a history entry.
func (db *DB) AddHistoryEntry(ctx context.Context, e domain.HistoryEntry) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.historyIDCounter++
	e.ID = db.historyIDCounter
	e.CreatedAt = e.CreatedAt.UTC()
	db.history = append(db.history, e)
	return e.ID, nil
}

// DeleteLatestHistoryEntry deletes the most recent entry of a session.
func (db *DB) DeleteLatestHistoryEntry(ctx context.Context, sessionID string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	lastIdx := db.latestHistoryIndexLocked(sessionID)
	if lastIdx == -1 {
		return false, nil
	}
	db.history = append(db.history[:lastIdx], db.history[lastIdx+1:]...)
	return true, nil
}

// ListHistory returns the newest limit entries of a session, oldest first.
func (db *DB) ListHistory(ctx context.Context, sessionID string, limit int) ([]domain.HistoryEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.HistoryEntry
	for _, e := range db.history {
		if e.SessionID == sessionID {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result, nil
}

// LatestHistoryEntry returns the newest entry of a session, or nil.
func (db *DB) LatestHistoryEntry(ctx context.Context, sessionID string) (*domain.HistoryEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx := db.latestHistoryIndexLocked(sessionID)
	if idx == -1 {
		return nil, nil
	}
	ret := db.history[idx]
	return &ret, nil
}

func (db *DB) latestHistoryIndexLocked(sessionID string) int {
	lastIdx := -1
	for i, e := range db.history {
		if e.SessionID != sessionID {
			continue
		}
		// Ties go to the later insert.
		if lastIdx == -1 || !e.CreatedAt.Before(db.history[lastIdx].CreatedAt) {
			lastIdx = i
		}
	}
	return lastIdx
}

// --- WaterRepository ---

// AddWaterEvent adds a water event.
func (db *DB) AddWaterEvent(ctx context.Context, sessionID string, deltaMl int, createdAt time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.waterIDCounter++
	id := db.waterIDCounter

	db.waterEvents = append(db.waterEvents, domain.WaterEvent{
		ID:        id,
		SessionID: sessionID,
		DeltaMl:   deltaMl,
		CreatedAt: createdAt.UTC(),
	})
	return id, nil
}

// DeleteWaterEvent deletes a water event by ID, scoped to a session.
func (db *DB) DeleteWaterEvent(ctx context.Context, sessionID string, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, w := range db.waterEvents {
		if w.ID == id && w.SessionID == sessionID {
			db.waterEvents = append(db.waterEvents[:i], db.waterEvents[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListRecentWaterEvents lists the most recent water events, newest first.
func (db *DB) ListRecentWaterEvents(ctx context.Context, sessionID string, limit int) ([]domain.WaterEvent, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.WaterEvent
	for _, w := range db.waterEvents {
		if w.SessionID == sessionID {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// WaterTotalForLocalDay returns the total water intake for the given day.
func (db *DB) WaterTotalForLocalDay(ctx context.Context, sessionID string, localDay string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	dayStart, err := time.ParseInLocation("2006-01-02", localDay, time.Local)
	if err != nil {
		return 0, err
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	total := 0
	for _, w := range db.waterEvents {
		if w.SessionID != sessionID {
			continue
		}
		if !w.CreatedAt.Before(dayStart.UTC()) && w.CreatedAt.Before(dayEnd.UTC()) {
			total += w.DeltaMl
		}
	}
	return total, nil
}

// WaterTotalsByLocalDay sums a session's intake per local day.
func (db *DB) WaterTotalsByLocalDay(ctx context.Context, sessionID string) (map[string]int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make(map[string]int)
	for _, w := range db.waterEvents {
		if w.SessionID == sessionID {
			out[w.CreatedAt.In(time.Local).Format("2006-01-02")] += w.DeltaMl
		}
	}
	return out, nil
}

// --- ReminderRepository ---

// ListReminders returns a copy of a session's reminders.
func (db *DB) ListReminders(ctx context.Context, sessionID string) ([]domain.Reminder, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	items := db.reminders[sessionID]
	out := make([]domain.Reminder, len(items))
	copy(out, items)
	return out, nil
}

// SaveReminders replaces a session's reminders.
func (db *DB) SaveReminders(ctx context.Context, sessionID string, items []domain.Reminder) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	cp := make([]domain.Reminder, len(items))
	copy(cp, items)
	db.reminders[sessionID] = cp
	return nil
}
