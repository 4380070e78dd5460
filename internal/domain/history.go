package domain

import (
	"context"
	"time"
)

// HistoryEntry is one recorded report together with the inputs that
// produced it.
type HistoryEntry struct {
	ID          int64         `json:"id"`
	SessionID   string        `json:"-"`
	Measurement Measurement   `json:"measurement"`
	Activity    ActivityLevel `json:"activity"`
	Goals       MacroGoals    `json:"goals"`
	Report      HealthReport  `json:"report"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// HistoryRepository is the port for per-session report history.
type HistoryRepository interface {
	AddHistoryEntry(ctx context.Context, e HistoryEntry) (int64, error)
	DeleteLatestHistoryEntry(ctx context.Context, sessionID string) (bool, error)
	// ListHistory returns the newest limit entries, oldest first. A limit
	// <= 0 returns every entry.
	ListHistory(ctx context.Context, sessionID string, limit int) ([]HistoryEntry, error)
	LatestHistoryEntry(ctx context.Context, sessionID string) (*HistoryEntry, error)
}
