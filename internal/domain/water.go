package domain

import (
	"context"
	"time"
)

// WaterEvent represents a single water intake/decrement event.
type WaterEvent struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"-"`
	DeltaMl   int       `json:"deltaMl"`
	CreatedAt time.Time `json:"createdAt"`
}

// WaterRepository is the port for the hydration log.
type WaterRepository interface {
	AddWaterEvent(ctx context.Context, sessionID string, deltaMl int, createdAt time.Time) (int64, error)
	DeleteWaterEvent(ctx context.Context, sessionID string, id int64) error
	ListRecentWaterEvents(ctx context.Context, sessionID string, limit int) ([]WaterEvent, error)
	WaterTotalForLocalDay(ctx context.Context, sessionID string, localDay string) (int, error)
	// WaterTotalsByLocalDay returns the summed intake keyed by "2006-01-02".
	WaterTotalsByLocalDay(ctx context.Context, sessionID string) (map[string]int, error)
}
