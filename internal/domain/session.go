// Package domain contains the health-metrics engine, the session-scoped
// entities built around it and the ports used to store them.
package domain

import (
	"context"
	"time"
)

// Session is an anonymous browser or terminal session. All history,
// hydration and reminder state is scoped to one session.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionRepository defines the port for session bookkeeping.
type SessionRepository interface {
	CreateSession(ctx context.Context, id string, expiresAt time.Time) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
	// DeleteExpiredSessions removes sessions that expired before now along
	// with everything scoped to them, returning how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}
