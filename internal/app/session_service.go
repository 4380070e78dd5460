// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthmetrics/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
)

// SessionService manages anonymous sessions.
type SessionService struct {
	repo domain.SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

// NewSessionService creates a session service whose sessions live for ttl.
func NewSessionService(repo domain.SessionRepository, ttl time.Duration) *SessionService {
	return &SessionService{repo: repo, ttl: ttl, now: time.Now}
}

// Start creates a new session with a random ID.
func (s *SessionService) Start(ctx context.Context) (*domain.Session, error) {
	id := uuid.NewString()
	sess, err := s.repo.CreateSession(ctx, id, s.now().Add(s.ttl))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Resolve returns the session for id if it exists and has not expired.
// Expired sessions are deleted on sight.
func (s *SessionService) Resolve(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	sess, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if s.now().After(sess.ExpiresAt) {
		_ = s.repo.DeleteSession(ctx, id)
		return nil, ErrSessionExpired
	}
	return sess, nil
}

// End deletes a session and its state.
func (s *SessionService) End(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}

// Sweep removes every expired session and returns how many were removed.
func (s *SessionService) Sweep(ctx context.Context) (int, error) {
	return s.repo.DeleteExpiredSessions(ctx, s.now())
}
