package auth

import (
	"context"
	"time"

	"bookstore-service/internal/redisclient"

	"github.com/google/uuid"
)

// SessionManager mints and resolves opaque session tokens backed by
// Redis. Tokens carry no claims; the user id lives server-side.
type SessionManager struct {
	redis *redisclient.Client
	ttl   time.Duration
}

// NewSessionManager creates a session manager with the given TTL
func NewSessionManager(redis *redisclient.Client, ttl time.Duration) *SessionManager {
	return &SessionManager{redis: redis, ttl: ttl}
}

// Create mints a new session token for a user
func (sm *SessionManager) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.New().String()
	if err := sm.redis.SetSession(ctx, token, userID, sm.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user id bound to a token, or ok=false for an
// unknown or expired token.
func (sm *SessionManager) Resolve(ctx context.Context, token string) (int64, bool, error) {
	return sm.redis.GetSession(ctx, token)
}

// Destroy invalidates a session token
func (sm *SessionManager) Destroy(ctx context.Context, token string) error {
	return sm.redis.DeleteSession(ctx, token)
}
