package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

type sessionRepository struct {
	client *redislib.Client
	prefix string
}

// NewSessionRepository creates a Redis-backed revocation list for session ids.
func NewSessionRepository(client *redislib.Client) repository.SessionRepository {
	return &sessionRepository{
		client: client,
		prefix: "session:revoked:",
	}
}

func (r *sessionRepository) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if sessionID == "" {
		return domain.ErrInvalidPayload
	}
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.key(sessionID), 1, ttl).Err(); err != nil {
		return domain.Unavailable("revoke session", err)
	}
	return nil
}

func (r *sessionRepository) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	err := r.client.Get(ctx, r.key(sessionID)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redislib.Nil):
		return false, nil
	default:
		return false, domain.Unavailable("check session revocation", err)
	}
}

func (r *sessionRepository) key(id string) string {
	return fmt.Sprintf("%s%s", r.prefix, id)
}

type noopSessionRepository struct{}

// NewNoopSessionRepository is used when Redis is not configured: logout only clears the cookie.
func NewNoopSessionRepository() repository.SessionRepository {
	return noopSessionRepository{}
}

func (noopSessionRepository) Revoke(context.Context, string, time.Duration) error { return nil }

func (noopSessionRepository) IsRevoked(context.Context, string) (bool, error) { return false, nil }
