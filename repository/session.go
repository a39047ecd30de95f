package repository

import (
	"context"
	"time"

	"github.com/fastygo/taskmanager/domain"
)

// SessionRepository remembers revoked session ids until their tokens would expire anyway.
type SessionRepository interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// OAuthStateRepository keeps pending provider sign-ins between redirect and callback.
type OAuthStateRepository interface {
	Save(ctx context.Context, state *domain.OAuthState) error
	// Consume returns and removes the state; unknown or expired states yield domain.ErrStateInvalid.
	Consume(ctx context.Context, state string) (*domain.OAuthState, error)
}

// Store bundles the repositories backed by one database handle.
type Store struct {
	Users   UserRepository
	Tasks   TaskRepository
	Resorts ResortRepository
	Ping    func(ctx context.Context) error
	Close   func(ctx context.Context) error
}
