package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

type sessionRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewSessionRepository keeps revoked session ids in process memory.
func NewSessionRepository() repository.SessionRepository {
	return &sessionRepository{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *sessionRepository) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[sessionID] = r.now().Add(ttl)
	return nil
}

func (r *sessionRepository) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[sessionID]
	if !ok {
		return false, nil
	}
	if !until.After(r.now()) {
		delete(r.revoked, sessionID)
		return false, nil
	}
	return true, nil
}

type oauthStateRepository struct {
	mu     sync.Mutex
	states map[string]domain.OAuthState
	now    func() time.Time
}

func NewOAuthStateRepository() repository.OAuthStateRepository {
	return &oauthStateRepository{
		states: make(map[string]domain.OAuthState),
		now:    time.Now,
	}
}

func (r *oauthStateRepository) Save(_ context.Context, state *domain.OAuthState) error {
	if state == nil || state.State == "" {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[state.State] = *state
	return nil
}

func (r *oauthStateRepository) Consume(_ context.Context, state string) (*domain.OAuthState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.states[state]
	if !ok {
		return nil, domain.ErrStateInvalid
	}
	delete(r.states, state)
	if stored.IsExpired(r.now()) {
		return nil, domain.ErrStateInvalid
	}
	return &stored, nil
}
