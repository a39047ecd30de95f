package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

type oauthStateRepository struct {
	client *redislib.Client
	prefix string
}

// NewOAuthStateRepository stores pending provider sign-ins with a native Redis TTL.
func NewOAuthStateRepository(client *redislib.Client) repository.OAuthStateRepository {
	return &oauthStateRepository{
		client: client,
		prefix: "oauth:state:",
	}
}

func (r *oauthStateRepository) Save(ctx context.Context, state *domain.OAuthState) error {
	if state == nil || state.State == "" {
		return domain.ErrInvalidPayload
	}
	ttl := time.Until(state.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrStateInvalid
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.prefix+state.State, payload, ttl).Err(); err != nil {
		return domain.Unavailable("save oauth state", err)
	}
	return nil
}

func (r *oauthStateRepository) Consume(ctx context.Context, state string) (*domain.OAuthState, error) {
	raw, err := r.client.GetDel(ctx, r.prefix+state).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrStateInvalid
		}
		return nil, domain.Unavailable("consume oauth state", err)
	}

	var stored domain.OAuthState
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, domain.ErrStateInvalid
	}
	if stored.IsExpired(time.Now()) {
		return nil, domain.ErrStateInvalid
	}
	return &stored, nil
}
