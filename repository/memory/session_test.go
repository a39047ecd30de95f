package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskmanager/domain"
)

func TestSessionRepository_RevokeUntilExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	repo := NewSessionRepository().(*sessionRepository)
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Revoke(ctx, "s1", time.Minute))
	require.NoError(t, repo.Revoke(ctx, "s2", 0))

	revoked, err := repo.IsRevoked(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRevoked(ctx, "s2")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = repo.IsRevoked(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestOAuthStateRepository_SingleUse(t *testing.T) {
	ctx := context.Background()
	repo := NewOAuthStateRepository()

	require.NoError(t, repo.Save(ctx, &domain.OAuthState{State: "n", Provider: "github", ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, repo.Save(ctx, &domain.OAuthState{State: "old", ExpiresAt: time.Now().Add(-time.Minute)}))

	got, err := repo.Consume(ctx, "n")
	require.NoError(t, err)
	assert.Equal(t, "github", got.Provider)

	_, err = repo.Consume(ctx, "n")
	assert.ErrorIs(t, err, domain.ErrStateInvalid)

	_, err = repo.Consume(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrStateInvalid)
}
