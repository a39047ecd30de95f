package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository/memory"
)

func TestGetProfile(t *testing.T) {
	users := memory.NewUserRepository()
	user := &domain.User{Email: "a@b.com", Name: "Ann", Provider: domain.ProviderCredentials}
	require.NoError(t, users.Create(context.Background(), user))

	uc := New(users, nil)

	got, err := uc.GetProfile(context.Background(), user.Identity())
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	_, err = uc.GetProfile(context.Background(), domain.Identity{ID: "github:42", Provider: domain.ProviderGitHub})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.GetProfile(context.Background(), domain.Identity{ID: "missing", Provider: domain.ProviderCredentials})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
