package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
	"github.com/fastygo/taskmanager/repository/memory"
)

type plainHasher struct{ err error }

func (h plainHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

func newUseCase() (*UseCase, repository.UserRepository, repository.ResortRepository) {
	users := memory.NewUserRepository()
	resorts := memory.NewResortRepository()
	return New(users, resorts, plainHasher{}, nil), users, resorts
}

func TestSignup_CreatesUser(t *testing.T) {
	uc, users, resorts := newUseCase()

	user, err := uc.Signup(context.Background(), SignupInput{Email: "a@b.com", Password: "pw", Name: "Ann"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "hashed:pw", user.PasswordHash)
	assert.Equal(t, domain.ProviderCredentials, user.Provider)
	assert.False(t, user.CreatedAt.IsZero())

	stored, err := users.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
	assert.Empty(t, memory.Resorts(resorts))
}

func TestSignup_DuplicateEmailCreatesNoSecondUser(t *testing.T) {
	uc, users, _ := newUseCase()
	in := SignupInput{Email: "a@b.com", Password: "pw", Name: "Ann"}

	_, err := uc.Signup(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.Equal(t, 1, memory.UserCount(users))
}

func TestSignup_ReunionManagerRegistersResort(t *testing.T) {
	tests := []struct {
		name       string
		in         SignupInput
		wantResort bool
	}{
		{
			name:       "manager with resort",
			in:         SignupInput{UserType: domain.UserTypeReunionManager, ResortName: "Sea View", Location: "Cox's Bazar"},
			wantResort: true,
		},
		{
			name: "manager without location",
			in:   SignupInput{UserType: domain.UserTypeReunionManager, ResortName: "Sea View"},
		},
		{
			name: "regular user with resort fields",
			in:   SignupInput{UserType: "guest", ResortName: "Sea View", Location: "Cox's Bazar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, resorts := newUseCase()
			tt.in.Email, tt.in.Password, tt.in.Name = "m@b.com", "pw", "Manager"

			user, err := uc.Signup(context.Background(), tt.in)
			require.NoError(t, err)

			stored := memory.Resorts(resorts)
			if !tt.wantResort {
				assert.Empty(t, stored)
				return
			}
			require.Len(t, stored, 1)
			assert.Equal(t, user.ID, stored[0].OwnerID)
			assert.Equal(t, "Sea View", stored[0].ResortName)
		})
	}
}

func TestSignup_Rejects(t *testing.T) {
	uc, users, _ := newUseCase()

	_, err := uc.Signup(context.Background(), SignupInput{Email: "a@b.com", Name: "Ann"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	failing := New(users, memory.NewResortRepository(), plainHasher{err: errors.New("boom")}, nil)
	_, err = failing.Signup(context.Background(), SignupInput{Email: "a@b.com", Password: "pw", Name: "Ann"})
	assert.EqualError(t, err, "boom")
	assert.Zero(t, memory.UserCount(users))
}
