package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

// GetProfile returns the stored user behind a session identity.
func (uc *UseCase) GetProfile(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	// Provider-scoped ids are issued when linking failed; there is no row behind them.
	if identity.ID == "" || strings.HasPrefix(identity.ID, identity.Provider+":") {
		return nil, domain.ErrUserNotFound
	}
	return uc.users.GetByID(ctx, identity.ID)
}
