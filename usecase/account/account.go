package account

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// SignupInput is a validated signup request.
type SignupInput struct {
	Email      string
	Password   string
	Name       string
	UserType   string
	ResortName string
	Location   string
}

type UseCase struct {
	users   repository.UserRepository
	resorts repository.ResortRepository
	hasher  PasswordHasher
	logger  *zap.Logger
	now     func() time.Time
}

func New(users repository.UserRepository, resorts repository.ResortRepository, hasher PasswordHasher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:   users,
		resorts: resorts,
		hasher:  hasher,
		logger:  logger,
		now:     time.Now,
	}
}

// Signup creates a credentials account and, for reunion managers, their resort.
func (uc *UseCase) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "email, password and name are required")
	}

	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		UserType:     in.UserType,
		Provider:     domain.ProviderCredentials,
	}
	user.Touch(uc.now().UTC())
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("user_type", user.UserType))

	if in.UserType == domain.UserTypeReunionManager && in.ResortName != "" && in.Location != "" {
		resort := &domain.Resort{
			OwnerID:    user.ID,
			ResortName: in.ResortName,
			Location:   in.Location,
			CreatedAt:  user.CreatedAt,
		}
		if err := uc.resorts.Create(ctx, resort); err != nil {
			uc.logger.Error("failed to register resort", zap.String("user_id", user.ID), zap.Error(err))
			return nil, err
		}
	}
	return user, nil
}
