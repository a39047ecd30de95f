package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/internal/infrastructure/oauth"
	"github.com/fastygo/taskmanager/repository"
)

const defaultStateTTL = 10 * time.Minute

// Providers resolves identity providers by name.
type Providers interface {
	Get(name string) (oauth.Provider, bool)
	Names() []string
}

type Dependencies struct {
	Users     repository.UserRepository
	Sessions  repository.SessionRepository
	States    repository.OAuthStateRepository
	Providers Providers
	Tokens    *TokenIssuer
	Passwords *PasswordHasher
	StateTTL  time.Duration
}

type UseCase struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	states    repository.OAuthStateRepository
	providers Providers
	tokens    *TokenIssuer
	passwords *PasswordHasher
	stateTTL  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func New(deps Dependencies, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.StateTTL <= 0 {
		deps.StateTTL = defaultStateTTL
	}
	if deps.Passwords == nil {
		deps.Passwords = NewPasswordHasher(0)
	}
	return &UseCase{
		users:     deps.Users,
		sessions:  deps.Sessions,
		states:    deps.States,
		providers: deps.Providers,
		tokens:    deps.Tokens,
		passwords: deps.Passwords,
		stateTTL:  deps.StateTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// SignInWithCredentials verifies email and password and issues a session.
func (uc *UseCase) SignInWithCredentials(ctx context.Context, email, password string) (*domain.Session, error) {
	attempt := NewAttempt(domain.ProviderCredentials)
	if err := attempt.Fire(Submit); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, uc.deny(attempt, email, attempt.Deny(domain.ErrCredentialsRequired))
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, uc.deny(attempt, email, attempt.Deny(domain.ErrNoSuchAccount))
		}
		return nil, uc.deny(attempt, email, attempt.Deny(err))
	}

	if !user.HasPassword() {
		return nil, uc.deny(attempt, email, attempt.Deny(domain.ErrInvalidCredentials))
	}
	if err := uc.passwords.Compare(user.PasswordHash, password); err != nil {
		return nil, uc.deny(attempt, email, attempt.Deny(err))
	}

	identity := user.Identity()
	identity.Provider = domain.ProviderCredentials
	return uc.authenticate(attempt, identity)
}

// BeginProviderSignIn records a state nonce and returns the provider's authorization URL.
func (uc *UseCase) BeginProviderSignIn(ctx context.Context, providerName string) (string, error) {
	provider, ok := uc.provider(providerName)
	if !ok {
		return "", domain.ErrProviderNotFound
	}

	attempt := NewAttempt(providerName)
	if err := attempt.Fire(Submit); err != nil {
		return "", err
	}

	now := uc.now()
	state := &domain.OAuthState{
		State:     uuid.NewString(),
		Provider:  providerName,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.stateTTL),
	}
	if err := uc.states.Save(ctx, state); err != nil {
		uc.logger.Error("failed to persist oauth state", zap.String("provider", providerName), zap.Error(err))
		return "", err
	}
	return provider.AuthCodeURL(state.State), nil
}

// CompleteProviderSignIn resumes a pending provider sign-in from its callback.
func (uc *UseCase) CompleteProviderSignIn(ctx context.Context, providerName, code, state string) (*domain.Session, error) {
	provider, ok := uc.provider(providerName)
	if !ok {
		return nil, domain.ErrProviderNotFound
	}

	attempt := NewAttempt(providerName)
	if err := attempt.Fire(Submit); err != nil {
		return nil, err
	}

	pending, err := uc.states.Consume(ctx, state)
	if err != nil {
		return nil, uc.deny(attempt, "", attempt.Deny(err))
	}
	if pending.Provider != providerName {
		return nil, uc.deny(attempt, "", attempt.Deny(domain.ErrStateInvalid))
	}
	if code == "" {
		return nil, uc.deny(attempt, "", attempt.Deny(domain.ErrProviderRejected))
	}

	profile, err := provider.Exchange(ctx, code)
	if err != nil {
		uc.logger.Warn("provider exchange failed", zap.String("provider", providerName), zap.Error(err))
		return nil, uc.deny(attempt, "", attempt.Deny(domain.ErrProviderRejected))
	}
	if profile == nil || strings.TrimSpace(profile.Email) == "" {
		return nil, uc.deny(attempt, "", attempt.Deny(domain.ErrProviderNoEmail))
	}

	return uc.authenticate(attempt, uc.link(ctx, providerName, profile))
}

// link finds or creates the local user for a provider profile. Storage failures never block sign-in.
func (uc *UseCase) link(ctx context.Context, providerName string, profile *oauth.Profile) domain.Identity {
	email := strings.TrimSpace(profile.Email)
	fallback := domain.Identity{
		ID:       providerName + ":" + profile.Subject,
		Email:    email,
		Name:     profile.Name,
		Image:    profile.Image,
		Provider: providerName,
	}

	user, err := uc.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		identity := user.Identity()
		identity.Provider = providerName
		return identity
	case !domain.IsDomainError(err, domain.ErrCodeNotFound):
		uc.logger.Error("user lookup failed during provider sign-in",
			zap.String("provider", providerName), zap.String("email", email), zap.Error(err))
		return fallback
	}

	user = &domain.User{
		Email:    email,
		Name:     profile.Name,
		Image:    profile.Image,
		Provider: providerName,
	}
	user.Touch(uc.now().UTC())
	if err := uc.users.Create(ctx, user); err != nil {
		uc.logger.Error("failed to link provider account",
			zap.String("provider", providerName), zap.String("email", email), zap.Error(err))
		return fallback
	}
	uc.logger.Info("user created from provider sign-in",
		zap.String("provider", providerName), zap.String("user_id", user.ID))

	return user.Identity()
}

// ResolveSession verifies a token and checks it has not been revoked.
func (uc *UseCase) ResolveSession(ctx context.Context, token string) (*domain.Session, error) {
	session, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if uc.sessions == nil {
		return session, nil
	}
	revoked, err := uc.sessions.IsRevoked(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrSessionRevoked
	}
	return session, nil
}

// SignOut revokes the session for the rest of its lifetime.
func (uc *UseCase) SignOut(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrUnauthorized
	}
	if uc.sessions == nil {
		return nil
	}
	return uc.sessions.Revoke(ctx, session.ID, session.TTL(uc.now()))
}

// ProviderNames lists the identity providers that can be used for sign-in.
func (uc *UseCase) ProviderNames() []string {
	if uc.providers == nil {
		return []string{}
	}
	return uc.providers.Names()
}

func (uc *UseCase) provider(name string) (oauth.Provider, bool) {
	if uc.providers == nil {
		return nil, false
	}
	return uc.providers.Get(name)
}

func (uc *UseCase) authenticate(attempt *Attempt, identity domain.Identity) (*domain.Session, error) {
	session, err := uc.tokens.Issue(identity)
	if err != nil {
		return nil, uc.deny(attempt, identity.Email, attempt.Deny(err))
	}
	if err := attempt.Fire(Verified); err != nil {
		return nil, err
	}
	uc.logger.Info("sign-in succeeded",
		zap.String("method", attempt.Method()),
		zap.String("user_id", identity.ID))
	return session, nil
}

func (uc *UseCase) deny(attempt *Attempt, email string, err error) error {
	level := uc.logger.Info
	if domain.IsDomainError(err, domain.ErrCodeUnavailable) {
		level = uc.logger.Error
	}
	level("sign-in denied",
		zap.String("method", attempt.Method()),
		zap.String("state", attempt.State().String()),
		zap.String("email", email),
		zap.Error(err))
	return err
}
