package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/fastygo/taskmanager/domain"
)

type sessionClaims struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Image    string `json:"image,omitempty"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *TokenIssuer) Issue(identity domain.Identity) (*domain.Session, error) {
	now := t.now().UTC().Truncate(time.Second)
	session := &domain.Session{
		ID:        uuid.NewString(),
		User:      identity,
		IssuedAt:  now,
		ExpiresAt: now.Add(t.ttl),
	}

	claims := sessionClaims{
		Email:    identity.Email,
		Name:     identity.Name,
		Image:    identity.Image,
		Provider: identity.Provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   identity.ID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "cannot sign session", err)
	}
	session.Token = signed
	return session, nil
}

// Parse verifies signature, expiry and issuer and returns the session the token describes.
func (t *TokenIssuer) Parse(token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrSessionInvalid
	}
	if !claims.VerifyIssuer(t.issuer, true) || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrSessionInvalid
	}

	session := &domain.Session{
		ID: claims.ID,
		User: domain.Identity{
			ID:       claims.Subject,
			Email:    claims.Email,
			Name:     claims.Name,
			Image:    claims.Image,
			Provider: claims.Provider,
		},
		ExpiresAt: claims.ExpiresAt.Time,
		Token:     token,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session, nil
}
