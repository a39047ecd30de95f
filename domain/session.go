package domain

import "time"

// Session is the decoded content of a signed session token.
type Session struct {
	ID        string    `json:"id"`
	User      Identity  `json:"user"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Token     string    `json:"-"`
}

func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// TTL returns the remaining lifetime relative to reference.
func (s *Session) TTL(reference time.Time) time.Duration {
	if s.IsExpired(reference) {
		return 0
	}
	return s.ExpiresAt.Sub(reference)
}

// OAuthState is the pending record kept between the provider redirect and its callback.
type OAuthState struct {
	State     string    `json:"state"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *OAuthState) IsExpired(reference time.Time) bool {
	return s == nil || !s.ExpiresAt.After(reference)
}
