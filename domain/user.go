package domain

import "time"

const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
	ProviderGitHub      = "github"

	UserTypeReunionManager = "reunionManager"
)

// User represents an account. PasswordHash is empty for accounts created through an identity provider.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Image        string    `json:"image,omitempty"`
	UserType     string    `json:"userType,omitempty"`
	Provider     string    `json:"provider"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) HasPassword() bool {
	return u != nil && u.PasswordHash != ""
}

// Touch sets the creation and update timestamps.
func (u *User) Touch(now time.Time) {
	if u == nil {
		return
	}
	u.UpdatedAt = now
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
}

// Identity is the minimal user view carried by a session.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Image    string `json:"image,omitempty"`
	Provider string `json:"provider"`
}

func (u *User) Identity() Identity {
	return Identity{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Image:    u.Image,
		Provider: u.Provider,
	}
}
