package oauth

import (
	"context"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/internal/config"
)

const (
	GitHubName       = domain.ProviderGitHub
	githubAPIBaseURL = "https://api.github.com"
)

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func NewGitHub(creds config.ProviderCredentials, redirectURL string) Provider {
	return newGitHub(&oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     endpoints.GitHub,
		Scopes:       []string{"read:user", "user:email"},
	}, githubAPIBaseURL)
}

func newGitHub(cfg *oauth2.Config, apiBase string) *codeProvider {
	return &codeProvider{
		name:   GitHubName,
		config: cfg,
		fetch: func(ctx context.Context, client *http.Client) (*Profile, error) {
			var user githubUser
			if err := getJSON(ctx, client, apiBase+"/user", &user); err != nil {
				return nil, err
			}
			profile := &Profile{
				Subject: strconv.FormatInt(user.ID, 10),
				Email:   user.Email,
				Name:    user.Name,
				Image:   user.AvatarURL,
			}
			if profile.Name == "" {
				profile.Name = user.Login
			}
			if profile.Email != "" {
				return profile, nil
			}

			// Private emails are only listed by the emails endpoint.
			var emails []githubEmail
			if err := getJSON(ctx, client, apiBase+"/user/emails", &emails); err != nil {
				return nil, err
			}
			for _, e := range emails {
				if e.Primary && e.Verified {
					profile.Email = e.Email
					break
				}
			}
			return profile, nil
		},
	}
}
