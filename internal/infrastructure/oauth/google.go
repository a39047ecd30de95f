package oauth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/internal/config"
)

const (
	GoogleName        = domain.ProviderGoogle
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func NewGoogle(creds config.ProviderCredentials, redirectURL string) Provider {
	return newGoogle(&oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     endpoints.Google,
		Scopes:       []string{"openid", "email", "profile"},
	}, googleUserInfoURL)
}

func newGoogle(cfg *oauth2.Config, userInfoURL string) *codeProvider {
	return &codeProvider{
		name:   GoogleName,
		config: cfg,
		fetch: func(ctx context.Context, client *http.Client) (*Profile, error) {
			var info googleUserInfo
			if err := getJSON(ctx, client, userInfoURL, &info); err != nil {
				return nil, err
			}
			profile := &Profile{
				Subject: info.Sub,
				Name:    info.Name,
				Image:   info.Picture,
			}
			if info.EmailVerified {
				profile.Email = info.Email
			}
			return profile, nil
		},
	}
}
