// Package oauth exchanges authorization codes with external identity providers.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"golang.org/x/oauth2"

	"github.com/fastygo/taskmanager/internal/config"
)

// Profile is the subset of provider account data the service links users by.
type Profile struct {
	Subject string
	Email   string
	Name    string
	Image   string
}

type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for the signed-in account's profile.
	Exchange(ctx context.Context, code string) (*Profile, error)
}

type profileFetcher func(ctx context.Context, client *http.Client) (*Profile, error)

type codeProvider struct {
	name   string
	config *oauth2.Config
	fetch  profileFetcher
}

func (p *codeProvider) Name() string {
	return p.name
}

func (p *codeProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *codeProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s code exchange: %w", p.name, err)
	}
	return p.fetch(ctx, p.config.Client(ctx, token))
}

// Registry holds the providers that have credentials configured.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if p != nil {
			r.providers[p.Name()] = p
		}
	}
	return r
}

// FromConfig builds providers for every configured credential pair.
func FromConfig(cfg *config.Config) *Registry {
	var providers []Provider
	if cfg.OAuth.Google.Configured() {
		providers = append(providers, NewGoogle(cfg.OAuth.Google, cfg.CallbackURL(GoogleName)))
	}
	if cfg.OAuth.GitHub.Configured() {
		providers = append(providers, NewGitHub(cfg.OAuth.GitHub, cfg.CallbackURL(GitHubName)))
	}
	return NewRegistry(providers...)
}

func (r *Registry) Get(name string) (Provider, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.providers[name]
	return p, ok
}

// Names returns the configured provider names in stable order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", url, resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
