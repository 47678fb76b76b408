package authgateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/resumehub/authkit/pkg/identity"
)

// GithubConfig holds configuration for the GitHub OAuth provider.
type GithubConfig struct {
	ClientID     string   `env:"GITHUB_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"GITHUB_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"GITHUB_OAUTH_REDIRECT_URL,required"`
	Scopes       []string `env:"GITHUB_OAUTH_SCOPES" envSeparator:"," envDefault:"read:user,user:email"`
}

type githubAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewGithubAdapter creates a GitHub OAuth provider adapter. The payload comes
// from the /user endpoint, where the numeric "id" field identifies the
// account and "login" carries the handle.
func NewGithubAdapter(cfg GithubConfig) ProviderAdapter {
	return &githubAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     github.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *githubAdapter) RegistrationID() string {
	return "github"
}

func (a *githubAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state)
}

func (a *githubAdapter) Profile(ctx context.Context, code string) (identity.Payload, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange github code: %w", err)
	}

	payload, err := fetchJSON(ctx, a.httpClient, "https://api.github.com/user", tok.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch github profile: %w", err)
	}
	return payload, nil
}

var _ ProviderAdapter = (*githubAdapter)(nil)
