package authgateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/resumehub/authkit/pkg/identity"
)

// GoogleConfig holds configuration for the Google OAuth provider.
type GoogleConfig struct {
	ClientID     string   `env:"GOOGLE_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"GOOGLE_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"GOOGLE_OAUTH_REDIRECT_URL,required"`
	Scopes       []string `env:"GOOGLE_OAUTH_SCOPES" envSeparator:"," envDefault:"openid,email,profile"`
}

type googleAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewGoogleAdapter creates a Google OAuth provider adapter. The profile is
// fetched from the OIDC userinfo endpoint, so the payload identifies the
// account through the "sub" claim.
func NewGoogleAdapter(cfg GoogleConfig) ProviderAdapter {
	return &googleAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *googleAdapter) RegistrationID() string {
	return "google"
}

func (a *googleAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state)
}

func (a *googleAdapter) Profile(ctx context.Context, code string) (identity.Payload, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange google code: %w", err)
	}

	payload, err := fetchJSON(ctx, a.httpClient, "https://openidconnect.googleapis.com/v1/userinfo", tok.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google profile: %w", err)
	}
	return payload, nil
}

var _ ProviderAdapter = (*googleAdapter)(nil)
