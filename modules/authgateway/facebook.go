package authgateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"

	"github.com/resumehub/authkit/pkg/identity"
)

// FacebookConfig holds configuration for the Facebook OAuth provider.
type FacebookConfig struct {
	ClientID     string   `env:"FACEBOOK_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"FACEBOOK_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"FACEBOOK_OAUTH_REDIRECT_URL,required"`
	Scopes       []string `env:"FACEBOOK_OAUTH_SCOPES" envSeparator:"," envDefault:"email,public_profile"`
}

type facebookAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewFacebookAdapter creates a Facebook OAuth provider adapter. The Graph API
// returns the account id as a string in the "id" field.
func NewFacebookAdapter(cfg FacebookConfig) ProviderAdapter {
	return &facebookAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     facebook.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *facebookAdapter) RegistrationID() string {
	return "facebook"
}

func (a *facebookAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state)
}

func (a *facebookAdapter) Profile(ctx context.Context, code string) (identity.Payload, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange facebook code: %w", err)
	}

	payload, err := fetchJSON(ctx, a.httpClient, "https://graph.facebook.com/me?fields=id,name,email,picture", tok.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch facebook profile: %w", err)
	}
	return payload, nil
}

var _ ProviderAdapter = (*facebookAdapter)(nil)
