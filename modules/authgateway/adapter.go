package authgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/resumehub/authkit/pkg/identity"
)

// ProviderAdapter drives the provider half of the authorization-code flow.
// Profile returns the provider's profile payload verbatim, as decoded JSON,
// so field selection stays with the identity extractor.
type ProviderAdapter interface {
	// RegistrationID is the lowercase provider name used in routes and
	// passed to the reconciler.
	RegistrationID() string

	// AuthURL builds the provider authorization URL carrying the state.
	AuthURL(state string) string

	// Profile exchanges the authorization code and fetches the raw profile.
	Profile(ctx context.Context, code string) (identity.Payload, error)
}

// fetchJSON performs an authorized GET against a provider API and decodes
// the response body into a payload map.
func fetchJSON(ctx context.Context, client *http.Client, url, accessToken string) (identity.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider api returned status %d", resp.StatusCode)
	}

	var payload identity.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
