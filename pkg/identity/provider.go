package identity

import (
	"fmt"
	"strings"
)

// Provider classifies the source of an identity.
type Provider string

const (
	// ProviderLocal marks accounts registered with email and password.
	ProviderLocal Provider = "local"

	ProviderGoogle   Provider = "google"
	ProviderGithub   Provider = "github"
	ProviderFacebook Provider = "facebook"
)

// providerSelectors maps a provider kind to the payload field carrying its
// stable external id. Adding a provider means adding one entry here and, if
// the provider needs one, a username fallback below.
var providerSelectors = map[Provider]string{
	ProviderGoogle:   "sub",
	ProviderGithub:   "id",
	ProviderFacebook: "id",
}

// usernameFallbacks selects the display-name attribute used when the payload
// carries no email. Keys are raw registration ids and are matched
// case-sensitively, while ClassifyProvider lowercases its input; a mixed-case
// registration id such as "Google" therefore classifies correctly but falls
// through to the external-id fallback. Observed behavior, kept as-is because
// downstream consumers may rely on either reading.
var usernameFallbacks = map[string]string{
	"google": "sub",
	"github": "login",
}

// ClassifyProvider maps a case-insensitive provider registration name to a
// Provider. Unknown names fail with ErrUnsupportedProvider carrying the
// offending name.
func ClassifyProvider(name string) (Provider, error) {
	switch strings.ToLower(name) {
	case "google":
		return ProviderGoogle, nil
	case "github":
		return ProviderGithub, nil
	case "facebook":
		return ProviderFacebook, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, name)
	}
}
