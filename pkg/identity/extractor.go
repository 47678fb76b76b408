package identity

import "fmt"

// ExternalID derives the provider-scoped stable identity key from a raw
// profile payload. Authentication cannot proceed without one: an absent or
// blank value fails with ErrUnresolvedIdentity.
func ExternalID(payload Payload, provider Provider) (string, error) {
	key, ok := providerSelectors[provider]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}

	id := payload.String(key)
	if isBlank(id) {
		return "", fmt.Errorf("%w: provider %q payload has no %q attribute", ErrUnresolvedIdentity, provider, key)
	}
	return id, nil
}

// Username derives a display name from a raw profile payload. The payload's
// email wins when present and non-blank; otherwise the provider-specific
// fallback attribute is consulted, and as a last resort the already-resolved
// external id guarantees a non-empty result.
//
// registrationID is matched against the fallback table verbatim; see the
// note on usernameFallbacks about case sensitivity.
func Username(payload Payload, registrationID, externalID string) string {
	if email := payload.String("email"); !isBlank(email) {
		return email
	}

	if key, ok := usernameFallbacks[registrationID]; ok {
		if v := payload.String(key); !isBlank(v) {
			return v
		}
	}
	return externalID
}
