package sessiontoken

import "errors"

var (
	// ErrInvalidToken is returned when a token is malformed or its signature
	// does not verify against the signing key.
	ErrInvalidToken = errors.New("sessiontoken: invalid token")

	// ErrMissingSigningKey is returned when a codec is constructed without a key.
	ErrMissingSigningKey = errors.New("sessiontoken: missing signing key")

	// ErrUnexpectedSigningMethod is returned when a token declares an
	// algorithm other than HS256.
	ErrUnexpectedSigningMethod = errors.New("sessiontoken: unexpected signing method")
)
