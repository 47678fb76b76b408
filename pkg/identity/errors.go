package identity

import "errors"

// Extraction errors. Both are fatal for the request: the payload itself is
// invalid and retrying with the same input cannot succeed.
var (
	ErrUnsupportedProvider = errors.New("identity: unsupported oauth2 provider")
	ErrUnresolvedIdentity  = errors.New("identity: unable to determine external id from provider payload")
)

// Storage sentinel errors. Implementations of Storage must return these so
// callers can distinguish misses and conflicts from infrastructure failures.
var (
	ErrUserNotFound       = errors.New("identity: user not found")
	ErrEmailAlreadyExists = errors.New("identity: email already registered")
	ErrProviderIDTaken    = errors.New("identity: provider identity already bound to a user")
)

// Local credential errors. ErrEmailRequired flags invalid registration
// input; ErrInvalidCredentials is reserved for authentication failures so
// callers cannot enumerate which emails are registered.
var (
	ErrEmailRequired       = errors.New("identity: email is required")
	ErrInvalidCredentials  = errors.New("identity: invalid credentials")
	ErrWeakPassword        = errors.New("identity: password does not meet minimum requirements")
	ErrVerificationInvalid = errors.New("identity: unknown email verification token")
	ErrVerificationExpired = errors.New("identity: email verification token expired")
)
