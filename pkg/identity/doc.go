// Package identity maps freshly authenticated external identities onto local
// user records and mints the session token that represents the result.
//
// The package has three layers:
//
//   - Pure extraction: ClassifyProvider, ExternalID and Username derive a
//     provider kind, a stable provider-scoped identity key and a display
//     name from the raw attribute payload an OAuth2 provider returns.
//     They depend on nothing but their inputs.
//   - Reconciliation: Reconciler looks up or creates the user record bound
//     to (provider, external id) and asks the session-token codec for a
//     token. It is the only writer of provider-bound user records.
//   - Local credentials: PasswordService covers password-based registration
//     and login for accounts not backed by an external provider, including
//     the email-verification token lifecycle.
//
// # Reconciliation
//
//	reconciler := identity.NewReconciler(storage, codec,
//		identity.WithTokenTTL(12*time.Hour),
//		identity.WithReconcilerLogger(log),
//	)
//
//	user, token, err := reconciler.Reconcile(ctx, "github", payload)
//	if err != nil {
//		switch {
//		case errors.Is(err, identity.ErrUnsupportedProvider):
//			// unknown provider name - not retryable
//		case errors.Is(err, identity.ErrUnresolvedIdentity):
//			// payload lacks a usable external id - not retryable
//		default:
//			// storage failure - retryable with backoff
//		}
//	}
//
// An existing record is returned as-is: the provider payload is not treated
// as a source of truth for already-stored profile data, so a low-fidelity
// token can never silently overwrite it. Two records may share an email when
// a person signs in through two providers; they are never merged here.
//
// Concurrent reconciliations for the same identity may race to create the
// record. The storage layer enforces uniqueness of (provider, external id)
// and reports ErrProviderIDTaken, which the reconciler resolves by
// re-fetching the winner's record and proceeding.
//
// # Storage
//
// Persistence is abstracted behind the Storage interface; pkg/userstore
// provides the MongoDB implementation. Implementations must return
// ErrUserNotFound for lookup misses and ErrProviderIDTaken for uniqueness
// violations so callers can branch on sentinel errors.
package identity
