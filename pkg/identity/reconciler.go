package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resumehub/authkit/pkg/logger"
	"github.com/resumehub/authkit/pkg/sessiontoken"
)

// Reconciler binds authenticated external identities to local user records
// and mints session tokens for the result. It is safe for concurrent use;
// the only shared mutable resource is the storage layer.
type Reconciler struct {
	storage  Storage
	codec    *sessiontoken.Codec
	logger   *slog.Logger
	tokenTTL time.Duration

	// Hook for extending reconciliation behavior.
	afterCreate func(ctx context.Context, user *User) error
}

// ReconcilerOption configures a Reconciler during construction.
type ReconcilerOption func(*Reconciler)

// WithReconcilerLogger configures the logger for the reconciler.
func WithReconcilerLogger(l *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		r.logger = l
	}
}

// WithTokenTTL configures the lifetime of minted session tokens.
func WithTokenTTL(ttl time.Duration) ReconcilerOption {
	return func(r *Reconciler) {
		r.tokenTTL = ttl
	}
}

// WithAfterCreate configures a hook that runs after a new user record is
// created. Hook failures are logged, never surfaced: the authentication
// itself has already succeeded.
func WithAfterCreate(fn func(context.Context, *User) error) ReconcilerOption {
	return func(r *Reconciler) {
		r.afterCreate = fn
	}
}

// NewReconciler constructs a reconciler.
// Defaults: tokenTTL = 24h, logger discards.
func NewReconciler(storage Storage, codec *sessiontoken.Codec, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		storage:  storage,
		codec:    codec,
		logger:   logger.NewDiscard(),
		tokenTTL: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile resolves the raw provider payload to a local user record,
// creating one when the (provider, external id) pair is seen for the first
// time, and returns the record together with a freshly minted session token.
//
// Classification and extraction failures (ErrUnsupportedProvider,
// ErrUnresolvedIdentity) are not retryable; storage failures are, with
// caller-side backoff.
func (r *Reconciler) Reconcile(ctx context.Context, registrationID string, payload Payload) (*User, string, error) {
	provider, err := ClassifyProvider(registrationID)
	if err != nil {
		return nil, "", err
	}

	externalID, err := ExternalID(payload, provider)
	if err != nil {
		return nil, "", err
	}

	username := Username(payload, registrationID, externalID)

	user, err := r.storage.GetUserByProvider(ctx, provider, externalID)
	switch {
	case err == nil:
		// Existing record wins untouched: the payload is not a source of
		// truth for already-stored profile data.
	case errors.Is(err, ErrUserNotFound):
		user, err = r.createUser(ctx, provider, externalID, username, payload)
		if err != nil {
			return nil, "", err
		}
	default:
		return nil, "", fmt.Errorf("failed to look up user by provider identity: %w", err)
	}

	token, err := r.codec.Issue(user.ID.String(), r.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return user, token, nil
}

func (r *Reconciler) createUser(ctx context.Context, provider Provider, externalID, username string, payload Payload) (*User, error) {
	now := time.Now()
	user := &User{
		ID:               uuid.New(),
		Name:             username,
		Email:            normalizeEmail(payload.String("email")),
		AvatarURL:        firstNonBlank(payload.String("picture"), payload.String("avatar_url")),
		Provider:         provider,
		ProviderID:       externalID,
		SubscriptionPlan: DefaultSubscriptionPlan,
		// Providers are trusted to have verified email ownership.
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := r.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrProviderIDTaken) {
			// Lost the race against a concurrent reconciliation for the same
			// identity; the winner's record is the canonical one.
			existing, fetchErr := r.storage.GetUserByProvider(ctx, provider, externalID)
			if fetchErr != nil {
				return nil, fmt.Errorf("failed to re-fetch user after create conflict: %w", fetchErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if r.afterCreate != nil {
		hookCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := r.afterCreate(hookCtx, user); err != nil {
			r.logger.Error("afterCreate hook failed",
				logger.UserID(user.ID.String()),
				logger.Provider(string(provider)),
				logger.Error(err),
				logger.Component("reconciler"),
			)
		}
	}

	return user, nil
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if !isBlank(v) {
			return v
		}
	}
	return ""
}
