package oauthstate

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "oauth:state:"

// Store issues and consumes one-time OAuth state values.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a state store. A non-positive ttl falls back to 10
// minutes, which comfortably covers a user completing a provider consent
// screen.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Store{client: client, ttl: ttl}
}

// Issue mints a random state value bound to the given provider and stores it
// with the configured TTL.
func (s *Store) Issue(ctx context.Context, provider string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	state := base64.RawURLEncoding.EncodeToString(b)

	// NX guards against the astronomically unlikely collision overwriting a
	// live state for another flow.
	ok, err := s.client.SetNX(ctx, keyPrefix+state, provider, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to store state: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("state collision for %q", state)
	}
	return state, nil
}

// Consume validates a state value returned by the provider callback and
// deletes it in the same operation. It returns the provider the state was
// issued for; a second Consume of the same state fails with ErrStateNotFound.
func (s *Store) Consume(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", ErrStateNotFound
	}

	provider, err := s.client.GetDel(ctx, keyPrefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrStateNotFound
		}
		return "", fmt.Errorf("failed to consume state: %w", err)
	}
	return provider, nil
}
