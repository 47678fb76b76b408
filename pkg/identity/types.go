package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSubscriptionPlan is assigned to every newly created account.
const DefaultSubscriptionPlan = "basic"

// User is the durable account record an authenticated identity resolves to.
//
// For provider-backed accounts ProviderID holds the provider-scoped external
// id and PasswordHash is empty; for locally registered accounts the inverse
// holds. The pair (Provider, ProviderID) is unique among records with a
// non-empty ProviderID — the storage layer enforces this.
type User struct {
	ID                  uuid.UUID
	Name                string
	Email               string
	PasswordHash        []byte
	AvatarURL           string
	Provider            Provider
	ProviderID          string
	SubscriptionPlan    string
	EmailVerified       bool
	VerificationToken   string
	VerificationExpires time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Storage is the persistence contract for user records.
//
// Lookup misses are reported as ErrUserNotFound. CreateUser must report a
// violation of the (provider, provider id) uniqueness invariant as
// ErrProviderIDTaken so concurrent duplicate creation can be resolved by the
// caller.
type Storage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByProvider(ctx context.Context, provider Provider, providerID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByVerificationToken(ctx context.Context, token string) (*User, error)
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
}

// Payload is the raw attribute mapping returned by an identity provider.
// Its shape varies per provider and it is never persisted verbatim.
type Payload map[string]any

// String returns the payload attribute coerced to a string. Providers are
// inconsistent about numeric ids (GitHub returns a JSON number), so numeric
// values are formatted without an exponent or trailing zeros.
func (p Payload) String(key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// isBlank treats absent and whitespace-only values the same way: both mean
// "missing" for fallback purposes.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// normalizeEmail lowercases and trims an email address before lookups and
// persistence so casing differences cannot create duplicate accounts.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
