package sessiontoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// JWT header constants required by RFC 7519.
const (
	headerType      = "JWT"
	headerAlgorithm = "HS256"
)

type header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// Claims is the fixed claim set of a session token.
type Claims struct {
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Config describes session-token issuance.
type Config struct {
	SigningKey string        `env:"SESSION_TOKEN_SECRET,required"`
	TTL        time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"24h"`
}

// Codec signs and verifies session tokens with HMAC-SHA256.
// The signing key is loaded once at construction and never mutated, so a
// single Codec is safe for concurrent use across request workers.
type Codec struct {
	signingKey []byte
}

// New creates a codec with the provided signing key.
// The key should be at least 32 bytes for adequate security with HMAC-SHA256.
func New(signingKey []byte) (*Codec, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &Codec{signingKey: signingKey}, nil
}

// NewFromString creates a codec from a string signing key.
// Convenience wrapper around New for string-based configuration.
func NewFromString(signingKey string) (*Codec, error) {
	return New([]byte(signingKey))
}

// Issue creates a signed token for the given subject with claims
// {sub, iat = now, exp = now + ttl}.
func (c *Codec) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Subject:   subject,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}

	headerJSON, err := json.Marshal(header{Type: headerType, Algorithm: headerAlgorithm})
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}

	payload := base64URLEncode(headerJSON) + "." + base64URLEncode(claimsJSON)
	return payload + "." + c.sign(payload), nil
}

// Validate reports whether the token's signature verifies against the
// signing key, its subject claim is present, and its expiry lies in the
// future. Every token Issue produces carries a subject; requiring one here
// rejects tokens minted elsewhere with an empty sub that downstream auth
// checks could not attribute to an account. Validate never returns an error:
// malformed tokens, wrong signatures and missing claims all yield false so
// callers on hot paths can treat every invalid token uniformly.
func (c *Codec) Validate(token string) bool {
	claims, err := c.parse(token)
	if err != nil {
		return false
	}
	return claims.Subject != "" && claims.ExpiresAt > time.Now().Unix()
}

// Subject extracts the subject claim after verifying the signature only.
// Expiry is deliberately not checked here; callers in security-sensitive
// contexts must call Validate before trusting the result.
func (c *Codec) Subject(token string) (string, error) {
	claims, err := c.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IsExpired reports whether the token's expiry has passed. A token that
// cannot be verified is treated as expired.
func (c *Codec) IsExpired(token string) bool {
	claims, err := c.parse(token)
	if err != nil {
		return true
	}
	return time.Now().Unix() >= claims.ExpiresAt
}

// parse verifies the signature and decodes the claim set. Temporal claims
// are not evaluated here; Validate and IsExpired layer that on top.
func (c *Codec) parse(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	// Constant-time comparison prevents timing attacks on the signature.
	payload := parts[0] + "." + parts[1]
	expected := c.sign(payload)
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(expected)) != 1 {
		return Claims{}, ErrInvalidToken
	}

	headerJSON, err := base64URLDecode(parts[0])
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}
	var h header
	if err := json.Unmarshal(headerJSON, &h); err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}
	// Reject unexpected algorithms to prevent algorithm confusion attacks.
	if h.Algorithm != headerAlgorithm {
		return Claims{}, ErrUnexpectedSigningMethod
	}

	claimsJSON, err := base64URLDecode(parts[1])
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}
	var claims Claims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}
	return claims, nil
}

func (c *Codec) sign(payload string) string {
	h := hmac.New(sha256.New, c.signingKey)
	h.Write([]byte(payload))
	return base64URLEncode(h.Sum(nil))
}

// base64url without padding, as required by RFC 7515.
func base64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func base64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
