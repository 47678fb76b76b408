// Package authgateway exposes the HTTP surface of the authentication flows:
// the OAuth2 authorization-code round-trip against external providers and
// the JSON endpoints for password-based accounts.
//
// The gateway terminates browser redirects for a separate frontend
// application. A completed provider flow lands the user on
// FRONTEND_URL/oauth/callback?token=<session token>; every failure along the
// way, whatever its cause, lands on FRONTEND_URL/login?error=oauth without
// touching persistence. Provider adapters return the raw profile payload so
// identity extraction stays in one place, in the identity package.
package authgateway
