// Package oauthstate issues and consumes one-time CSRF state values for the
// OAuth2 authorization-code flow, backed by Redis.
//
// A state is a random opaque string stored with a TTL. Consume is strictly
// one-shot: it deletes the key atomically with the read (GETDEL), so a
// replayed callback fails even when two callbacks race. An unknown, expired,
// or already-consumed state all surface as ErrStateNotFound.
package oauthstate
