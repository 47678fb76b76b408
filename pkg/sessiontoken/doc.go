// Package sessiontoken issues and verifies the compact signed tokens that
// represent an authenticated session.
//
// A token is a standard HS256 JWT carrying exactly three claims: the internal
// user id as subject, the issue time, and the expiry time. Validity is
// determined entirely by the signature and the expiry claim; there is no
// server-side session state and no revocation list. A token can therefore not
// be revoked early without rotating the signing key — a known and accepted
// property of this design.
//
// The implementation sticks to crypto/hmac and encoding/base64 from the
// standard library; HMAC-SHA256 keeps signing and verification cheap enough
// for per-request hot paths.
//
// # Usage
//
//	codec, err := sessiontoken.New(signingKey)
//	if err != nil {
//		// handle error
//	}
//
//	tok, err := codec.Issue(user.ID.String(), 24*time.Hour)
//
//	if codec.Validate(tok) {
//		subject, _ := codec.Subject(tok)
//		// subject is the user id the token was issued for
//	}
//
// Validate, Subject and IsExpired answer deliberately narrow questions so
// middleware, diagnostics and refresh logic can branch independently:
// Validate never returns an error, Subject only cares about the signature,
// and IsExpired treats anything unverifiable as expired.
//
// The middleware in middleware.go consumes tokens as Bearer credentials and
// injects the verified subject into the request context.
package sessiontoken
