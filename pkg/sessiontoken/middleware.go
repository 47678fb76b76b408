package sessiontoken

import (
	"net/http"
	"strings"
)

// TokenExtractorFunc defines a function that extracts a token from an HTTP request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// MiddlewareConfig configures session-token middleware behavior.
type MiddlewareConfig struct {
	Codec     *Codec             // codec used for validation
	Extractor TokenExtractorFunc // token extraction strategy (defaults to Bearer)
}

// Middleware creates middleware with default Bearer token extraction.
// It rejects requests whose token fails Validate and injects the verified
// subject into the request context for downstream handlers.
func Middleware(codec *Codec) func(next http.Handler) http.Handler {
	return MiddlewareWithConfig(MiddlewareConfig{Codec: codec})
}

// MiddlewareWithConfig creates middleware with custom configuration.
func MiddlewareWithConfig(config MiddlewareConfig) func(next http.Handler) http.Handler {
	if config.Extractor == nil {
		config.Extractor = BearerTokenExtractor
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := config.Extractor(r)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !config.Codec.Validate(token) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			// Signature already verified by Validate; Subject cannot fail here.
			subject, err := config.Codec.Subject(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := SetToken(r.Context(), token)
			ctx = SetSubject(ctx, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerTokenExtractor extracts tokens from "Authorization: Bearer <token>"
// headers, the standard transport per RFC 6750.
func BearerTokenExtractor(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

// QueryTokenExtractor creates a token extractor for URL query parameters.
// Used by front ends that receive the token via the OAuth callback redirect.
func QueryTokenExtractor(paramName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		token := r.URL.Query().Get(paramName)
		if token == "" {
			return "", ErrInvalidToken
		}
		return token, nil
	}
}
