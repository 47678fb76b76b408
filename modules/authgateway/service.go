package authgateway

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/resumehub/authkit/pkg/identity"
	"github.com/resumehub/authkit/pkg/logger"
	"github.com/resumehub/authkit/pkg/sessiontoken"
)

// StateStore issues and consumes one-time CSRF state values.
type StateStore interface {
	Issue(ctx context.Context, provider string) (string, error)
	Consume(ctx context.Context, state string) (string, error)
}

// Reconciler resolves a provider payload to a user record and session token.
type Reconciler interface {
	Reconcile(ctx context.Context, registrationID string, payload identity.Payload) (*identity.User, string, error)
}

// PasswordAuthenticator backs the local-account JSON endpoints.
type PasswordAuthenticator interface {
	Register(ctx context.Context, name, email, password string) (*identity.User, error)
	Authenticate(ctx context.Context, email, password string) (*identity.User, string, error)
	VerifyEmail(ctx context.Context, token string) (*identity.User, error)
}

// UserSource fetches user records for authenticated requests.
type UserSource interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*identity.User, error)
}

// Service terminates the authentication HTTP flows.
type Service struct {
	cfg        Config
	adapters   map[string]ProviderAdapter
	states     StateStore
	reconciler Reconciler
	passwords  PasswordAuthenticator
	logger     *slog.Logger

	codec *sessiontoken.Codec
	users UserSource
}

// Option configures a Service during construction.
type Option func(*Service)

// WithLogger configures the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithSessionGuard enables the authenticated /auth/me endpoint, guarded by
// bearer-token middleware backed by the given codec.
func WithSessionGuard(codec *sessiontoken.Codec, users UserSource) Option {
	return func(s *Service) {
		s.codec = codec
		s.users = users
	}
}

// NewService constructs the gateway service. Adapters register under their
// lowercase RegistrationID; route matching lowercases the path segment, so
// /oauth/Google/login reaches the google adapter.
func NewService(
	cfg Config,
	states StateStore,
	reconciler Reconciler,
	passwords PasswordAuthenticator,
	adapters []ProviderAdapter,
	opts ...Option,
) *Service {
	s := &Service{
		cfg:        cfg,
		adapters:   make(map[string]ProviderAdapter, len(adapters)),
		states:     states,
		reconciler: reconciler,
		passwords:  passwords,
		logger:     logger.NewDiscard(),
	}
	for _, a := range adapters {
		s.adapters[strings.ToLower(a.RegistrationID())] = a
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) adapter(name string) (ProviderAdapter, bool) {
	a, ok := s.adapters[strings.ToLower(name)]
	return a, ok
}
