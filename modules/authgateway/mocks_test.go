package authgateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/resumehub/authkit/pkg/identity"
)

// MockStateStore is a mock implementation of StateStore.
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Issue(ctx context.Context, provider string) (string, error) {
	args := m.Called(ctx, provider)
	return args.String(0), args.Error(1)
}

func (m *MockStateStore) Consume(ctx context.Context, state string) (string, error) {
	args := m.Called(ctx, state)
	return args.String(0), args.Error(1)
}

// MockReconciler is a mock implementation of Reconciler.
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, registrationID string, payload identity.Payload) (*identity.User, string, error) {
	args := m.Called(ctx, registrationID, payload)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*identity.User), args.String(1), args.Error(2)
}

// MockPasswordAuthenticator is a mock implementation of PasswordAuthenticator.
type MockPasswordAuthenticator struct {
	mock.Mock
}

func (m *MockPasswordAuthenticator) Register(ctx context.Context, name, email, password string) (*identity.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockPasswordAuthenticator) Authenticate(ctx context.Context, email, password string) (*identity.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*identity.User), args.String(1), args.Error(2)
}

func (m *MockPasswordAuthenticator) VerifyEmail(ctx context.Context, token string) (*identity.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

// MockUserSource is a mock implementation of UserSource.
type MockUserSource struct {
	mock.Mock
}

func (m *MockUserSource) GetUserByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

// stubAdapter is a configurable in-memory ProviderAdapter.
type stubAdapter struct {
	id      string
	authURL func(state string) string
	profile func(ctx context.Context, code string) (identity.Payload, error)
}

func (a *stubAdapter) RegistrationID() string { return a.id }

func (a *stubAdapter) AuthURL(state string) string {
	if a.authURL != nil {
		return a.authURL(state)
	}
	return "https://provider.example/authorize?state=" + state
}

func (a *stubAdapter) Profile(ctx context.Context, code string) (identity.Payload, error) {
	if a.profile != nil {
		return a.profile(ctx, code)
	}
	return identity.Payload{}, nil
}
