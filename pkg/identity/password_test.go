package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates unverified local account", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t), WithBcryptCost(bcrypt.MinCost))

		storage.On("GetUserByEmail", mock.Anything, "jane@x.com").Return(nil, ErrUserNotFound).Once()
		storage.On("CreateUser", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil).Once()

		user, err := svc.Register(context.Background(), "Jane", "  Jane@X.com ", "s3cret-pass")
		require.NoError(t, err)

		assert.Equal(t, "Jane", user.Name)
		assert.Equal(t, "jane@x.com", user.Email)
		assert.Equal(t, ProviderLocal, user.Provider)
		assert.Equal(t, DefaultSubscriptionPlan, user.SubscriptionPlan)
		assert.False(t, user.EmailVerified)
		assert.NotEmpty(t, user.VerificationToken)
		assert.True(t, user.VerificationExpires.After(time.Now()))

		// Stored hash verifies against the original password.
		assert.NoError(t, bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("s3cret-pass")))

		storage.AssertExpectations(t)
	})

	t.Run("name defaults to email", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t), WithBcryptCost(bcrypt.MinCost))

		storage.On("GetUserByEmail", mock.Anything, "jane@x.com").Return(nil, ErrUserNotFound).Once()
		storage.On("CreateUser", mock.Anything, mock.Anything).Return(nil).Once()

		user, err := svc.Register(context.Background(), "  ", "jane@x.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "jane@x.com", user.Name)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t))

		storage.On("GetUserByEmail", mock.Anything, "jane@x.com").Return(&User{ID: uuid.New()}, nil).Once()

		_, err := svc.Register(context.Background(), "Jane", "jane@x.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
		storage.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t))

		_, err := svc.Register(context.Background(), "Jane", "jane@x.com", "short")
		assert.ErrorIs(t, err, ErrWeakPassword)
		storage.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("rejects blank email", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t))

		_, err := svc.Register(context.Background(), "Jane", "   ", "s3cret-pass")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("afterRegister hook failure does not fail registration", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t),
			WithBcryptCost(bcrypt.MinCost),
			WithAfterRegister(func(context.Context, *User) error {
				return errors.New("smtp down")
			}),
		)

		storage.On("GetUserByEmail", mock.Anything, "jane@x.com").Return(nil, ErrUserNotFound).Once()
		storage.On("CreateUser", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := svc.Register(context.Background(), "Jane", "jane@x.com", "s3cret-pass")
		assert.NoError(t, err)
	})
}

func TestPasswordService_Authenticate(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &User{
		ID:           uuid.New(),
		Email:        "jane@x.com",
		PasswordHash: hash,
		Provider:     ProviderLocal,
	}

	t.Run("valid credentials mint a session token", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		codec := newTestCodec(t)
		svc := NewPasswordService(storage, codec)

		storage.On("GetUserByEmail", mock.Anything, "jane@x.com").Return(stored, nil).Once()

		user, token, err := svc.Authenticate(context.Background(), "Jane@X.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)

		subject, err := codec.Subject(token)
		require.NoError(t, err)
		assert.Equal(t, stored.ID.String(), subject)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t))

		storage.On("GetUserByEmail", mock.Anything, "jane@x.com").Return(stored, nil).Once()

		_, _, err := svc.Authenticate(context.Background(), "jane@x.com", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t))

		storage.On("GetUserByEmail", mock.Anything, "nobody@x.com").Return(nil, ErrUserNotFound).Once()

		_, _, err := svc.Authenticate(context.Background(), "nobody@x.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("provider account without password fails", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t))

		oauthUser := &User{ID: uuid.New(), Email: "jane@x.com", Provider: ProviderGoogle}
		storage.On("GetUserByEmail", mock.Anything, "jane@x.com").Return(oauthUser, nil).Once()

		_, _, err := svc.Authenticate(context.Background(), "jane@x.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestPasswordService_VerifyEmail(t *testing.T) {
	t.Parallel()

	t.Run("valid token marks email verified", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t))

		stored := &User{
			ID:                  uuid.New(),
			Email:               "jane@x.com",
			VerificationToken:   "tok-1",
			VerificationExpires: time.Now().Add(time.Hour),
		}

		storage.On("GetUserByVerificationToken", mock.Anything, "tok-1").Return(stored, nil).Once()
		storage.On("MarkEmailVerified", mock.Anything, stored.ID).Return(nil).Once()

		user, err := svc.VerifyEmail(context.Background(), "tok-1")
		require.NoError(t, err)
		assert.True(t, user.EmailVerified)
		storage.AssertExpectations(t)
	})

	t.Run("expired token fails", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t))

		stored := &User{
			ID:                  uuid.New(),
			VerificationToken:   "tok-2",
			VerificationExpires: time.Now().Add(-time.Minute),
		}

		storage.On("GetUserByVerificationToken", mock.Anything, "tok-2").Return(stored, nil).Once()

		_, err := svc.VerifyEmail(context.Background(), "tok-2")
		assert.ErrorIs(t, err, ErrVerificationExpired)
		storage.AssertNotCalled(t, "MarkEmailVerified", mock.Anything, mock.Anything)
	})

	t.Run("unknown token fails", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t))

		storage.On("GetUserByVerificationToken", mock.Anything, "tok-3").Return(nil, ErrUserNotFound).Once()

		_, err := svc.VerifyEmail(context.Background(), "tok-3")
		assert.ErrorIs(t, err, ErrVerificationInvalid)
	})

	t.Run("blank token fails without lookup", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewPasswordService(storage, newTestCodec(t))

		_, err := svc.VerifyEmail(context.Background(), "  ")
		assert.ErrorIs(t, err, ErrVerificationInvalid)
		storage.AssertNotCalled(t, "GetUserByVerificationToken", mock.Anything, mock.Anything)
	})
}
