package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/resumehub/authkit/pkg/logger"
	"github.com/resumehub/authkit/pkg/sessiontoken"
)

const minPasswordLength = 8

// PasswordService provides password-based registration and login for
// accounts that are not backed by an external identity provider.
type PasswordService struct {
	storage         Storage
	codec           *sessiontoken.Codec
	logger          *slog.Logger
	bcryptCost      int
	tokenTTL        time.Duration
	verificationTTL time.Duration

	// Hook for dispatching the verification email; the service itself never
	// talks to a mail provider.
	afterRegister func(ctx context.Context, user *User) error
}

// PasswordOption configures a PasswordService during construction.
type PasswordOption func(*PasswordService)

// WithPasswordLogger configures the logger for the service.
func WithPasswordLogger(l *slog.Logger) PasswordOption {
	return func(s *PasswordService) {
		s.logger = l
	}
}

// WithBcryptCost configures the bcrypt cost for password hashing.
func WithBcryptCost(cost int) PasswordOption {
	return func(s *PasswordService) {
		s.bcryptCost = cost
	}
}

// WithPasswordTokenTTL configures the lifetime of session tokens minted on login.
func WithPasswordTokenTTL(ttl time.Duration) PasswordOption {
	return func(s *PasswordService) {
		s.tokenTTL = ttl
	}
}

// WithVerificationTTL configures the lifetime of email verification tokens.
func WithVerificationTTL(ttl time.Duration) PasswordOption {
	return func(s *PasswordService) {
		s.verificationTTL = ttl
	}
}

// WithAfterRegister configures a hook that runs after successful
// registration, typically to send the verification email.
func WithAfterRegister(fn func(context.Context, *User) error) PasswordOption {
	return func(s *PasswordService) {
		s.afterRegister = fn
	}
}

// NewPasswordService constructs a password authentication service.
// Defaults: bcrypt.DefaultCost, tokenTTL = 24h, verificationTTL = 24h,
// logger discards.
func NewPasswordService(storage Storage, codec *sessiontoken.Codec, opts ...PasswordOption) *PasswordService {
	s := &PasswordService{
		storage:         storage,
		codec:           codec,
		logger:          logger.NewDiscard(),
		bcryptCost:      bcrypt.DefaultCost,
		tokenTTL:        24 * time.Hour,
		verificationTTL: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a locally-registered account with a hashed password and a
// pending email verification token.
func (s *PasswordService) Register(ctx context.Context, name, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if isBlank(email) {
		return nil, ErrEmailRequired
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken, err := generateVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	now := time.Now()
	user := &User{
		ID:                  uuid.New(),
		Name:                name,
		Email:               email,
		PasswordHash:        hash,
		Provider:            ProviderLocal,
		SubscriptionPlan:    DefaultSubscriptionPlan,
		EmailVerified:       false,
		VerificationToken:   verificationToken,
		VerificationExpires: now.Add(s.verificationTTL),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if isBlank(user.Name) {
		user.Name = email
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.afterRegister != nil {
		hookCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := s.afterRegister(hookCtx, user); err != nil {
			s.logger.Error("afterRegister hook failed",
				logger.UserID(user.ID.String()),
				logger.Error(err),
				logger.Component("password"),
			)
		}
	}

	return user, nil
}

// Authenticate verifies local credentials and mints a session token.
// Lookup misses and hash mismatches both surface as ErrInvalidCredentials so
// callers cannot enumerate which emails are registered.
func (s *PasswordService) Authenticate(ctx context.Context, email, password string) (*User, string, error) {
	email = normalizeEmail(email)

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if len(user.PasswordHash) == 0 {
		// Provider-backed account without a local password.
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID.String(), s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return user, token, nil
}

// VerifyEmail consumes a verification token and marks the account's email as
// verified.
func (s *PasswordService) VerifyEmail(ctx context.Context, token string) (*User, error) {
	if isBlank(token) {
		return nil, ErrVerificationInvalid
	}

	user, err := s.storage.GetUserByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrVerificationInvalid
		}
		return nil, fmt.Errorf("failed to look up verification token: %w", err)
	}

	if time.Now().After(user.VerificationExpires) {
		return nil, ErrVerificationExpired
	}

	if err := s.storage.MarkEmailVerified(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}

	user.EmailVerified = true
	return user, nil
}

func generateVerificationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
