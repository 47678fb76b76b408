package authgateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/resumehub/authkit/pkg/identity"
	"github.com/resumehub/authkit/pkg/logger"
	"github.com/resumehub/authkit/pkg/sessiontoken"
)

// handleOAuthLogin starts the authorization-code flow: it mints a one-time
// state bound to the provider and redirects the browser to the provider's
// consent screen.
func (s *Service) handleOAuthLogin(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "provider")

	adapter, ok := s.adapter(name)
	if !ok {
		s.logger.Warn("login requested for unknown provider",
			logger.Provider(name),
			logger.Component("authgateway"),
		)
		s.redirectLoginError(w, r)
		return
	}

	state, err := s.states.Issue(r.Context(), adapter.RegistrationID())
	if err != nil {
		s.logger.Error("failed to issue oauth state",
			logger.Provider(adapter.RegistrationID()),
			logger.Error(err),
			logger.Component("authgateway"),
		)
		s.redirectLoginError(w, r)
		return
	}

	http.Redirect(w, r, adapter.AuthURL(state), http.StatusFound)
}

// handleOAuthCallback completes the flow. Every failure, whatever its cause,
// redirects to the frontend login page with error=oauth and leaves
// persistence untouched; only a fully reconciled identity reaches the
// frontend callback with a session token.
func (s *Service) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "provider")
	query := r.URL.Query()

	adapter, ok := s.adapter(name)
	if !ok {
		s.logger.Warn("callback for unknown provider",
			logger.Provider(name),
			logger.Component("authgateway"),
		)
		s.redirectLoginError(w, r)
		return
	}
	providerName := adapter.RegistrationID()

	if errParam := query.Get("error"); errParam != "" {
		s.logger.Warn("provider returned an error",
			logger.Provider(providerName),
			logger.Component("authgateway"),
		)
		s.redirectLoginError(w, r)
		return
	}

	// Consume before anything else so a replayed callback dies here.
	issuedFor, err := s.states.Consume(r.Context(), query.Get("state"))
	if err != nil || issuedFor != providerName {
		s.logger.Warn("oauth state rejected",
			logger.Provider(providerName),
			logger.Error(err),
			logger.Component("authgateway"),
		)
		s.redirectLoginError(w, r)
		return
	}

	code := query.Get("code")
	if code == "" {
		s.redirectLoginError(w, r)
		return
	}

	payload, err := adapter.Profile(r.Context(), code)
	if err != nil {
		s.logger.Error("failed to fetch provider profile",
			logger.Provider(providerName),
			logger.Error(err),
			logger.Component("authgateway"),
		)
		s.redirectLoginError(w, r)
		return
	}

	user, token, err := s.reconciler.Reconcile(r.Context(), providerName, payload)
	if err != nil {
		s.logger.Error("failed to reconcile identity",
			logger.Provider(providerName),
			logger.Error(err),
			logger.Component("authgateway"),
		)
		s.redirectLoginError(w, r)
		return
	}

	s.logger.Info("oauth login completed",
		logger.Provider(providerName),
		logger.UserID(user.ID.String()),
		logger.Component("authgateway"),
	)
	http.Redirect(w, r, s.cfg.FrontendURL+"/oauth/callback?token="+url.QueryEscape(token), http.StatusFound)
}

func (s *Service) redirectLoginError(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.cfg.FrontendURL+"/login?error=oauth", http.StatusFound)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email,omitempty"`
	AvatarURL        string    `json:"avatar_url,omitempty"`
	Provider         string    `json:"provider"`
	SubscriptionPlan string    `json:"subscription_plan"`
	EmailVerified    bool      `json:"email_verified"`
	CreatedAt        time.Time `json:"created_at"`
}

func toUserResponse(u *identity.User) userResponse {
	return userResponse{
		ID:               u.ID.String(),
		Name:             u.Name,
		Email:            u.Email,
		AvatarURL:        u.AvatarURL,
		Provider:         string(u.Provider),
		SubscriptionPlan: u.SubscriptionPlan,
		EmailVerified:    u.EmailVerified,
		CreatedAt:        u.CreatedAt,
	}
}

func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.passwords.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailAlreadyExists):
			respondError(w, http.StatusConflict, "email already registered")
		case errors.Is(err, identity.ErrWeakPassword):
			respondError(w, http.StatusUnprocessableEntity, "password is too weak")
		case errors.Is(err, identity.ErrEmailRequired):
			respondError(w, http.StatusUnprocessableEntity, "email is required")
		default:
			s.logger.Error("registration failed",
				logger.Error(err),
				logger.Component("authgateway"),
			)
			respondError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"user": toUserResponse(user)})
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.passwords.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.logger.Error("login failed",
			logger.Error(err),
			logger.Component("authgateway"),
		)
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserResponse(user),
	})
}

func (s *Service) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	user, err := s.passwords.VerifyEmail(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrVerificationExpired):
			respondError(w, http.StatusGone, "verification token expired")
		case errors.Is(err, identity.ErrVerificationInvalid):
			respondError(w, http.StatusBadRequest, "invalid verification token")
		default:
			s.logger.Error("email verification failed",
				logger.Error(err),
				logger.Component("authgateway"),
			)
			respondError(w, http.StatusInternalServerError, "verification failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

func (s *Service) handleMe(w http.ResponseWriter, r *http.Request) {
	subject, ok := sessiontoken.GetSubject(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.users.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		s.logger.Error("failed to load current user",
			logger.UserID(subject),
			logger.Error(err),
			logger.Component("authgateway"),
		)
		respondError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
