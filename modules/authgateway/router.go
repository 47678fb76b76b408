package authgateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resumehub/authkit/pkg/sessiontoken"
)

// Handle returns the gateway's HTTP handler, meant to be mounted at the
// server root.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Route("/oauth/{provider}", func(pr chi.Router) {
		pr.Get("/login", s.handleOAuthLogin)
		pr.Get("/callback", s.handleOAuthCallback)
	})

	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", s.handleRegister)
		ar.Post("/login", s.handleLogin)
		ar.Get("/verify", s.handleVerifyEmail)

		if s.codec != nil && s.users != nil {
			ar.Group(func(gr chi.Router) {
				gr.Use(sessiontoken.Middleware(s.codec))
				gr.Get("/me", s.handleMe)
			})
		}
	})

	return r
}
