package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/resumehub/authkit/pkg/logger"
)

// HealthcheckHandler returns a health endpoint. With no dependency checks it
// answers liveness (200 "ALIVE"); with checks it answers readiness, failing
// with 500 "NOT_READY" when any dependency is down.
func HealthcheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					logger.Error(err),
					logger.Component("httpserver"),
				)
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
