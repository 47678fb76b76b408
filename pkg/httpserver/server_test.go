package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumehub/authkit/pkg/httpserver"
	"github.com/resumehub/authkit/pkg/logger"
)

func TestServerRun(t *testing.T) {
	t.Parallel()

	t.Run("shuts down on context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := httpserver.New(httpserver.Config{
			Addr:            "localhost:0",
			ShutdownTimeout: time.Second,
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- srv.Run(ctx, http.NotFoundHandler())
		}()

		time.Sleep(100 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("reports listener failures", func(t *testing.T) {
		t.Parallel()

		srv := httpserver.New(httpserver.Config{
			Addr:            "256.256.256.256:0",
			ShutdownTimeout: time.Second,
		})

		err := srv.Run(context.Background(), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, httpserver.ErrStart))
	})
}

func TestHealthcheckHandler(t *testing.T) {
	t.Parallel()

	log := logger.NewDiscard()

	t.Run("liveness with no checks", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		httpserver.HealthcheckHandler(log).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ALIVE", rec.Body.String())
	})

	t.Run("readiness with passing checks", func(t *testing.T) {
		t.Parallel()

		ok := func(context.Context) error { return nil }
		rec := httptest.NewRecorder()
		httpserver.HealthcheckHandler(log, ok, ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})

	t.Run("readiness with a failing check", func(t *testing.T) {
		t.Parallel()

		failing := func(context.Context) error { return errors.New("dependency down") }
		rec := httptest.NewRecorder()
		httpserver.HealthcheckHandler(log, failing).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "NOT_READY", rec.Body.String())
	})
}
