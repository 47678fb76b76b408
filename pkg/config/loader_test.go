package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumehub/authkit/pkg/config"
)

type testConfig struct {
	Host    string        `env:"TEST_CONFIG_HOST" envDefault:"localhost"`
	Port    int           `env:"TEST_CONFIG_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"TEST_CONFIG_TIMEOUT" envDefault:"10s"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults when env is empty", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
	})

	t.Run("reads values from environment", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_HOST", "auth.internal")
		t.Setenv("TEST_CONFIG_PORT", "9090")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "auth.internal", cfg.Host)
		assert.Equal(t, 9090, cfg.Port)
	})

	t.Run("rejects nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("reports unparsable values", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_PORT", "not-a-number")

		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on invalid config", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_TIMEOUT", "eleven")

		assert.Panics(t, func() {
			var cfg testConfig
			config.MustLoad(&cfg)
		})
	})
}
