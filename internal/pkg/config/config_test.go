package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, uint32(4), cfg.Argon2.Iterations)
	assert.Equal(t, uint32(65536), cfg.Argon2.MemoryKB)
	assert.Equal(t, uint8(1), cfg.Argon2.Parallelism)
}

func TestLoad_RequiredVars(t *testing.T) {
	t.Run("missing postgres password", func(t *testing.T) {
		t.Setenv("POSTGRES_PASSWORD", "")
		t.Setenv("JWT_SECRET", "secret")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("POSTGRES_PASSWORD", "pw")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestLoad_TTLMillis(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_TTL_MILLIS", "1500")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.JWT.TTL)
}

func TestLoad_Argon2OutOfRange(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"negative parallelism", "ARGON2_PARALLELISM", "-1"},
		{"parallelism above uint8", "ARGON2_PARALLELISM", "256"},
		{"zero iterations", "ARGON2_ITERATIONS", "0"},
		{"negative memory", "ARGON2_MEMORY_KB", "-65536"},
		{"memory above uint32", "ARGON2_MEMORY_KB", "4294967296"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}
