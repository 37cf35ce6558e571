package confs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("APP_PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3536, cfg.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, 10, cfg.AuthRateBurst)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "42")
	t.Setenv("X_BAD_INT", "nope")
	t.Setenv("X_DUR", "90s")
	t.Setenv("X_LIST", " a, ,b ,")

	assert.Equal(t, 42, GetEnvAsInt("X_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("X_BAD_INT", 1))
	assert.Equal(t, 90*time.Second, GetEnvAsDuration("X_DUR", time.Second))
	assert.Equal(t, "fallback", GetEnvAsString("X_MISSING", "fallback"))
	assert.Equal(t, []string{"a", "b"}, GetEnvAsList("X_LIST"))
}
