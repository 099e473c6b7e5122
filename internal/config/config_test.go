package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SESSION_TTL", "90m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
}

func TestLoadConfig_BadTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SOME_KEY", "set")
	assert.Equal(t, "set", GetEnv("SOME_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SOME_OTHER_KEY", "fallback"))
}
