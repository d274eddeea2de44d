package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears an env var for the test while keeping t.Setenv's restore.
func unset(t *testing.T, key string) {
	t.Setenv(key, "")
	_ = os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fitcoach")
	for _, key := range []string{"PORT", "REDIS_ADDR", "GROQ_API_KEY", "GROQ_MODEL", "ADVICE_TIMEOUT", "WEEKLY_GOAL"} {
		unset(t, key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Advice.Model)
	assert.Equal(t, 10*time.Second, cfg.Advice.Timeout)
	assert.Equal(t, 4, cfg.WeeklyGoal)
	assert.False(t, cfg.HasAdvice())
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_URL", "postgres://db/fitcoach")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("ADVICE_TIMEOUT", "3s")
	t.Setenv("WEEKLY_GOAL", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.Advice.Timeout)
	assert.Equal(t, 5, cfg.WeeklyGoal)
	assert.True(t, cfg.HasAdvice())
}

func TestValidateRequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}
