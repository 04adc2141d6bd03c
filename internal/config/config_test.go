package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 15*time.Minute, cfg.LoginWindow)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.False(t, cfg.SchedulerEnabled)

	lost, damaged, late := cfg.PenaltyAmounts()
	assert.True(t, lost.Equal(decimal.NewFromInt(100)))
	assert.True(t, damaged.Equal(decimal.NewFromInt(50)))
	assert.True(t, late.Equal(decimal.NewFromInt(20)))
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PENALTY_LATE_AMOUNT", "12.50")
	t.Setenv("SCHEDULER_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.SchedulerEnabled)

	_, _, late := cfg.PenaltyAmounts()
	assert.Equal(t, "12.5", late.String())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("PENALTY_LOST_AMOUNT", "-1")
	_, err := Load()
	assert.ErrorContains(t, err, "PENALTY_LOST_AMOUNT")
}

func TestProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProdLike())
}
