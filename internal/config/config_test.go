package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("APP_ENV", "production") // skip .env lookup
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/rentwear")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/rentwear")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("CART_IDLE_TTL", "")
	t.Setenv("R2_ENDPOINT", "")
	t.Setenv("INSIGHTS_REFRESH_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 2*time.Hour, cfg.CartIdleTTL)
	assert.Equal(t, time.Hour, cfg.InsightsRefreshInterval)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.False(t, cfg.R2.Enabled())
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("CART_IDLE_TTL", "30m")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("CORS_ORIGINS", " https://rentwear.shop , https://admin.rentwear.shop ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.CartIdleTTL)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.Equal(t, []string{"https://rentwear.shop", "https://admin.rentwear.shop"}, cfg.CORSOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("CART_IDLE_TTL", "two hours")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_NonPositiveSweepInterval(t *testing.T) {
	for _, v := range []string{"0s", "-1m"} {
		setRequired(t)
		t.Setenv("CART_SWEEP_INTERVAL", v)

		_, err := Load()
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "CART_SWEEP_INTERVAL")
	}
}
