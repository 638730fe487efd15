package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":3000", cfg.Addr)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	require.Equal(t, 168*time.Hour, cfg.RefreshExpiry)
	require.True(t, cfg.IsDevelopment())
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":8080")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "prod-access")
	t.Setenv("REFRESH_TOKEN_SECRET", "prod-refresh")
	t.Setenv("JWT_EXPIRY", "15m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, 15*time.Minute, cfg.JWTExpiry)
	require.False(t, cfg.IsDevelopment())
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsDefaultSecretsOutsideDev(t *testing.T) {
	cfg := &Config{
		Environment:   "production",
		JWTSecret:     defaultJWTSecret,
		RefreshSecret: "prod-refresh",
	}
	require.Error(t, cfg.Validate())

	cfg = &Config{
		Environment:   "production",
		JWTSecret:     "prod-access",
		RefreshSecret: defaultRefreshSecret,
	}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsSharedSecret(t *testing.T) {
	cfg := &Config{
		Environment:   "development",
		JWTSecret:     "same",
		RefreshSecret: "same",
	}
	require.Error(t, cfg.Validate())
}
