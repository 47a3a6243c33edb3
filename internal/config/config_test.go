package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
	t.Setenv("DB_PORT", "")
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("APP_LOCALE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("CRON_ENABLED", "")
	t.Setenv("JWT_ACCESS_EXPIRATION_TIME", "")
	t.Setenv("ANALYTICS_GEO_LOOKUP", "")
	t.Setenv("ANALYTICS_GEO_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "Asia/Seoul", cfg.App.Timezone)
	assert.Equal(t, "ko", cfg.App.Locale)
	assert.Equal(t, "168h", cfg.JWT.AccessExpiration)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Cron.Enabled)
	assert.False(t, cfg.Analytics.GeoLookup)
	assert.Equal(t, 3*time.Second, cfg.Analytics.GeoTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
	t.Setenv("APP_LOCALE", "en")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("CRON_ENABLED", "false")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ANALYTICS_GEO_LOOKUP", "true")
	t.Setenv("ANALYTICS_GEO_TIMEOUT", "500ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.App.Locale)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Cron.Enabled)
	assert.True(t, cfg.JWT.CookieSecure)
	assert.True(t, cfg.Analytics.GeoLookup)
	assert.Equal(t, 500*time.Millisecond, cfg.Analytics.GeoTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("DB_PORT", "abc")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("CRON_ENABLED", "maybe")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad geo timeout", func(t *testing.T) {
		t.Setenv("ANALYTICS_GEO_TIMEOUT", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "ANALYTICS_GEO_TIMEOUT")
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "")
		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET_KEY")
	})
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "app", Password: "pw", Name: "tc", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://app:pw@db:5433/tc?sslmode=disable", cfg.DatabaseURL())
}
