package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdicto/internal/config"
)

func clearPort(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("VERDICTO_SERVER_PORT", "")
}

func TestLoad_Defaults(t *testing.T) {
	clearPort(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 180*time.Second, cfg.Server.WriteTimeout)
	assert.False(t, cfg.Server.IsProduction())
	assert.Equal(t, "http://localhost:8000", cfg.Generator.BaseURL)
	assert.Equal(t, 120*time.Second, cfg.Generator.Timeout())
	assert.Equal(t, int64(4<<20), cfg.Generator.MaxResponseBytes)
	assert.Equal(t, "verdicto", cfg.JWT.Issuer)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearPort(t)
	t.Setenv("VERDICTO_SERVER_ENVIRONMENT", "production")
	t.Setenv("VERDICTO_DB_HOST", "db.internal")
	t.Setenv("VERDICTO_DB_PORT", "6543")
	t.Setenv("VERDICTO_GENERATOR_BASE_URL", "http://rag:8000/")
	t.Setenv("VERDICTO_GENERATOR_API_TOKEN", "tok")
	t.Setenv("VERDICTO_GENERATOR_TIMEOUT_SECS", "30")
	t.Setenv("VERDICTO_CORS_ALLOWED_ORIGINS", " https://app.example.com , ,https://admin.example.com")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "http://rag:8000", cfg.Generator.BaseURL)
	assert.Equal(t, "tok", cfg.Generator.APIToken)
	assert.Equal(t, 30*time.Second, cfg.Generator.Timeout())
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPort(t *testing.T) {
	clearPort(t)
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)

	t.Setenv("VERDICTO_SERVER_PORT", ":7070")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Port)
}

func TestLoad_EmptyGeneratorURL(t *testing.T) {
	clearPort(t)
	t.Setenv("VERDICTO_GENERATOR_BASE_URL", "/")

	_, err := config.Load()

	assert.Error(t, err)
}

func TestGeneratorConfig_Timeout(t *testing.T) {
	assert.Equal(t, 120*time.Second, (&config.GeneratorConfig{}).Timeout())
	assert.Equal(t, 120*time.Second, (&config.GeneratorConfig{TimeoutSecs: -1}).Timeout())
	assert.Equal(t, 45*time.Second, (&config.GeneratorConfig{TimeoutSecs: 45}).Timeout())
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=require", db.DSN())
}
