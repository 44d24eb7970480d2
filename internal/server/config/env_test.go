package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("ROOT_PATH", "/api")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_CONNECT_DELAY", "500ms")
	t.Setenv("TOKEN_LEEWAY", "0s")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("APP_ENV", "production")

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.TokenLeeway = time.Minute
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "/api", cfg.RootPath)
	assert.Equal(t, 6543, cfg.DBPort)
	assert.Equal(t, 500*time.Millisecond, cfg.DBConnectDelay)
	assert.Equal(t, time.Duration(0), cfg.TokenLeeway, "explicit zero overrides")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProduction())

	assert.Equal(t, "db", cfg.DBHost, "unset variables keep the current value")
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
}

func Test_parseEnv_BadValue(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	err := parseEnv(&Config{})
	require.Error(t, err)
}
