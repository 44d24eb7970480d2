package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envConfig mirrors Config for environment variables. Pointer fields stay
// nil when the variable is unset, so only what is set overrides.
type envConfig struct {
	HTTPAddr       *string        `envconfig:"HTTP_ADDR"`
	RootPath       *string        `envconfig:"ROOT_PATH"`
	RequestTimeout *time.Duration `envconfig:"REQUEST_TIMEOUT"`
	CORSOrigins    []string       `envconfig:"CORS_ORIGINS"`

	DBHost      *string `envconfig:"DB_HOST"`
	DBPort      *int    `envconfig:"DB_PORT"`
	DBName      *string `envconfig:"DB_NAME"`
	DBUser      *string `envconfig:"DB_USER"`
	DBPassword  *string `envconfig:"DB_PASSWORD"`
	DBSSLMode   *string `envconfig:"DB_SSLMODE"`
	DatabaseDSN *string `envconfig:"DATABASE_URL"`

	DBConnectAttempts *int           `envconfig:"DB_CONNECT_ATTEMPTS"`
	DBConnectDelay    *time.Duration `envconfig:"DB_CONNECT_DELAY"`

	SecretKey      *string        `envconfig:"SECRET_KEY"`
	AccessTokenTTL *time.Duration `envconfig:"ACCESS_TOKEN_TTL"`
	TokenLeeway    *time.Duration `envconfig:"TOKEN_LEEWAY"`

	SeedEmail    *string `envconfig:"SEED_EMAIL"`
	SeedPassword *string `envconfig:"SEED_PASSWORD"`

	AppEnv    *string `envconfig:"APP_ENV"`
	LogFormat *string `envconfig:"LOG_FORMAT"`
	LogLevel  *string `envconfig:"LOG_LEVEL"`
}

// parseEnv overlays set environment variables onto config.
func parseEnv(config *Config) error {
	var e envConfig
	if err := envconfig.Process("", &e); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	setString(&config.HTTPAddr, e.HTTPAddr)
	setString(&config.RootPath, e.RootPath)
	setStdDuration(&config.RequestTimeout, e.RequestTimeout)
	if len(e.CORSOrigins) > 0 {
		config.CORSOrigins = e.CORSOrigins
	}

	setString(&config.DBHost, e.DBHost)
	setInt(&config.DBPort, e.DBPort)
	setString(&config.DBName, e.DBName)
	setString(&config.DBUser, e.DBUser)
	setString(&config.DBPassword, e.DBPassword)
	setString(&config.DBSSLMode, e.DBSSLMode)
	setString(&config.DatabaseDSN, e.DatabaseDSN)

	setInt(&config.DBConnectAttempts, e.DBConnectAttempts)
	setStdDuration(&config.DBConnectDelay, e.DBConnectDelay)

	setString(&config.SecretKey, e.SecretKey)
	setStdDuration(&config.AccessTokenTTL, e.AccessTokenTTL)
	setStdDuration(&config.TokenLeeway, e.TokenLeeway)

	setString(&config.SeedEmail, e.SeedEmail)
	setString(&config.SeedPassword, e.SeedPassword)

	setString(&config.AppEnv, e.AppEnv)
	setString(&config.LogFormat, e.LogFormat)
	setString(&config.LogLevel, e.LogLevel)

	return nil
}

func setStdDuration(dst *time.Duration, src *time.Duration) {
	if src != nil {
		*dst = *src
	}
}
