package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/cloudstack/internal/flagx"
	"github.com/dmitrijs2005/cloudstack/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Duration
// fields accept "1s"-style strings or integer nanoseconds. Absent keys leave
// the current value untouched.
type JsonConfig struct {
	HTTPAddr       *string         `json:"http_addr"`
	RootPath       *string         `json:"root_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	CORSOrigins    []string        `json:"cors_origins"`

	DBHost      *string `json:"db_host"`
	DBPort      *int    `json:"db_port"`
	DBName      *string `json:"db_name"`
	DBUser      *string `json:"db_user"`
	DBPassword  *string `json:"db_password"`
	DBSSLMode   *string `json:"db_sslmode"`
	DatabaseDSN *string `json:"database_dsn"`

	DBConnectAttempts *int            `json:"db_connect_attempts"`
	DBConnectDelay    *timex.Duration `json:"db_connect_delay"`

	SecretKey      *string         `json:"secret_key"`
	AccessTokenTTL *timex.Duration `json:"access_token_ttl"`
	TokenLeeway    *timex.Duration `json:"token_leeway"`

	SeedEmail    *string `json:"seed_email"`
	SeedPassword *string `json:"seed_password"`

	AppEnv    *string `json:"app_env"`
	LogFormat *string `json:"log_format"`
	LogLevel  *string `json:"log_level"`
}

// parseJson loads the file named by -c / -config, if any, into config.
// A named file that cannot be read or parsed is an error.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.RootPath, c.RootPath)
	setDuration(&config.RequestTimeout, c.RequestTimeout)
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}

	setString(&config.DBHost, c.DBHost)
	setInt(&config.DBPort, c.DBPort)
	setString(&config.DBName, c.DBName)
	setString(&config.DBUser, c.DBUser)
	setString(&config.DBPassword, c.DBPassword)
	setString(&config.DBSSLMode, c.DBSSLMode)
	setString(&config.DatabaseDSN, c.DatabaseDSN)

	setInt(&config.DBConnectAttempts, c.DBConnectAttempts)
	setDuration(&config.DBConnectDelay, c.DBConnectDelay)

	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenTTL, c.AccessTokenTTL)
	setDuration(&config.TokenLeeway, c.TokenLeeway)

	setString(&config.SeedEmail, c.SeedEmail)
	setString(&config.SeedPassword, c.SeedPassword)

	setString(&config.AppEnv, c.AppEnv)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *timex.Duration) {
	if src != nil {
		*dst = src.Duration
	}
}
