// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// DevSecretKey is the signing key used when nothing else is configured.
	// Validate refuses it in production.
	DevSecretKey = "dev-secret-change-me"
)

// Config holds runtime settings for the items server.
//
// Fields:
//   - HTTPAddr / RootPath: listen address and the prefix every route is mounted under.
//   - DB*: PostgreSQL connection pieces; DatabaseDSN overrides all of them when set.
//   - DBConnectAttempts / DBConnectDelay: startup retry policy.
//   - SecretKey / AccessTokenTTL / TokenLeeway: HS256 token settings.
//   - SeedEmail / SeedPassword: the account created on first start.
type Config struct {
	HTTPAddr       string
	RootPath       string
	RequestTimeout time.Duration
	CORSOrigins    []string

	DBHost      string
	DBPort      int
	DBName      string
	DBUser      string
	DBPassword  string
	DBSSLMode   string
	DatabaseDSN string

	DBConnectAttempts int
	DBConnectDelay    time.Duration

	SecretKey      string
	AccessTokenTTL time.Duration
	TokenLeeway    time.Duration

	SeedEmail    string
	SeedPassword string

	AppEnv    string
	LogFormat string
	LogLevel  string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and seed password are insecure and must be overridden
// outside development.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8000"
	c.RootPath = ""
	c.RequestTimeout = 30 * time.Second
	c.CORSOrigins = []string{"http://localhost:3000"}

	c.DBHost = "db"
	c.DBPort = 5432
	c.DBName = "cloudstack"
	c.DBUser = "postgres"
	c.DBPassword = "secret"
	c.DBSSLMode = "disable"
	c.DatabaseDSN = ""

	c.DBConnectAttempts = 10
	c.DBConnectDelay = 2 * time.Second

	c.SecretKey = DevSecretKey
	c.AccessTokenTTL = 30 * time.Minute
	c.TokenLeeway = 0

	c.SeedEmail = "demo@demo.com"
	c.SeedPassword = "password"

	c.AppEnv = EnvDevelopment
	c.LogFormat = "json"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN returns the pgx connection string.
func (c *Config) DSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:   "/" + c.DBName,
	}
	if c.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.DBSSLMode}}.Encode()
	}
	return u.String()
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// Validate reports every setting the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http address is empty"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is empty"))
	}
	if c.IsProduction() && c.SecretKey == DevSecretKey {
		errs = append(errs, errors.New("default secret key is not allowed in production"))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("access token ttl must be positive, got %s", c.AccessTokenTTL))
	}
	if c.TokenLeeway < 0 {
		errs = append(errs, fmt.Errorf("token leeway must not be negative, got %s", c.TokenLeeway))
	}
	if c.DBConnectAttempts < 1 {
		errs = append(errs, fmt.Errorf("db connect attempts must be at least 1, got %d", c.DBConnectAttempts))
	}
	if c.DBConnectDelay < 0 {
		errs = append(errs, fmt.Errorf("db connect delay must not be negative, got %s", c.DBConnectDelay))
	}
	if c.SeedEmail == "" || c.SeedPassword == "" {
		errs = append(errs, errors.New("seed email and password are required"))
	}
	if c.RootPath != "" && c.RootPath[0] != '/' {
		errs = append(errs, fmt.Errorf("root path must start with '/', got %q", c.RootPath))
	}

	return errors.Join(errs...)
}
