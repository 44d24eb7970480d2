package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/cloudstack/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":8000")
//	-r string     root path all routes are mounted under (e.g., "/api")
//	-d string     PostgreSQL DSN, overrides the DB_* pieces
//	-s string     JWT HMAC secret key
//	-t duration   access token lifetime (e.g., "30m")
//	-l string     log format, "json" or "text"
//
// args are filtered with flagx.FilterArgs first, so flags meant for other
// loaders (-c) do not make parsing fail.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-r", "-d", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.RootPath, "r", config.RootPath, "root path prefix")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.AccessTokenTTL, "t", config.AccessTokenTTL, "access token lifetime")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json|text)")

	return fs.Parse(args)
}
