// Package config loads runtime configuration for the items CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the server, e.g. http://127.0.0.1:8000/api
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s"
//	}
package config
