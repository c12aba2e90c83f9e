// Package config loads runtime configuration for the localauth client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   path to the SQLite database file
//	-l string   log level
//	-s string   password hasher (sha256, argon2id)
//	-t int      per-command timeout (seconds)
//
// # JSON schema
//
//	{
//	  "database_path": "auth.db",
//	  "log_level": "info",
//	  "hasher": "sha256",
//	  "command_timeout": "5s"
//	}
//
// Fields missing from the JSON file keep their previous values.
package config
