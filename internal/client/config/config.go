package config

import "time"

// Config holds runtime settings for the localauth client.
//
// Fields:
//   - DatabasePath: SQLite file holding the accounts and the current session.
//   - LogLevel: debug, info, warn or error.
//   - Hasher: password hasher driver, "sha256" (default) or "argon2id".
//   - CommandTimeout: upper bound for one REPL command's storage work.
type Config struct {
	DatabasePath   string
	LogLevel       string
	Hasher         string
	CommandTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "auth.db"
	c.LogLevel = "info"
	c.Hasher = "sha256"
	c.CommandTimeout = 5 * time.Second
}

// LoadConfig applies defaults, then the JSON file (if any), then flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
