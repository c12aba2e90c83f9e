package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/localauth/internal/flagx"
)

// parseFlags overlays cfg with -d, -l, -s and -t. Other arguments (such as
// -c) are filtered out first so they do not trip this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Hasher, "s", cfg.Hasher, "password hasher (sha256, argon2id)")
	timeout := fs.Int("t", int(cfg.CommandTimeout.Seconds()), "per-command timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.CommandTimeout = time.Duration(*timeout) * time.Second
}
