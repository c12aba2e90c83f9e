package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/localauth/internal/flagx"
	"github.com/dmitrijs2005/localauth/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" apart from an explicit empty value.
type JsonConfig struct {
	DatabasePath   *string         `json:"database_path"`
	LogLevel       *string         `json:"log_level"`
	Hasher         *string         `json:"hasher"`
	CommandTimeout *timex.Duration `json:"command_timeout"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on read
// or decode errors; a broken config file should stop the client at startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.Hasher != nil {
		cfg.Hasher = *jc.Hasher
	}
	if jc.CommandTimeout != nil {
		cfg.CommandTimeout = jc.CommandTimeout.Duration
	}
}
