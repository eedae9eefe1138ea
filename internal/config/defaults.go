package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/rolltiles.yaml
var defaultYAML []byte

// Default returns the default configuration.
func Default() Config {
	return Config{
		View: ViewConfig{
			CellW: 6,
			CellH: 3,
		},
		Input: InputConfig{
			TickRate: 60,
		},
		Paths: PathsConfig{
			Levels:   "~/.rolltiles/levels",
			Database: "~/.rolltiles/sessions.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
