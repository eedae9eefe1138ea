// Package config provides YAML-based configuration loading for Roll Tiles,
// with environment overrides on top of the file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rolltiles/internal/core"
)

// Config contains all configuration for Roll Tiles.
type Config struct {
	View   ViewConfig   `yaml:"view"`
	Input  InputConfig  `yaml:"input"`
	Paths  PathsConfig  `yaml:"paths"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// ViewConfig defines how grid cells map to terminal cells.
type ViewConfig struct {
	CellW int `yaml:"cell_w" env:"ROLLTILES_CELL_W"` // Terminal columns per grid cell
	CellH int `yaml:"cell_h" env:"ROLLTILES_CELL_H"` // Terminal rows per grid cell
}

// InputConfig defines the input boundary.
type InputConfig struct {
	TickRate int `yaml:"tick_rate" env:"ROLLTILES_TICK_RATE"` // Pointer events delivered per second
}

// PathsConfig defines on-disk locations.
type PathsConfig struct {
	Levels   string `yaml:"levels" env:"ROLLTILES_LEVELS"`     // Extra level directory
	Database string `yaml:"database" env:"ROLLTILES_DB"`       // Session stats database
	HostKey  string `yaml:"host_key" env:"ROLLTILES_HOST_KEY"` // SSH host key
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level" env:"ROLLTILES_LOG_LEVEL"` // debug, info, warn or error
	File  string `yaml:"file" env:"ROLLTILES_LOG_FILE"`   // Empty discards logs during play
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address" env:"ROLLTILES_SSH_ADDR"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"ROLLTILES_IDLE_TIMEOUT"`
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.View.CellW < 2 {
		errs = append(errs, fmt.Errorf("view.cell_w must be at least 2, got %d", c.View.CellW))
	}
	if c.View.CellH < 1 {
		errs = append(errs, fmt.Errorf("view.cell_h must be at least 1, got %d", c.View.CellH))
	}
	if c.Input.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("input.tick_rate must be positive, got %d", c.Input.TickRate))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.idle_timeout must not be negative, got %s", c.Server.IdleTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Runtime builds the runtime configuration for a screen of the given size.
func (c Config) Runtime(screenW, screenH int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  screenW,
		ScreenH:  screenH,
		TickRate: c.Input.TickRate,
		CellW:    c.View.CellW,
		CellH:    c.View.CellH,
	}
}
