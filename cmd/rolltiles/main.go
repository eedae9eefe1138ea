// rolltiles is a terminal tile-rolling puzzle: drag a tile and it rolls a
// quarter turn around the corner of a neighbour.
//
// Usage:
//
//	rolltiles list               - List available levels
//	rolltiles play [level]       - Play a level (first level by default)
//	rolltiles menu               - Pick levels interactively
//	rolltiles stats [level]      - Show recorded sessions
//	rolltiles validate <file>... - Check level files
//	rolltiles serve              - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.rolltiles/configs, ./configs)
//	--fps <rate>        - Pointer events delivered per second
//	--db <path>         - Sessions database
//	--levels <dir>      - Extra level directory
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rolltiles/internal/config"
	"github.com/vovakirdan/rolltiles/internal/levels"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagDBPath   string
	flagLevels   string
	flagLogLevel string
	flagLogFile  string
)

// Set up by the root command before any subcommand runs.
var (
	appConfig config.Config
	logger    *log.Logger
	catalog   *levels.Catalog
	logFile   *os.File
)

// tuiAnnotation marks commands that take over the terminal; their logs are
// discarded unless a log file is configured.
const tuiAnnotation = "tui"

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rolltiles",
	Short: "Roll Tiles - a tile-rolling puzzle for your terminal",
	Long: `Roll Tiles is a terminal puzzle played with the mouse.

Press on a tile and drag it around the corner of a neighbouring tile:
it rolls a quarter turn into the next cell. Let go past half way and
the roll completes, before half way it falls back.

Available commands:
  list      - Show all levels
  play      - Play a level directly
  menu      - Interactive level picker
  stats     - View recorded sessions
  validate  - Check level files against the level schema
  serve     - Start SSH server for remote play

Examples:
  rolltiles list
  rolltiles play 03-stairs
  rolltiles menu --levels ./my-levels
  rolltiles serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Pointer events per second (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to sessions database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Extra level directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads configuration, applies flag overrides, and builds the logger
// and level catalog shared by every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	logger, err = newLogger(cfg, cmd.Annotations[tuiAnnotation] == "true")
	if err != nil {
		return err
	}

	catalog, err = levels.NewCatalog(config.ExpandHome(cfg.Paths.Levels), logger.WithPrefix("levels"))
	if err != nil {
		return fmt.Errorf("loading levels: %w", err)
	}
	logger.Debug("config loaded", "levels", catalog.Len(), "db", cfg.Paths.Database)
	return nil
}

// applyFlags copies explicitly set global flags over the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Input.TickRate = flagFPS
	}
	if flags.Changed("db") {
		cfg.Paths.Database = flagDBPath
	}
	if flags.Changed("levels") {
		cfg.Paths.Levels = flagLevels
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
}

// newLogger builds the process logger. Interactive commands own the
// terminal, so they only log when a file is configured.
func newLogger(cfg config.Config, interactive bool) (*log.Logger, error) {
	var w io.Writer = os.Stderr
	switch {
	case cfg.Log.File != "":
		path := config.ExpandHome(cfg.Log.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		logFile = f
		w = f
	case interactive:
		w = io.Discard
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           cfg.LogLevel(),
		Prefix:          "rolltiles",
	}), nil
}
