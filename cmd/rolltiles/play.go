package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rolltiles/internal/core"
	"github.com/vovakirdan/rolltiles/internal/platform/tui"
	"github.com/vovakirdan/rolltiles/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the specified level, or the first one.

Controls:
  Mouse drag  - Roll a tile around a neighbour
  R           - Reset the level
  N/P         - Next/previous level
  Esc         - Cancel a roll, or quit
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Examples:
  rolltiles play
  rolltiles play 04-tower
  rolltiles play --levels ./my-levels my-level`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{tuiAnnotation: "true"},
	Run:         runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
		if _, ok := catalog.Index(levelID); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
			fmt.Fprintln(os.Stderr, "Run 'rolltiles list' to see available levels.")
			os.Exit(1)
		}
	}

	store := openStore()
	runErr := tui.Run(tui.ModelConfig{
		Catalog: catalog,
		LevelID: levelID,
		Store:   store,
		Runtime: runtimeConfig(),
		Logger:  logger,
		Player:  "local",
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig sizes the runtime config to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return appConfig.Runtime(width, height)
}

// openStore opens the sessions database. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.Paths.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		logger.Warn("sessions database unavailable", "path", appConfig.Paths.Database, "err", err)
		return nil
	}
	return store
}
