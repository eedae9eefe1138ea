package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rolltiles/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from an interactive menu",
	Long: `Start Roll Tiles in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a level, Tab for stats.
Leaving a level returns you to the menu.

Examples:
  rolltiles menu
  rolltiles menu --fps 30
  rolltiles menu --db ./sessions.db`,
	Annotations: map[string]string{tuiAnnotation: "true"},
	Run:         runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(catalog, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsStats {
			goBack, statsErr := tui.RunStats(catalog, store, cfg.ScreenW, cfg.ScreenH, "")
			if statsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", statsErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.LevelID == "" {
			break
		}

		err = tui.Run(tui.ModelConfig{
			Catalog: catalog,
			LevelID: menuResult.LevelID,
			Store:   store,
			Runtime: cfg,
			Logger:  logger,
			Player:  "local",
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	if store != nil {
		store.Close()
	}
}
