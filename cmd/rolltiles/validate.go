package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rolltiles/internal/core"
	"github.com/vovakirdan/rolltiles/internal/games/rolltiles"
	"github.com/vovakirdan/rolltiles/internal/grid"
	"github.com/vovakirdan/rolltiles/internal/levels"
	"github.com/vovakirdan/rolltiles/internal/roll"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check level files",
	Long: `Validate level files against the level schema and report how many
tiles can roll from the starting layout. A level with no possible roll is
reported as an error.

Examples:
  rolltiles validate ./my-levels/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	failed := 0
	for _, path := range args {
		if err := validateFile(path); err != nil {
			fmt.Printf("FAIL  %s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed validation\n", failed, len(args))
		os.Exit(1)
	}
}

// validateFile parses one level and checks that some tile can move.
func validateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lvl, err := levels.Parse(data)
	if err != nil {
		return err
	}

	s := grid.New()
	n := 0
	lvl.Populate(s, func(spec levels.TileSpec) core.Tile {
		n++
		return rolltiles.NewBlock(n, spec.Cell, spec.Color)
	})

	movable := 0
	s.Each(func(c core.Coord, _ core.Tile) {
		if len(roll.Eligible(s, c)) > 0 {
			movable++
		}
	})
	if movable == 0 {
		return fmt.Errorf("level %s: no tile can roll", lvl.ID)
	}

	fmt.Printf("ok    %s: %s, %d tiles, %d movable\n", path, lvl.ID, s.Len(), movable)
	return nil
}
