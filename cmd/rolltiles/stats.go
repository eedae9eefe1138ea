package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rolltiles/internal/storage"
)

var (
	flagStatsLimit int
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [level]",
	Short: "Show recorded sessions",
	Long: `Display recent sessions for a level, or a summary of every level.

Examples:
  rolltiles stats
  rolltiles stats 02-floor
  rolltiles stats 02-floor --limit 25
  rolltiles stats 02-floor --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of sessions to show")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete recorded sessions instead of showing them")
}

func runStats(_ *cobra.Command, args []string) {
	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
	}

	store, err := storage.Open(appConfig.Paths.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagStatsClear {
		if err := store.ClearSessions(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing sessions: %v\n", err)
			return
		}
		fmt.Println("Sessions cleared.")
		return
	}

	if levelID == "" {
		printSummary(store)
		return
	}

	title := levelID
	if lvl, err := catalog.Get(levelID); err == nil {
		title = lvl.Title()
	}

	sessions, err := store.RecentSessions(levelID, flagStatsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		return
	}

	fmt.Printf("Sessions - %s\n", title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'rolltiles play %s' to record one!\n", levelID)
		return
	}

	fmt.Printf("  %-6s  %-12s  %-5s  %-7s  %-8s  %s\n", "ID", "Player", "Rolls", "Cancels", "Time", "Date")
	fmt.Printf("  %-6s  %-12s  %-5s  %-7s  %-8s  %s\n", "--", "------", "-----", "-------", "----", "----")
	for _, s := range sessions {
		fmt.Printf("  %-6d  %-12s  %-5d  %-7d  %-8s  %s\n",
			s.ID, s.Player, s.Rolls, s.Cancels, s.Duration.Round(time.Second), s.CreatedAt.Format("2006-01-02 15:04"))
	}

	if st, err := store.LevelStats(levelID); err == nil && st.Sessions > 0 {
		fmt.Println()
		fmt.Printf("Best run: %d rolls\n", st.MostRolls)
	}
}

// printSummary lists aggregate stats for every level in catalog order.
func printSummary(store *storage.Store) {
	all, err := store.AllLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	fmt.Println("Level summary")
	fmt.Println()
	fmt.Printf("  %-16s  %-8s  %-6s  %-7s  %-4s  %s\n", "Level", "Sessions", "Rolls", "Cancels", "Best", "Last played")
	fmt.Printf("  %-16s  %-8s  %-6s  %-7s  %-4s  %s\n", "-----", "--------", "-----", "-------", "----", "-----------")
	for _, id := range catalog.IDs() {
		st, ok := all[id]
		if !ok {
			fmt.Printf("  %-16s  %-8d  %-6s  %-7s  %-4s  %s\n", id, 0, "-", "-", "-", "never")
			continue
		}
		fmt.Printf("  %-16s  %-8d  %-6d  %-7d  %-4d  %s\n",
			id, st.Sessions, st.TotalRolls, st.TotalCancels, st.MostRolls, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
