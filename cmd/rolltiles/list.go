package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows built-in levels and any levels found in the configured level directory.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	all := catalog.Levels()

	if len(all) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range all {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Tiles", "Title")
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, l := range all {
		title := l.Title()
		if l.FilePath != "" {
			title += fmt.Sprintf("  [%s]", l.FilePath)
		}
		fmt.Printf("  %-*s  %-5d  %s\n", maxIDLen, l.ID, len(l.Tiles), title)
	}

	fmt.Println()
	fmt.Println("Run 'rolltiles play <id>' to play a level.")
}
