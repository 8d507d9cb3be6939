package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilearcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()
	out := cmd.OutOrStdout()

	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return
	}

	fmt.Fprintln(out, "Available games:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %-16s %s\n", maxIDLen, "ID", "Title", "Collection")
	fmt.Fprintf(out, "  %-*s  %-16s %s\n", maxIDLen, "--", "-----", "----------")

	for _, g := range games {
		fmt.Fprintf(out, "  %-*s  %-16s %s\n", maxIDLen, g.ID, g.Title, collectionOf(g.ID))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'tilearcade play <id>' to play a game.")
}

// collectionOf reports the configured collection strategy, or "-" for games
// without collectibles.
func collectionOf(id string) string {
	if c := cfg.Game(id).Collection; c != "" {
		return c
	}
	return "-"
}
