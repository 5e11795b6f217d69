package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mathkids/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the mini-games",
	Long:  `Shows the mini-games reachable from the learning hub.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Mini-games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'mathkids scores <id> --db <path>' to see the best rounds.")
}
