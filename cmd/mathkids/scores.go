package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mathkids/internal/registry"
	"github.com/vovakirdan/mathkids/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show the best rounds of a mini-game",
	Long: `Display the highest scores recorded for a mini-game.

Scores only persist when --db points at a file.

Examples:
  mathkids scores platformer --db ~/.mathkids/scores.db
  mathkids scores comparison --db ~/.mathkids/scores.db --limit 5
  mathkids scores comparison --db ~/.mathkids/scores.db --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded score for the game")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'mathkids list' to see available games.")
		os.Exit(1)
	}
	title := gameTitle(gameID)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s\n", title)
		return
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-36s  %s\n", "Rank", "Score", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-36s  %s\n", "----", "-----", "------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-36s  %s\n", i+1, entry.Score, entry.Player, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.GetGameStats("", gameID); err == nil {
		fmt.Printf("Rounds: %d  Average: %.1f  Last played: %s\n",
			stats.GamesCount, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func gameTitle(id string) string {
	for _, g := range registry.List() {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}
