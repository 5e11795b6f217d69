// Command mathkids runs the math learning app in the terminal or serves
// it over SSH.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register games
	_ "github.com/vovakirdan/mathkids/internal/games/comparison"
	_ "github.com/vovakirdan/mathkids/internal/games/platformer"
	"github.com/vovakirdan/mathkids/internal/storage"
)

var (
	flagFPS              int
	flagSeed             int64
	flagDBPath           string
	flagAppConfig        string
	flagPlatformerConfig string
	flagComparisonConfig string
	flagLevel            string
)

var rootCmd = &cobra.Command{
	Use:   "mathkids",
	Short: "Math games for young learners",
	Long: `Bé Vui Học Toán is a terminal math app for young children.

Learners sign in, count and trace numerals, compare numbers, and rescue
the princess in a platformer where every question block asks a sum.

Run 'mathkids play' to start, or 'mathkids serve' to host it over SSH.`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Mini-game frame rate")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Random seed (0 = time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.MemoryPath, "Path to scores database (:memory: keeps nothing)")
	rootCmd.PersistentFlags().StringVar(&flagAppConfig, "config", "", "Path to app config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPlatformerConfig, "platformer-config", "", "Path to platformer config YAML")
	rootCmd.PersistentFlags().StringVar(&flagComparisonConfig, "comparison-config", "", "Path to comparison config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Path to a custom platformer level")

	rootCmd.AddCommand(listCmd, playCmd, serveCmd, scoresCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
