package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048plus/internal/progress"
)

var flagClearGames bool

var resetStatsCmd = &cobra.Command{
	Use:   "reset-stats",
	Short: "Clear global statistics",
	Long: `Reset the player's global statistics to zero. Achievements, themes and
the best score are kept. --games also deletes the player's recorded games.`,
	Args: cobra.NoArgs,
	Run:  runResetStats,
}

func init() {
	resetStatsCmd.Flags().BoolVar(&flagClearGames, "games", false, "Also delete recorded games")
}

func runResetStats(_ *cobra.Command, _ []string) {
	logger, _ := newLogger("p2048", false)
	store := openStore()
	defer store.Close()

	if err := playerSlices(store, logger).SaveStatistics(progress.Statistics{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting statistics: %v\n", err)
		os.Exit(1)
	}
	logger.Info("statistics reset", "player", flagPlayer)

	if flagClearGames {
		if err := store.ClearGames(flagPlayer); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing games: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Statistics reset for %s\n", flagPlayer)
}
