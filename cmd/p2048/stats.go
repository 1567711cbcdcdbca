package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048plus/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show global statistics",
	Long: `Display the cumulative statistics of a player plus a summary of their
recorded games.

Examples:
  p2048 stats
  p2048 --player alice stats`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	logger, _ := newLogger("p2048", false)
	store := openStore()
	defer store.Close()

	slices := playerSlices(store, logger)
	st := slices.Statistics()

	fastest := "-"
	if st.FastestWin != nil {
		fastest = progress.FormatDuration(*st.FastestWin)
	}

	fmt.Printf("Statistics - %s\n", flagPlayer)
	fmt.Println()
	rows := [][2]string{
		{"Best score", fmt.Sprint(slices.BestScore())},
		{"Games played", fmt.Sprint(st.GamesPlayed)},
		{"Games won", fmt.Sprint(st.GamesWon)},
		{"Win rate", fmt.Sprintf("%d%%", st.WinRate)},
		{"Average score", fmt.Sprint(st.AverageScore)},
		{"Highest tile", fmt.Sprint(st.HighestTile)},
		{"Total moves", fmt.Sprint(st.TotalMoves)},
		{"Tiles merged", fmt.Sprint(st.TotalTilesMerged)},
		{"Power-ups used", fmt.Sprint(st.TotalPowerupsUsed)},
		{"Fastest win", fastest},
		{"Current streak", fmt.Sprint(st.CurrentStreak)},
		{"Longest streak", fmt.Sprint(st.LongestStreak)},
		{"Play time", progress.FormatDuration(st.TotalPlayTime)},
	}
	for _, r := range rows {
		fmt.Printf("  %-16s  %s\n", r[0], r[1])
	}

	sum, err := store.Summarize(flagPlayer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error summarizing games: %v\n", err)
		os.Exit(1)
	}
	if sum.GamesCount == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("Recorded games: %d (best %d, average %.0f, %d won, last %s)\n",
		sum.GamesCount, sum.HighScore, sum.AvgScore, sum.Wins,
		sum.LastPlayed.Format("2006-01-02 15:04"))
}
