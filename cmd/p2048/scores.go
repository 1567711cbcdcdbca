package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048plus/internal/platform/tui"
	"github.com/vovakirdan/tui-2048plus/internal/progress"
)

var (
	flagAll   bool
	flagLimit int
	flagPlain bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show finished games",
	Long: `Display the best finished games. Opens an interactive table on a
terminal; use --plain for text output.

Examples:
  p2048 scores
  p2048 scores --all --plain
  p2048 --player alice scores --limit 5`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Include every player")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show (plain output)")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text table")
}

func runScores(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if !flagPlain && interactive {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, flagPlayer, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ns := flagPlayer
	title := flagPlayer
	if flagAll {
		ns, title = "", "everyone"
	}

	games, err := store.TopGames(ns, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No finished games yet.")
		fmt.Println()
		fmt.Println("Play 'p2048 play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %-6s  %-9s  %s\n", "Rank", "Player", "Score", "Tile", "Moves", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %-6s  %-9s  %s\n", "----", "------", "-----", "----", "-----", "----", "----")
	for i, g := range games {
		tile := fmt.Sprint(g.MaxTile)
		if g.Won {
			tile += "*"
		}
		fmt.Printf("  %-4d  %-12s  %-8d  %-6s  %-6d  %-9s  %s\n",
			i+1, g.Namespace, g.Score, tile, g.Moves,
			progress.FormatDuration(g.Duration), g.CreatedAt.Format("2006-01-02 15:04"))
	}
}
