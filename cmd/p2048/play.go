package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048plus/internal/game"
	"github.com/vovakirdan/tui-2048plus/internal/platform/tui"
)

var (
	flagSize  int
	flagFresh bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048+",
	Long: `Start playing. A saved game is resumed unless --new or --size is given.

Controls:
  Arrows/hjkl  - Slide tiles (move the cursor while selecting)
  1-6          - Undo, shuffle, remove, swap, lock, double
  Enter/Esc    - Select tile / cancel power-up
  U            - Undo (free after game over)
  N            - New game
  G / t / T    - Grid size / next theme / theme picker
  s / a / H    - Statistics / achievements / high scores
  m            - Sound on/off
  Ctrl+S       - Save a board screenshot
  Q/Ctrl+C     - Quit

Examples:
  p2048 play
  p2048 play --size 5
  p2048 play --new --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Grid size (starts a new game)")
	playCmd.Flags().BoolVar(&flagFresh, "new", false, "Start a new game instead of resuming")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger("p2048", true)
	defer closeLog()

	rules := loadRules()
	if flagSize != 0 && !rules.AllowsSize(flagSize) {
		fmt.Fprintf(os.Stderr, "Error: unsupported grid size %d (allowed: %v)\n", flagSize, rules.GridSizes)
		os.Exit(1)
	}

	store := openStore()
	defer store.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var shotDir string
	if home, err := os.UserHomeDir(); err == nil {
		shotDir = filepath.Join(home, ".p2048", "screenshots")
	}

	opts := tui.Options{
		Engine: game.Options{
			Rules:     rules,
			Random:    newSource(),
			Storage:   store.Namespace(flagPlayer),
			Recorder:  store,
			Namespace: flagPlayer,
			Logger:    logger,
			Fresh:     flagFresh,
		},
		ScreenshotDir: shotDir,
		Width:         width,
		Height:        height,
	}

	if flagSize != 0 {
		// A size change always starts a new game; persist it before the
		// engine loads its slices.
		if err := playerSlices(store, logger).SaveGridSize(flagSize); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving grid size: %v\n", err)
			os.Exit(1)
		}
		opts.Engine.Fresh = true
	}

	if err := tui.RunSession(store, flagPlayer, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
