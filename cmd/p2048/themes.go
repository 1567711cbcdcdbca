package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List unlockable themes",
	Long: `Display every theme, its unlock tile and whether the player has
unlocked it. Use "themes use <id>" to switch.`,
	Args: cobra.NoArgs,
	Run:  runThemes,
}

var themesUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Switch to an unlocked theme",
	Args:  cobra.ExactArgs(1),
	Run:   runThemesUse,
}

func init() {
	themesCmd.AddCommand(themesUseCmd)
}

func runThemes(_ *cobra.Command, _ []string) {
	logger, _ := newLogger("p2048", false)
	rules := loadRules()
	store := openStore()
	defer store.Close()

	book := playerSlices(store, logger).Themes()
	book.Normalize(rules.Themes)

	fmt.Printf("Themes - %s\n", flagPlayer)
	fmt.Println()
	fmt.Printf("  %-2s %-10s  %-16s  %s\n", "", "ID", "Name", "Unlock")
	for _, th := range rules.Themes {
		mark := " "
		if th.ID == book.Current {
			mark = "*"
		}
		unlock := "unlocked"
		if !book.IsUnlocked(th.ID) {
			unlock = fmt.Sprintf("reach %d", th.UnlockAt)
		}
		fmt.Printf("  %-2s %-10s  %-16s  %s\n", mark, th.ID, th.Name, unlock)
	}
}

func runThemesUse(_ *cobra.Command, args []string) {
	logger, _ := newLogger("p2048", false)
	rules := loadRules()
	store := openStore()
	defer store.Close()

	slices := playerSlices(store, logger)
	book := slices.Themes()
	book.Normalize(rules.Themes)
	if err := book.Switch(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := slices.SaveThemes(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving theme: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Theme set to %s\n", args[0])
}
