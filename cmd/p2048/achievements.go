package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048plus/internal/powerup"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements",
	Long: `Display every achievement of the rule set and whether the player has
unlocked it, plus lifetime power-up usage.`,
	Args: cobra.NoArgs,
	Run:  runAchievements,
}

func runAchievements(_ *cobra.Command, _ []string) {
	logger, _ := newLogger("p2048", false)
	rules := loadRules()
	store := openStore()
	defer store.Close()

	book := playerSlices(store, logger).Achievements()

	fmt.Printf("Achievements - %s (%d/%d)\n", flagPlayer, book.Count(rules.Achievements), len(rules.Achievements))
	fmt.Println()
	for _, a := range rules.Achievements {
		mark := " "
		if book.Unlocked[a.ID] {
			mark = a.Icon
		}
		fmt.Printf("  [%s] %-14s  %s\n", mark, a.Name, a.Description)
	}

	if len(book.Lifetime) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Lifetime power-up use:")
	for _, k := range powerup.Kinds {
		if n := book.Lifetime[k]; n > 0 {
			fmt.Printf("  %-8s %d\n", k, n)
		}
	}
}
