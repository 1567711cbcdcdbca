// Package progress tracks everything that outlives a single game: unlocked
// themes, the reward table, achievements and global statistics.
package progress

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-2048plus/internal/config"
)

// ThemeBook records which themes are unlocked and which one is active.
type ThemeBook struct {
	Current  string   `json:"currentTheme"`
	Unlocked []string `json:"unlockedThemes"`
}

// NewThemeBook returns a book with only the default theme.
func NewThemeBook() ThemeBook {
	return ThemeBook{
		Current:  config.DefaultThemeID,
		Unlocked: []string{config.DefaultThemeID},
	}
}

// IsUnlocked reports whether id may be activated.
func (b ThemeBook) IsUnlocked(id string) bool {
	return id == config.DefaultThemeID || slices.Contains(b.Unlocked, id)
}

// Normalize drops unknown ids and falls back to the default theme when the
// active one is not unlocked. Used after loading persisted data.
func (b *ThemeBook) Normalize(themes []config.Theme) {
	known := func(id string) bool {
		return slices.ContainsFunc(themes, func(t config.Theme) bool { return t.ID == id })
	}
	b.Unlocked = slices.DeleteFunc(b.Unlocked, func(id string) bool { return !known(id) })
	if !slices.Contains(b.Unlocked, config.DefaultThemeID) {
		b.Unlocked = append([]string{config.DefaultThemeID}, b.Unlocked...)
	}
	if !b.IsUnlocked(b.Current) || !known(b.Current) {
		b.Current = config.DefaultThemeID
	}
}

// UnlockAt unlocks and activates every not-yet-unlocked theme whose
// threshold equals value. It returns the newly unlocked themes.
func (b *ThemeBook) UnlockAt(themes []config.Theme, value int) []config.Theme {
	var unlocked []config.Theme
	for _, t := range themes {
		if t.UnlockAt == 0 || t.UnlockAt != value || b.IsUnlocked(t.ID) {
			continue
		}
		b.Unlocked = append(b.Unlocked, t.ID)
		b.Current = t.ID
		unlocked = append(unlocked, t)
	}
	return unlocked
}

// Switch activates an unlocked theme.
func (b *ThemeBook) Switch(id string) error {
	if !b.IsUnlocked(id) {
		return fmt.Errorf("theme %q is locked", id)
	}
	b.Current = id
	return nil
}

// Next returns the unlocked theme after the active one, in rule order.
func (b ThemeBook) Next(themes []config.Theme) string {
	var order []string
	for _, t := range themes {
		if b.IsUnlocked(t.ID) {
			order = append(order, t.ID)
		}
	}
	if len(order) == 0 {
		return config.DefaultThemeID
	}
	i := slices.Index(order, b.Current)
	return order[(i+1)%len(order)]
}
