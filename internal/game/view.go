package game

import (
	"github.com/vovakirdan/tui-2048plus/internal/config"
	"github.com/vovakirdan/tui-2048plus/internal/grid"
	"github.com/vovakirdan/tui-2048plus/internal/persist"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
	"github.com/vovakirdan/tui-2048plus/internal/progress"
)

// ThemeView is a theme with its unlock state.
type ThemeView struct {
	config.Theme
	Unlocked bool
	Active   bool
}

// AchievementView is an achievement with its unlock state.
type AchievementView struct {
	config.Achievement
	Unlocked bool
}

// View is a read-only copy of the engine state for presenters.
type View struct {
	Grid       grid.Grid
	Score      int
	BestScore  int
	Inventory  powerup.Inventory
	Locks      powerup.Locks
	HistoryLen int

	Selecting     bool
	SelectionKind powerup.Kind
	Partial       *grid.Cell

	Over              bool
	Won               bool
	ConfirmingNewGame bool

	Theme        string
	Themes       []ThemeView
	Achievements []AchievementView
	Stats        progress.Statistics
	Game         progress.GameStats
	Sound        persist.Sound
	GridSizes    []int
}

// View returns a snapshot of the current state.
func (e *Engine) View() View {
	v := View{
		Grid:              e.grid.Clone(),
		Score:             e.score,
		BestScore:         e.best,
		Inventory:         e.inv.Clone(),
		Locks:             e.locks.Clone(),
		HistoryLen:        e.hist.Len(),
		Selecting:         e.sel.Active(),
		SelectionKind:     e.sel.Kind(),
		Over:              e.over,
		Won:               e.won,
		ConfirmingNewGame: e.confirming,
		Theme:             e.themes.Current,
		Stats:             e.stats,
		Game:              e.game,
		Sound:             e.sound,
		GridSizes:         append([]int(nil), e.rules.GridSizes...),
	}
	if c, ok := e.sel.Partial(); ok {
		v.Partial = &c
	}
	for _, th := range e.rules.Themes {
		v.Themes = append(v.Themes, ThemeView{
			Theme:    th,
			Unlocked: e.themes.IsUnlocked(th.ID),
			Active:   th.ID == e.themes.Current,
		})
	}
	for _, a := range e.rules.Achievements {
		v.Achievements = append(v.Achievements, AchievementView{
			Achievement: a,
			Unlocked:    e.achievements.Unlocked[a.ID],
		})
	}
	return v
}
