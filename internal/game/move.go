package game

import (
	"fmt"

	"github.com/vovakirdan/tui-2048plus/internal/grid"
	"github.com/vovakirdan/tui-2048plus/internal/progress"
	"github.com/vovakirdan/tui-2048plus/internal/storage"
)

// Move slides the board. It reports whether anything changed; a move that
// changes nothing leaves no history entry and spawns no tile.
func (e *Engine) Move(dir grid.Direction) (bool, error) {
	switch {
	case e.sel.Active():
		return false, e.reject("move", "select a tile or cancel the power-up first")
	case e.confirming:
		return false, e.reject("move", "confirm or decline the new game first")
	case e.over:
		return false, e.reject("move", "game over")
	}

	e.snapshot()
	next, out := grid.Slide(e.grid, dir)
	if !out.Changed {
		e.hist.Pop()
		if !e.grid.HasAvailableMove() {
			e.endGame()
			e.saveGame()
		}
		return false, nil
	}

	e.grid = next
	e.score += out.Score
	e.stats.AddMerges(len(out.Merges))

	for _, m := range out.Merges {
		e.emit(Event{Type: EventMerge, Row: m.Row, Col: m.Col, Value: m.Value})
		e.tileCreated(m.Value)
	}
	e.updateBest()
	e.game.Moves++

	for _, l := range e.locks.Tick() {
		e.emit(Event{Type: EventLockExpired, Row: l.Row, Col: l.Col})
	}

	grid.Spawn(e.grid, e.rnd, e.rules.SpawnFourChance)
	e.emitBoard()

	if !e.grid.HasAvailableMove() {
		e.endGame()
	}

	e.saveGame()
	e.saveStats()
	return true, nil
}

// tileCreated runs progression for a tile produced by a merge or a double:
// theme unlocks, then rewards, then achievements, then the win check.
func (e *Engine) tileCreated(value int) {
	for _, th := range e.themes.UnlockAt(e.rules.Themes, value) {
		e.logger.Info("theme unlocked", "theme", th.ID)
		e.emit(Event{Type: EventThemeUnlocked, ID: th.ID, Name: th.Name, Value: value})
		e.emit(Event{Type: EventThemeChanged, ID: th.ID})
		e.saveThemes()
	}

	if given := e.rewards.Apply(e.inv, value); len(given) > 0 {
		e.emit(Event{Type: EventRewardGranted, Value: value, Grants: given})
		e.emit(Event{Type: EventInventoryChanged})
		e.message(LevelSuccess, fmt.Sprintf("Reached %d! Power-ups earned.", value))
	}

	e.evaluateAchievements()

	if !e.won && value >= e.rules.WinTile {
		e.won = true
		e.logger.Info("win", "tile", value, "score", e.score)
		e.emit(Event{Type: EventWin, Value: value})
	}
}

func (e *Engine) evaluateAchievements() {
	unlocked := e.achievements.Evaluate(e.rules.Achievements, progress.Facts{
		MaxTile:   e.grid.MaxTile(),
		Game:      e.game,
		Inventory: e.inv,
	})
	for _, a := range unlocked {
		e.logger.Info("achievement unlocked", "achievement", a.ID)
		e.emit(Event{Type: EventAchievementUnlocked, ID: a.ID, Name: a.Name, Message: a.Description})
	}
	if len(unlocked) > 0 {
		e.saveAchievements()
	}
}

func (e *Engine) endGame() {
	e.over = true
	e.logger.Info("game over", "score", e.score, "won", e.won)
	e.emit(Event{Type: EventTerminal, Value: e.score})
	e.finishGame()
}

// finishGame folds the game into the statistics. Each game is counted once.
func (e *Engine) finishGame() {
	if e.recorded {
		return
	}
	e.recorded = true

	result := progress.GameResult{
		Won:          e.won,
		Score:        e.score,
		Moves:        e.game.Moves,
		PowerupsUsed: e.game.PowerupsUsed,
		MaxTile:      e.grid.MaxTile(),
		Duration:     e.now().Sub(e.game.StartedAt),
	}
	e.stats.Record(result)
	e.saveStats()

	if e.recorder == nil {
		return
	}
	id, err := e.recorder.SaveGame(storage.GameRecord{
		Namespace: e.namespace,
		Score:     result.Score,
		Won:       result.Won,
		MaxTile:   result.MaxTile,
		Moves:     result.Moves,
		Duration:  int(result.Duration.Seconds()),
	})
	if err != nil {
		e.logger.Warn("cannot record finished game", "error", err)
		return
	}
	e.logger.Debug("recorded game", "id", id)
}
