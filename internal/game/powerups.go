package game

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-2048plus/internal/grid"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
)

// Activate spends one unit of kind. Undo and shuffle apply at once; the
// others enter selection mode and are refunded if the selection is cancelled.
func (e *Engine) Activate(kind powerup.Kind) error {
	const op = "activate"
	if _, err := powerup.ParseKind(string(kind)); err != nil {
		return e.reject(op, "unknown power-up")
	}
	switch {
	case e.sel.Active():
		return e.reject(op, "finish or cancel the current power-up first")
	case e.confirming:
		return e.reject(op, "confirm or decline the new game first")
	case e.over:
		return e.reject(op, "game over")
	case e.inv.Count(kind) == 0:
		return e.reject(op, fmt.Sprintf("no %s power-ups left", kind))
	}

	switch kind {
	case powerup.Undo:
		return e.undo()
	case powerup.Shuffle:
		e.inv.Take(kind)
		e.snapshot()
		e.grid = grid.Shuffle(e.grid, e.rnd)
		e.completed(kind, "Board shuffled!")
		return nil
	}

	if e.grid.Occupied() < kind.Targets() {
		return e.reject(op, fmt.Sprintf("not enough tiles to %s", kind))
	}
	if err := e.sel.Begin(kind); err != nil {
		return e.reject(op, err.Error())
	}
	e.logger.Debug("selection", "kind", kind, "state", e.sel.State())
	e.inv.Take(kind)
	e.emit(Event{Type: EventInventoryChanged})
	e.emit(Event{Type: EventSelectionChanged, Kind: kind})
	e.message(LevelInfo, selectPrompt(kind, false))
	e.saveGame()
	return nil
}

func (e *Engine) undo() error {
	snap, ok := e.hist.Pop()
	if !ok {
		return e.reject("undo", "nothing to undo")
	}
	e.inv.Take(powerup.Undo)
	e.grid = snap.Grid
	e.score = snap.Score
	e.completed(powerup.Undo, "Move undone!")
	return nil
}

// Select picks a target tile for the power-up awaiting selection.
// Invalid picks are rejected and the selection stays open.
func (e *Engine) Select(row, col int) error {
	const op = "select"
	if !e.sel.Active() {
		return e.reject(op, "no power-up is waiting for a tile")
	}
	if !e.grid.InBounds(row, col) {
		return e.reject(op, "outside the board")
	}
	if e.grid[row][col] == 0 {
		return e.reject(op, "select a tile, not an empty cell")
	}
	kind := e.sel.Kind()
	if kind == powerup.Lock && e.locks.Has(row, col) {
		return e.reject(op, "tile is already locked")
	}

	targets, done, err := e.sel.Pick(grid.Cell{Row: row, Col: col})
	if errors.Is(err, powerup.ErrSameTile) {
		return e.reject(op, "select a different tile")
	}
	if err != nil {
		return e.reject(op, err.Error())
	}
	if !done {
		e.emit(Event{Type: EventSelectionChanged, Kind: kind, Row: row, Col: col})
		e.message(LevelInfo, selectPrompt(kind, true))
		return nil
	}

	e.snapshot()
	t := targets[0]
	switch kind {
	case powerup.Remove:
		e.grid[t.Row][t.Col] = 0
		e.completed(kind, "Tile removed!")
	case powerup.Swap:
		u := targets[1]
		e.grid[t.Row][t.Col], e.grid[u.Row][u.Col] = e.grid[u.Row][u.Col], e.grid[t.Row][t.Col]
		e.completed(kind, "Tiles swapped!")
	case powerup.Lock:
		e.locks.Add(t.Row, t.Col, e.rules.LockMoves)
		e.completed(kind, fmt.Sprintf("Tile locked for %d moves!", e.rules.LockMoves))
	case powerup.Double:
		v := e.grid[t.Row][t.Col] * 2
		e.grid[t.Row][t.Col] = v
		e.tileCreated(v)
		e.completed(kind, "Tile doubled!")
	}
	return nil
}

// CancelSelection abandons the pending power-up and refunds it.
func (e *Engine) CancelSelection() error {
	kind, err := e.sel.Cancel()
	if err != nil {
		return e.reject("cancel", "no power-up is waiting for a tile")
	}
	e.logger.Debug("selection cancelled", "kind", kind, "state", e.sel.State())
	if kind.Refundable() {
		e.inv.Give(kind, 1)
	}
	e.emit(Event{Type: EventInventoryChanged})
	e.emit(Event{Type: EventSelectionChanged})
	e.message(LevelInfo, "Power-up cancelled")
	e.saveGame()
	return nil
}

// UndoFromTerminal rewinds one step out of a finished game for free.
func (e *Engine) UndoFromTerminal() error {
	if !e.over {
		return e.reject("undo", "game is not over")
	}
	snap, ok := e.hist.Pop()
	if !ok {
		return e.reject("undo", "nothing to undo")
	}
	e.grid = snap.Grid
	e.score = snap.Score
	e.over = false
	e.emitBoard()
	e.message(LevelSuccess, "Move undone! Keep playing.")
	e.saveGame()
	return nil
}

// completed finishes a power-up use: counters, achievements, events, save.
func (e *Engine) completed(kind powerup.Kind, msg string) {
	e.game.RecordUse(kind)
	e.achievements.RecordUse(kind)
	e.evaluateAchievements()
	e.saveAchievements()
	e.updateBest()

	e.emitBoard()
	e.emit(Event{Type: EventSelectionChanged})
	e.message(LevelSuccess, msg)
	e.saveGame()
}

func selectPrompt(kind powerup.Kind, partial bool) string {
	switch {
	case kind == powerup.Swap && partial:
		return "Select the second tile to swap"
	case kind == powerup.Swap:
		return "Select the first tile to swap"
	default:
		return fmt.Sprintf("Select a tile to %s", kind)
	}
}
