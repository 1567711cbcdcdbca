// Package game is the 2048 controller. An Engine owns the board, score,
// power-ups, undo history and progression, and is the only place they are
// mutated. Presenters read View and listen for Events.
package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048plus/internal/config"
	"github.com/vovakirdan/tui-2048plus/internal/grid"
	"github.com/vovakirdan/tui-2048plus/internal/history"
	"github.com/vovakirdan/tui-2048plus/internal/persist"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
	"github.com/vovakirdan/tui-2048plus/internal/progress"
	"github.com/vovakirdan/tui-2048plus/internal/rng"
	"github.com/vovakirdan/tui-2048plus/internal/storage"
)

// GameRecorder stores finished games. *storage.Store implements it.
type GameRecorder interface {
	SaveGame(rec storage.GameRecord) (string, error)
}

// Options configures New. Every field is optional.
type Options struct {
	Rules     config.Rules
	Random    rng.Source
	Storage   storage.KV
	Sink      Sink
	Logger    *log.Logger
	Clock     func() time.Time
	Recorder  GameRecorder
	Namespace string
	// Fresh ignores a saved in-progress game.
	Fresh bool
}

// Engine is not safe for concurrent use; give each player their own.
type Engine struct {
	rules     config.Rules
	rnd       rng.Source
	store     *persist.Store
	sink      Sink
	logger    *log.Logger
	now       func() time.Time
	recorder  GameRecorder
	namespace string
	rewards   progress.RewardTable

	size       int
	grid       grid.Grid
	score      int
	best       int
	inv        powerup.Inventory
	locks      powerup.Locks
	hist       *history.Stack
	sel        powerup.Selection
	over       bool
	won        bool
	recorded   bool
	confirming bool
	game       progress.GameStats

	themes       progress.ThemeBook
	achievements progress.AchievementBook
	stats        progress.Statistics
	sound        persist.Sound
}

// New builds an engine, loads every persisted slice and either resumes the
// saved game or starts a new one.
func New(opts Options) *Engine {
	e := &Engine{
		rules:     opts.Rules,
		rnd:       opts.Random,
		sink:      opts.Sink,
		logger:    opts.Logger,
		now:       opts.Clock,
		recorder:  opts.Recorder,
		namespace: opts.Namespace,
	}
	if e.rules.GridSize == 0 {
		e.rules = config.DefaultRules()
	}
	if e.rnd == nil {
		e.rnd = rng.New(0)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.now == nil {
		e.now = time.Now
	}
	kv := opts.Storage
	if kv == nil {
		kv = storage.NewMemory()
	}
	e.store = persist.New(kv, e.logger)
	e.rewards = progress.NewRewardTable(e.rules.Rewards)
	e.hist = history.New(e.rules.HistoryLimit)

	e.best = e.store.BestScore()
	e.themes = e.store.Themes()
	e.themes.Normalize(e.rules.Themes)
	e.achievements = e.store.Achievements()
	e.stats = e.store.Statistics()
	e.sound = e.store.Sound()

	e.size = e.rules.GridSize
	if n, ok := e.store.GridSize(); ok && e.rules.AllowsSize(n) {
		e.size = n
	}

	if !opts.Fresh {
		if gs, ok := e.store.Game(); ok && e.rules.AllowsSize(gs.Grid.Size()) {
			e.resume(gs)
			return e
		}
	}
	e.NewGame()
	return e
}

func (e *Engine) resume(gs persist.GameState) {
	e.size = gs.Grid.Size()
	e.grid = gs.Grid
	e.score = gs.Score
	e.inv = gs.Powerups
	e.locks = gs.LockedTiles
	e.hist.Restore(gs.History)
	e.over = gs.Over
	e.won = gs.Won
	e.recorded = gs.Recorded
	e.game = gs.Stats
	e.game.StartedAt = e.now().Add(-e.game.Elapsed)
	e.logger.Info("resumed game", "size", e.size, "score", e.score)
	e.emitBoard()
}

// NewGame discards the current game without asking.
func (e *Engine) NewGame() {
	if e.won && !e.recorded {
		e.finishGame()
	}

	e.grid = grid.New(e.size)
	e.score = 0
	e.inv = powerup.NewInventory(e.rules.StartingInventory)
	e.locks = nil
	e.hist.Clear()
	e.sel = powerup.Selection{}
	e.over, e.won, e.recorded, e.confirming = false, false, false, false
	e.game = progress.NewGameStats(e.now())

	for range e.rules.InitialTilesFor(e.size) {
		grid.Spawn(e.grid, e.rnd, e.rules.SpawnFourChance)
	}

	e.logger.Debug("new game", "size", e.size)
	e.saveGame()
	e.emitBoard()
	e.emit(Event{Type: EventSelectionChanged})
}

// RequestNewGame starts a new game, asking for confirmation first when
// there is progress to lose.
func (e *Engine) RequestNewGame() error {
	if e.sel.Active() {
		return e.reject("new game", "finish or cancel the power-up first")
	}
	if e.score == 0 || e.over {
		e.NewGame()
		return nil
	}
	e.confirming = true
	e.emit(Event{Type: EventConfirmNewGame, Message: "Start a new game? Current progress will be lost."})
	return nil
}

// ConfirmNewGame answers a pending RequestNewGame.
func (e *Engine) ConfirmNewGame() {
	if !e.confirming {
		return
	}
	e.NewGame()
}

// DeclineNewGame dismisses a pending RequestNewGame.
func (e *Engine) DeclineNewGame() {
	e.confirming = false
}

// SetGridSize changes the board size and starts a new game.
func (e *Engine) SetGridSize(n int) error {
	if !e.rules.AllowsSize(n) {
		return e.reject("grid size", "unsupported grid size")
	}
	if e.sel.Active() {
		return e.reject("grid size", "finish or cancel the power-up first")
	}
	e.size = n
	if err := e.store.SaveGridSize(n); err != nil {
		e.logger.Warn("cannot save grid size", "error", err)
	}
	e.NewGame()
	return nil
}

// SwitchTheme activates an unlocked theme.
func (e *Engine) SwitchTheme(id string) error {
	if err := e.themes.Switch(id); err != nil {
		return e.reject("theme", err.Error())
	}
	e.saveThemes()
	e.emit(Event{Type: EventThemeChanged, ID: id})
	return nil
}

// CycleTheme switches to the next unlocked theme.
func (e *Engine) CycleTheme() {
	_ = e.SwitchTheme(e.themes.Next(e.rules.Themes))
}

// SetSound stores the sound preferences. Volume is clamped to [0, 1].
func (e *Engine) SetSound(enabled bool, volume float64) {
	e.sound = persist.Sound{Enabled: enabled, Volume: min(max(volume, 0), 1)}
	if err := e.store.SaveSound(e.sound); err != nil {
		e.logger.Warn("cannot save sound settings", "error", err)
	}
}

// ResetStatistics clears global statistics. Achievements and themes stay.
func (e *Engine) ResetStatistics() {
	e.stats = progress.Statistics{}
	e.saveStats()
	e.emit(Event{Type: EventMessage, Message: "Statistics reset!", Level: LevelSuccess})
}

// Rules returns the rule set in use.
func (e *Engine) Rules() config.Rules {
	return e.rules
}

func (e *Engine) emit(ev Event) {
	if e.sink != nil {
		e.sink.Notify(ev)
	}
}

func (e *Engine) emitBoard() {
	e.emit(Event{Type: EventGridChanged})
	e.emit(Event{Type: EventScoreChanged, Value: e.score})
	e.emit(Event{Type: EventInventoryChanged})
}

func (e *Engine) message(level Level, text string) {
	e.emit(Event{Type: EventMessage, Message: text, Level: level})
}

func (e *Engine) snapshot() {
	e.hist.Push(history.Snapshot{Grid: e.grid, Score: e.score, Inventory: e.inv})
}

func (e *Engine) updateBest() {
	if e.score <= e.best {
		return
	}
	e.best = e.score
	if err := e.store.SaveBestScore(e.best); err != nil {
		e.logger.Warn("cannot save best score", "error", err)
	}
}

func (e *Engine) saveGame() {
	e.game.Elapsed = e.now().Sub(e.game.StartedAt)
	gs := persist.GameState{
		Grid:        e.grid,
		Score:       e.score,
		Powerups:    e.inv,
		LockedTiles: e.locks,
		History:     e.hist.Entries(),
		Over:        e.over,
		Won:         e.won,
		Recorded:    e.recorded,
		Stats:       e.game,
	}
	if err := e.store.SaveGame(gs); err != nil {
		e.logger.Warn("cannot save game", "error", err)
	}
}

func (e *Engine) saveThemes() {
	if err := e.store.SaveThemes(e.themes); err != nil {
		e.logger.Warn("cannot save themes", "error", err)
	}
}

func (e *Engine) saveAchievements() {
	if err := e.store.SaveAchievements(e.achievements); err != nil {
		e.logger.Warn("cannot save achievements", "error", err)
	}
}

func (e *Engine) saveStats() {
	if err := e.store.SaveStatistics(e.stats); err != nil {
		e.logger.Warn("cannot save statistics", "error", err)
	}
}
