package game

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-2048plus/internal/grid"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
	"github.com/vovakirdan/tui-2048plus/internal/rng"
	"github.com/vovakirdan/tui-2048plus/internal/storage"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeRecorder struct{ records []storage.GameRecord }

func (f *fakeRecorder) SaveGame(rec storage.GameRecord) (string, error) {
	f.records = append(f.records, rec)
	return "id", nil
}

// newEngine builds an engine whose spawns always land a 2 in the first
// empty cell (row-major).
func newEngine(t *testing.T, kv storage.KV) (*Engine, *Recorder, *fakeClock) {
	t.Helper()
	if kv == nil {
		kv = storage.NewMemory()
	}
	rec := &Recorder{}
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	e := New(Options{
		Random:  &rng.Scripted{},
		Storage: kv,
		Sink:    rec,
		Clock:   clock.Now,
	})
	rec.Reset()
	return e, rec, clock
}

func setBoard(e *Engine, rows ...[]int) {
	e.grid = grid.FromRows(rows...)
	e.size = len(rows)
}

func mustMove(t *testing.T, e *Engine, dir grid.Direction) {
	t.Helper()
	changed, err := e.Move(dir)
	if err != nil {
		t.Fatalf("Move(%s): %v", dir, err)
	}
	if !changed {
		t.Fatalf("Move(%s) changed nothing:\n%s", dir, e.grid)
	}
}

func TestNewGameStartingState(t *testing.T) {
	e, _, _ := newEngine(t, nil)
	v := e.View()

	if v.Grid.Size() != 4 || v.Grid.Occupied() != 2 {
		t.Fatalf("new board:\n%s", v.Grid)
	}
	want := map[powerup.Kind]int{powerup.Undo: 3, powerup.Shuffle: 2, powerup.Remove: 2}
	for _, k := range powerup.Kinds {
		if v.Inventory.Count(k) != want[k] {
			t.Errorf("inventory[%s] = %d, want %d", k, v.Inventory.Count(k), want[k])
		}
	}
	if v.Score != 0 || v.HistoryLen != 0 || v.Selecting || v.Over || v.Won {
		t.Errorf("unexpected start view: %+v", v)
	}
}

func TestSpawnThenMergeScenario(t *testing.T) {
	e, rec, _ := newEngine(t, nil)

	if got := e.grid[0][:2]; got[0] != 2 || got[1] != 2 {
		t.Fatalf("initial spawns = %v, want [2 2]", got)
	}

	mustMove(t, e, grid.DirLeft)

	if e.grid[0][0] != 4 {
		t.Errorf("row 0 = %v, want 4 at (0,0)", e.grid[0])
	}
	if e.score != 4 {
		t.Errorf("score = %d, want 4", e.score)
	}
	if e.best != 4 {
		t.Errorf("best = %d, want 4", e.best)
	}
	if e.grid.Occupied() != 2 {
		t.Errorf("want merged tile plus one spawn:\n%s", e.grid)
	}
	if merges := rec.Of(EventMerge); len(merges) != 1 || merges[0].Value != 4 {
		t.Errorf("merge events = %+v", merges)
	}
}

func TestNoopMoveLeavesNoHistory(t *testing.T) {
	e, _, _ := newEngine(t, nil)
	setBoard(e,
		[]int{2, 0, 0, 0},
		[]int{4, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	before := e.grid.Clone()

	changed, err := e.Move(grid.DirLeft)
	if err != nil || changed {
		t.Fatalf("Move = %v, %v; want false, nil", changed, err)
	}
	if e.hist.Len() != 0 {
		t.Errorf("history len = %d after no-op move", e.hist.Len())
	}
	if !e.grid.Equal(before) {
		t.Errorf("board changed on no-op move:\n%s", e.grid)
	}
}

func TestRemoveThenUndo(t *testing.T) {
	e, _, _ := newEngine(t, nil)
	setBoard(e,
		[]int{2, 0, 0, 0},
		[]int{0, 8, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 4},
	)
	e.inv[powerup.Remove] = 1

	if err := e.Activate(powerup.Remove); err != nil {
		t.Fatalf("Activate(remove): %v", err)
	}
	if e.inv.Count(powerup.Remove) != 0 {
		t.Errorf("remove not charged on activation")
	}
	if err := e.Select(1, 1); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if e.grid[1][1] != 0 {
		t.Fatalf("tile not removed:\n%s", e.grid)
	}
	if e.sel.Active() {
		t.Error("selection still active after completion")
	}

	if err := e.Activate(powerup.Undo); err != nil {
		t.Fatalf("Activate(undo): %v", err)
	}
	if e.grid[1][1] != 8 {
		t.Errorf("undo did not restore the 8:\n%s", e.grid)
	}
	if e.inv.Count(powerup.Undo) != 2 {
		t.Errorf("undo count = %d, want 2", e.inv.Count(powerup.Undo))
	}
	if e.inv.Count(powerup.Remove) != 0 {
		t.Errorf("undo refunded remove: %d", e.inv.Count(powerup.Remove))
	}
	if !e.game.UsedKind(powerup.Undo) || !e.game.UsedKind(powerup.Remove) {
		t.Errorf("per-game usage = %v", e.game.Used)
	}
}

func TestUndoRestoresPreviousMove(t *testing.T) {
	e, _, _ := newEngine(t, nil)
	before := e.grid.Clone()

	mustMove(t, e, grid.DirLeft)
	if err := e.Activate(powerup.Undo); err != nil {
		t.Fatal(err)
	}
	if !e.grid.Equal(before) || e.score != 0 {
		t.Errorf("undo restored score %d and board\n%s", e.score, e.grid)
	}
}

func TestUndoWithEmptyHistory(t *testing.T) {
	e, _, _ := newEngine(t, nil)

	for range 2 {
		err := e.Activate(powerup.Undo)
		if !errors.Is(err, ErrInvalidAction) {
			t.Fatalf("undo with empty history = %v", err)
		}
	}
	if e.inv.Count(powerup.Undo) != 3 {
		t.Errorf("undo count = %d, want 3", e.inv.Count(powerup.Undo))
	}
}

func TestActivateWithZeroInventory(t *testing.T) {
	e, rec, _ := newEngine(t, nil)

	err := e.Activate(powerup.Swap)
	var ae *ActionError
	if !errors.As(err, &ae) || ae.Op != "activate" {
		t.Fatalf("Activate(swap) = %v, want ActionError", err)
	}
	if e.sel.Active() {
		t.Error("rejected activation entered selection")
	}
	if msgs := rec.Of(EventMessage); len(msgs) != 1 || msgs[0].Level != LevelError {
		t.Errorf("messages = %+v", msgs)
	}
}

func TestActivateNeedsEnoughTiles(t *testing.T) {
	e, _, _ := newEngine(t, nil)
	setBoard(e,
		[]int{2, 0, 0},
		[]int{0, 0, 0},
		[]int{0, 0, 0},
	)
	e.inv[powerup.Swap] = 1

	if err := e.Activate(powerup.Swap); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("swap on one tile = %v", err)
	}
	if e.inv.Count(powerup.Swap) != 1 {
		t.Error("failed swap consumed inventory")
	}

	setBoard(e,
		[]int{0, 0, 0},
		[]int{0, 0, 0},
		[]int{0, 0, 0},
	)
	for _, k := range []powerup.Kind{powerup.Remove, powerup.Lock, powerup.Double} {
		e.inv[k] = 1
		if err := e.Activate(k); !errors.Is(err, ErrInvalidAction) {
			t.Errorf("%s on empty board = %v", k, err)
		}
		if e.inv.Count(k) != 1 {
			t.Errorf("failed %s consumed inventory", k)
		}
	}
}

func TestSwapSelection(t *testing.T) {
	e, rec, _ := newEngine(t, nil)
	setBoard(e,
		[]int{2, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 64},
	)
	e.inv[powerup.Swap] = 1

	if err := e.Activate(powerup.Swap); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Move(grid.DirLeft); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("move during selection = %v", err)
	}
	if err := e.RequestNewGame(); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("new game during selection = %v", err)
	}

	if err := e.Select(0, 0); err != nil {
		t.Fatal(err)
	}
	if p := e.View().Partial; p == nil || *p != (grid.Cell{Row: 0, Col: 0}) {
		t.Errorf("partial = %v", p)
	}
	if err := e.Select(0, 0); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("selecting the same tile twice = %v", err)
	}
	if err := e.Select(2, 2); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("selecting an empty cell = %v", err)
	}
	if !e.sel.Active() {
		t.Fatal("invalid picks should keep the selection open")
	}

	if err := e.Select(3, 3); err != nil {
		t.Fatal(err)
	}
	if e.grid[0][0] != 64 || e.grid[3][3] != 2 {
		t.Errorf("tiles not swapped:\n%s", e.grid)
	}
	if e.hist.Len() != 1 {
		t.Errorf("history len = %d, want 1", e.hist.Len())
	}
	if e.achievements.Lifetime[powerup.Swap] != 1 {
		t.Errorf("lifetime swaps = %d", e.achievements.Lifetime[powerup.Swap])
	}
	if len(rec.Of(EventSelectionChanged)) < 3 {
		t.Errorf("selection events = %d", len(rec.Of(EventSelectionChanged)))
	}
}

func TestCancelSelectionRefunds(t *testing.T) {
	e, _, _ := newEngine(t, nil)

	if err := e.Activate(powerup.Remove); err != nil {
		t.Fatal(err)
	}
	if e.inv.Count(powerup.Remove) != 1 {
		t.Fatalf("remove = %d after activation", e.inv.Count(powerup.Remove))
	}
	if err := e.CancelSelection(); err != nil {
		t.Fatal(err)
	}
	if e.inv.Count(powerup.Remove) != 2 {
		t.Errorf("remove = %d after cancel, want refund to 2", e.inv.Count(powerup.Remove))
	}
	if e.game.PowerupsUsed != 0 {
		t.Errorf("cancelled use was counted")
	}
	if err := e.CancelSelection(); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("cancel while idle = %v", err)
	}
}

func TestLockExpiresAfterThreeMoves(t *testing.T) {
	e, rec, _ := newEngine(t, nil)
	setBoard(e,
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{8, 0, 0, 0},
	)
	e.inv[powerup.Lock] = 1

	if err := e.Activate(powerup.Lock); err != nil {
		t.Fatal(err)
	}
	if err := e.Select(3, 0); err != nil {
		t.Fatal(err)
	}
	if !e.locks.Has(3, 0) {
		t.Fatal("tile not locked")
	}

	mustMove(t, e, grid.DirRight)
	mustMove(t, e, grid.DirLeft)
	if len(e.locks) != 1 || e.locks[0].MovesRemaining != 1 {
		t.Fatalf("locks after 2 moves = %+v", e.locks)
	}
	if len(rec.Of(EventLockExpired)) != 0 {
		t.Fatal("lock expired early")
	}

	mustMove(t, e, grid.DirRight)
	if len(e.locks) != 0 {
		t.Errorf("locks after 3 moves = %+v", e.locks)
	}
	if ev := rec.Of(EventLockExpired); len(ev) != 1 || ev[0].Row != 3 || ev[0].Col != 0 {
		t.Errorf("lock expired events = %+v", ev)
	}
}

func TestLockSameTileTwice(t *testing.T) {
	e, _, _ := newEngine(t, nil)
	e.inv[powerup.Lock] = 2

	e.Activate(powerup.Lock)
	if err := e.Select(0, 0); err != nil {
		t.Fatal(err)
	}
	e.Activate(powerup.Lock)
	if err := e.Select(0, 0); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("locking a locked tile = %v", err)
	}
	if !e.sel.Active() {
		t.Error("selection should stay open")
	}
}

func TestMergeRewards(t *testing.T) {
	e, rec, _ := newEngine(t, nil)
	setBoard(e,
		[]int{16, 16, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	before := e.inv.Clone()

	mustMove(t, e, grid.DirLeft)

	for _, k := range powerup.Kinds {
		want := before[k]
		if k == powerup.Swap {
			want++
		}
		if e.inv.Count(k) != want {
			t.Errorf("after 32: %s = %d, want %d", k, e.inv.Count(k), want)
		}
	}
	if ev := rec.Of(EventRewardGranted); len(ev) != 1 || ev[0].Value != 32 {
		t.Errorf("reward events = %+v", ev)
	}
}

func TestWinFiresOnce(t *testing.T) {
	e, rec, _ := newEngine(t, nil)
	setBoard(e,
		[]int{1024, 1024, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)

	mustMove(t, e, grid.DirLeft)

	if !e.won || len(rec.Of(EventWin)) != 1 {
		t.Fatalf("won = %v, win events = %d", e.won, len(rec.Of(EventWin)))
	}
	if e.inv.Count(powerup.Undo) != 4 || e.inv.Count(powerup.Shuffle) != 3 {
		t.Errorf("2048 rewards: undo %d shuffle %d", e.inv.Count(powerup.Undo), e.inv.Count(powerup.Shuffle))
	}
	if e.themes.Current != "vaporwave" {
		t.Errorf("theme = %q, want vaporwave auto-activated", e.themes.Current)
	}
	unlocked := map[string]bool{}
	for _, ev := range rec.Of(EventAchievementUnlocked) {
		unlocked[ev.ID] = true
	}
	if !reflect.DeepEqual(unlocked, map[string]bool{"speedDemon": true, "minimalist": true, "noUndo": true}) {
		t.Errorf("achievements = %v", unlocked)
	}

	setBoard(e,
		[]int{1024, 1024, 0, 0},
		[]int{2048, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	mustMove(t, e, grid.DirLeft)

	if len(rec.Of(EventWin)) != 1 {
		t.Errorf("win fired %d times", len(rec.Of(EventWin)))
	}
	if e.inv.Count(powerup.Undo) != 5 {
		t.Errorf("second 2048 merge should still grant rewards: undo %d", e.inv.Count(powerup.Undo))
	}
}

func TestDoubleRunsProgression(t *testing.T) {
	e, rec, _ := newEngine(t, nil)
	setBoard(e,
		[]int{512, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	e.inv[powerup.Double] = 1

	if err := e.Activate(powerup.Double); err != nil {
		t.Fatal(err)
	}
	if err := e.Select(0, 0); err != nil {
		t.Fatal(err)
	}

	if e.grid[0][0] != 1024 {
		t.Errorf("tile = %d, want 1024", e.grid[0][0])
	}
	if e.score != 0 {
		t.Errorf("double added score %d", e.score)
	}
	if e.inv.Count(powerup.Double) != 1 {
		t.Errorf("1024 should grant a double back: %d", e.inv.Count(powerup.Double))
	}
	if ev := rec.Of(EventThemeUnlocked); len(ev) != 1 || ev[0].ID != "cyberpunk" {
		t.Errorf("theme events = %+v", ev)
	}
}

func TestShuffleKeepsTiles(t *testing.T) {
	e, _, _ := newEngine(t, nil)
	setBoard(e,
		[]int{0, 2, 0, 4},
		[]int{0, 0, 0, 0},
		[]int{8, 0, 0, 0},
		[]int{0, 0, 16, 0},
	)

	if err := e.Activate(powerup.Shuffle); err != nil {
		t.Fatal(err)
	}
	sum := 0
	for r := range e.grid {
		for _, v := range e.grid[r] {
			sum += v
		}
	}
	if sum != 30 || e.grid.Occupied() != 4 {
		t.Errorf("shuffle lost tiles:\n%s", e.grid)
	}
	if e.inv.Count(powerup.Shuffle) != 1 || e.hist.Len() != 1 {
		t.Errorf("shuffle = %d, history = %d", e.inv.Count(powerup.Shuffle), e.hist.Len())
	}
}

func TestTerminalStateAndUndoFromTerminal(t *testing.T) {
	e, rec, _ := newEngine(t, nil)
	setBoard(e,
		[]int{2, 4, 2, 4},
		[]int{4, 2, 4, 2},
		[]int{2, 4, 2, 4},
		[]int{0, 8, 16, 32},
	)

	mustMove(t, e, grid.DirLeft)

	if !e.over || len(rec.Of(EventTerminal)) != 1 {
		t.Fatalf("over = %v, board:\n%s", e.over, e.grid)
	}
	if e.stats.GamesPlayed != 1 || e.stats.GamesWon != 0 || e.stats.CurrentStreak != 0 {
		t.Errorf("stats = %+v", e.stats)
	}
	if _, err := e.Move(grid.DirUp); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("move after game over = %v", err)
	}
	if err := e.Activate(powerup.Shuffle); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("power-up after game over = %v", err)
	}

	undoBefore := e.inv.Count(powerup.Undo)
	if err := e.UndoFromTerminal(); err != nil {
		t.Fatal(err)
	}
	if e.over {
		t.Error("terminal flag not cleared")
	}
	if got := e.grid[3]; !reflect.DeepEqual(got, []int{0, 8, 16, 32}) {
		t.Errorf("row 3 = %v", got)
	}
	if e.inv.Count(powerup.Undo) != undoBefore {
		t.Error("undo from terminal charged inventory")
	}
	if err := e.UndoFromTerminal(); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("undo from terminal while playing = %v", err)
	}
}

// A game is counted once, at its first terminal state. Playing on after
// the free undo and then winning does not turn the recorded loss into a win.
func TestUndoFromTerminalKeepsRecordedResult(t *testing.T) {
	rec := &fakeRecorder{}
	e := New(Options{Random: &rng.Scripted{}, Recorder: rec})
	setBoard(e,
		[]int{2, 4, 2, 4},
		[]int{4, 2, 4, 2},
		[]int{2, 4, 2, 4},
		[]int{0, 8, 16, 32},
	)
	mustMove(t, e, grid.DirLeft)
	if !e.over || e.stats.GamesPlayed != 1 {
		t.Fatalf("over = %v, stats = %+v", e.over, e.stats)
	}
	if err := e.UndoFromTerminal(); err != nil {
		t.Fatal(err)
	}

	setBoard(e,
		[]int{1024, 1024, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	mustMove(t, e, grid.DirLeft)
	if !e.won {
		t.Fatal("2048 merge did not win")
	}
	e.NewGame()

	if e.stats.GamesPlayed != 1 || e.stats.GamesWon != 0 || e.stats.CurrentStreak != 0 {
		t.Errorf("stats = %+v, want the single recorded loss", e.stats)
	}
	if len(rec.records) != 1 || rec.records[0].Won {
		t.Errorf("records = %+v", rec.records)
	}
}

func TestStuckBoardEndsOnMoveAttempt(t *testing.T) {
	e, _, _ := newEngine(t, nil)
	setBoard(e,
		[]int{2, 4},
		[]int{4, 2},
	)

	changed, err := e.Move(grid.DirLeft)
	if changed || err != nil {
		t.Fatalf("Move = %v, %v", changed, err)
	}
	if !e.over {
		t.Error("stuck board should end the game")
	}
}

func TestWonGameRecordedAtNewGame(t *testing.T) {
	rec := &fakeRecorder{}
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	e := New(Options{Random: &rng.Scripted{}, Clock: clock.Now, Recorder: rec, Namespace: "alice"})
	setBoard(e,
		[]int{1024, 1024, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	mustMove(t, e, grid.DirLeft)
	clock.Advance(95 * time.Second)

	e.NewGame()

	if e.stats.GamesPlayed != 1 || e.stats.GamesWon != 1 || e.stats.CurrentStreak != 1 {
		t.Errorf("stats = %+v", e.stats)
	}
	if e.stats.FastestWin == nil || *e.stats.FastestWin != 95 {
		t.Errorf("fastest win = %v", e.stats.FastestWin)
	}
	if len(rec.records) != 1 || !rec.records[0].Won || rec.records[0].Namespace != "alice" || rec.records[0].MaxTile != 2048 {
		t.Errorf("records = %+v", rec.records)
	}

	e.NewGame()
	if e.stats.GamesPlayed != 1 {
		t.Error("abandoned game without a win should not be counted")
	}
}

func TestNewGameConfirmation(t *testing.T) {
	e, rec, _ := newEngine(t, nil)

	if err := e.RequestNewGame(); err != nil || e.confirming {
		t.Fatalf("score 0 should restart directly: %v, confirming %v", err, e.confirming)
	}

	mustMove(t, e, grid.DirLeft)
	if err := e.RequestNewGame(); err != nil {
		t.Fatal(err)
	}
	if !e.View().ConfirmingNewGame || len(rec.Of(EventConfirmNewGame)) != 1 {
		t.Fatal("expected a confirmation prompt")
	}
	if _, err := e.Move(grid.DirRight); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("move during confirmation = %v", err)
	}

	e.DeclineNewGame()
	if e.score != 4 {
		t.Errorf("decline lost progress: score %d", e.score)
	}

	e.RequestNewGame()
	e.ConfirmNewGame()
	if e.score != 0 || e.confirming || e.hist.Len() != 0 {
		t.Errorf("confirm did not start over: score %d", e.score)
	}
}

func TestSetGridSize(t *testing.T) {
	kv := storage.NewMemory()
	e, _, _ := newEngine(t, kv)

	if err := e.SetGridSize(7); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("SetGridSize(7) = %v", err)
	}
	if err := e.SetGridSize(5); err != nil {
		t.Fatal(err)
	}
	if e.grid.Size() != 5 || e.grid.Occupied() != 3 {
		t.Errorf("5x5 board:\n%s", e.grid)
	}

	again, _, _ := newEngine(t, kv)
	if again.grid.Size() != 5 {
		t.Errorf("grid size not persisted: %d", again.grid.Size())
	}
}

func TestResumeFromStorage(t *testing.T) {
	kv := storage.NewMemory()
	e, _, _ := newEngine(t, kv)
	mustMove(t, e, grid.DirLeft)
	e.inv[powerup.Lock] = 1
	e.Activate(powerup.Lock)
	e.Select(0, 0)

	resumed, _, _ := newEngine(t, kv)
	if !resumed.grid.Equal(e.grid) || resumed.score != e.score || resumed.best != e.best {
		t.Errorf("resumed board/score differ:\n%s\n%s", resumed.grid, e.grid)
	}
	if resumed.hist.Len() != e.hist.Len() || !resumed.locks.Has(0, 0) {
		t.Errorf("history %d/%d, locks %v", resumed.hist.Len(), e.hist.Len(), resumed.locks)
	}
	if resumed.achievements.Lifetime[powerup.Lock] != 1 {
		t.Errorf("lifetime usage not persisted")
	}
}

func TestResumeCountsOnlyPlayTime(t *testing.T) {
	kv := storage.NewMemory()
	e, _, clock := newEngine(t, kv)
	clock.Advance(10 * time.Second)
	mustMove(t, e, grid.DirLeft)

	// Closed for three days.
	clock.Advance(72 * time.Hour)
	resumed := New(Options{Random: &rng.Scripted{}, Storage: kv, Clock: clock.Now})
	if resumed.score != e.score {
		t.Fatalf("did not resume: score %d, want %d", resumed.score, e.score)
	}

	clock.Advance(5 * time.Second)
	setBoard(resumed,
		[]int{2, 4, 2, 4},
		[]int{4, 2, 4, 2},
		[]int{2, 4, 2, 4},
		[]int{0, 8, 16, 32},
	)
	mustMove(t, resumed, grid.DirLeft)

	if !resumed.over {
		t.Fatalf("expected game over:\n%s", resumed.grid)
	}
	if got := resumed.stats.TotalPlayTime; got != 15 {
		t.Errorf("TotalPlayTime = %ds, want 15s", got)
	}
}

func TestResumeWinUsesPlayTime(t *testing.T) {
	kv := storage.NewMemory()
	e, _, clock := newEngine(t, kv)
	clock.Advance(20 * time.Second)
	mustMove(t, e, grid.DirLeft)

	clock.Advance(24 * time.Hour)
	resumed := New(Options{Random: &rng.Scripted{}, Storage: kv, Clock: clock.Now})
	clock.Advance(10 * time.Second)
	setBoard(resumed,
		[]int{1024, 1024, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	mustMove(t, resumed, grid.DirLeft)
	resumed.NewGame()

	if resumed.stats.FastestWin == nil || *resumed.stats.FastestWin != 30 {
		t.Errorf("fastest win = %v, want 30s", resumed.stats.FastestWin)
	}
}

func TestCorruptGameStateStartsFresh(t *testing.T) {
	kv := storage.NewMemory()
	e, _, _ := newEngine(t, kv)
	setBoard(e,
		[]int{512, 512, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	mustMove(t, e, grid.DirLeft)

	kv.Set(storage.KeyGameState, []byte(`{"grid": "broken"`))

	fresh, _, _ := newEngine(t, kv)
	if fresh.score != 0 || fresh.grid.Occupied() != 2 {
		t.Errorf("expected a fresh game, score %d", fresh.score)
	}
	if fresh.themes.Current != "cyberpunk" {
		t.Errorf("theme slice lost: %+v", fresh.themes)
	}
	if fresh.best != 1024 {
		t.Errorf("best score lost: %d", fresh.best)
	}
}

func TestSwitchThemeAndResetStatistics(t *testing.T) {
	e, _, _ := newEngine(t, nil)

	if err := e.SwitchTheme("matrix"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("switching to locked theme = %v", err)
	}
	e.themes.UnlockAt(e.rules.Themes, 4096)
	e.CycleTheme()
	if e.View().Theme != "default" {
		t.Errorf("cycle from matrix = %q", e.View().Theme)
	}

	e.stats.GamesPlayed = 3
	e.ResetStatistics()
	if e.stats.GamesPlayed != 0 {
		t.Error("statistics not reset")
	}
}

func TestSetSoundClamps(t *testing.T) {
	e, _, _ := newEngine(t, nil)
	e.SetSound(false, 4)
	if s := e.View().Sound; s.Enabled || s.Volume != 1 {
		t.Errorf("sound = %+v", s)
	}
}
