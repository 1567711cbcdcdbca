package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048plus/internal/game"
	"github.com/vovakirdan/tui-2048plus/internal/grid"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
	"github.com/vovakirdan/tui-2048plus/internal/rng"
	"github.com/vovakirdan/tui-2048plus/internal/storage"
)

// newTestModel builds a model whose spawns always land a 2 in the first
// empty cell, so a new 4x4 board starts as [2 2 0 0] on the top row.
func newTestModel(t *testing.T) Model {
	t.Helper()
	return NewModel(Options{
		Engine: game.Options{
			Random:  &rng.Scripted{},
			Storage: storage.NewMemory(),
			Clock:   func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
		},
		ScreenshotDir: t.TempDir(),
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestArrowKeysMove(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	v := m.Engine().View()
	if v.Score != 4 || v.Grid[0][0] != 4 {
		t.Fatalf("after left: score %d, board\n%s", v.Score, v.Grid)
	}
	if v.Game.Moves != 1 {
		t.Errorf("moves = %d, want 1", v.Game.Moves)
	}
}

func TestVimKeysMove(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, runes("h"))
	if got := m.Engine().View().Score; got != 4 {
		t.Fatalf("score after h = %d, want 4", got)
	}
}

func TestPowerupSelectionFlow(t *testing.T) {
	m := newTestModel(t)

	// 3 = remove
	m, _ = press(t, m, runes("3"))
	v := m.Engine().View()
	if !v.Selecting || v.SelectionKind != powerup.Remove {
		t.Fatalf("expected remove selection, got %+v", v)
	}
	if m.cursor != (grid.Cell{Row: 0, Col: 0}) {
		t.Fatalf("cursor = %+v, want first tile", m.cursor)
	}

	// Arrows move the cursor, not the board.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.cursor != (grid.Cell{Row: 0, Col: 1}) {
		t.Fatalf("cursor = %+v, want (0,1)", m.cursor)
	}
	if m.Engine().View().Game.Moves != 0 {
		t.Fatal("arrow key moved the board during selection")
	}

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	v = m.Engine().View()
	if v.Selecting {
		t.Fatal("selection still open after enter")
	}
	if v.Grid[0][1] != 0 || v.Grid[0][0] != 2 {
		t.Fatalf("remove hit the wrong tile:\n%s", v.Grid)
	}
	if v.Inventory.Count(powerup.Remove) != 1 {
		t.Errorf("remove count = %d, want 1", v.Inventory.Count(powerup.Remove))
	}
	if m.message != "Tile removed!" {
		t.Errorf("message = %q", m.message)
	}
	if cmd == nil {
		t.Error("expected a command to clear the message")
	}
}

func TestCancelSelectionRefunds(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, runes("3"), tea.KeyMsg{Type: tea.KeyEsc})
	v := m.Engine().View()
	if v.Selecting {
		t.Fatal("selection still open after esc")
	}
	if v.Inventory.Count(powerup.Remove) != 2 {
		t.Errorf("remove count = %d, want refund to 2", v.Inventory.Count(powerup.Remove))
	}
}

func TestRejectedActionShowsError(t *testing.T) {
	m := newTestModel(t)

	// 4 = swap, starting inventory has none.
	m, _ = press(t, m, runes("4"))
	if m.Engine().View().Selecting {
		t.Fatal("swap activated with empty inventory")
	}
	if m.messageLevel != game.LevelError || !strings.Contains(m.message, "swap") {
		t.Errorf("message = %q level %d", m.message, m.messageLevel)
	}
}

func TestNewGameConfirmation(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	m, _ = press(t, m, runes("n"))
	if !m.Engine().View().ConfirmingNewGame {
		t.Fatal("expected confirmation prompt")
	}
	if !strings.Contains(m.View(), "NEW GAME?") {
		t.Error("confirmation overlay not rendered")
	}

	// n declines while the prompt is open.
	m, _ = press(t, m, runes("n"))
	if v := m.Engine().View(); v.ConfirmingNewGame || v.Score != 4 {
		t.Fatalf("decline: %+v", v)
	}

	m, _ = press(t, m, runes("n"), runes("y"))
	if v := m.Engine().View(); v.ConfirmingNewGame || v.Score != 0 {
		t.Fatalf("confirm: score %d confirming %v", v.Score, v.ConfirmingNewGame)
	}
}

func TestMessageExpires(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("4"))
	if m.message == "" {
		t.Fatal("expected an error message")
	}

	// A stale clear does nothing.
	next, _ := m.Update(clearMessageMsg{seq: m.messageSeq - 1})
	m = next.(Model)
	if m.message == "" {
		t.Fatal("stale clear removed the message")
	}

	next, _ = m.Update(clearMessageMsg{seq: m.messageSeq})
	m = next.(Model)
	if m.message != "" {
		t.Errorf("message = %q, want cleared", m.message)
	}
}

func TestGridSizePanel(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, runes("g"))
	if m.panel != panelSize {
		t.Fatalf("panel = %d, want size picker", m.panel)
	}
	if !strings.Contains(m.View(), "GRID SIZE") {
		t.Error("size picker not rendered")
	}

	// Cursor starts on 4x4; one down selects 5x5.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.panel != panelNone {
		t.Fatal("panel still open after choosing a size")
	}
	v := m.Engine().View()
	if v.Grid.Size() != 5 || v.Grid.Occupied() != 3 {
		t.Fatalf("board after size change:\n%s", v.Grid)
	}
}

func TestLockedThemeCannotBeChosen(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, runes("T"), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.panel != panelThemes {
		t.Fatal("picker closed after choosing a locked theme")
	}
	if got := m.Engine().View().Theme; got != "default" {
		t.Errorf("theme = %q, want default", got)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.panel != panelNone {
		t.Error("esc did not close the picker")
	}
}

func TestStatsPanelRenders(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, runes("s"))
	out := m.View()
	for _, want := range []string{"STATISTICS", "Games played", "Win rate"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats panel missing %q", want)
		}
	}
	m, _ = press(t, m, runes("s"))
	if m.panel != panelNone {
		t.Error("s did not toggle the panel closed")
	}
}

func TestMuteTogglesSound(t *testing.T) {
	m := newTestModel(t)
	if !m.Engine().View().Sound.Enabled {
		t.Fatal("sound should default to on")
	}
	m, _ = press(t, m, runes("m"))
	if m.Engine().View().Sound.Enabled {
		t.Error("sound still on after m")
	}
	if m.message != "Sound off" {
		t.Errorf("message = %q", m.message)
	}
}

func TestScreenshot(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.screenshotDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("screenshots = %d, want 1", len(entries))
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	m, cmd := press(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("q did not quit")
	}
	if m.View() != "" {
		t.Error("view after quit should be empty")
	}
}

func TestPaletteTiles(t *testing.T) {
	for _, id := range []string{"default", "cyberpunk", "vaporwave", "matrix", "unknown"} {
		p := PaletteFor(id)
		for v := 2; v <= 1<<17; v *= 2 {
			_ = p.Tile(v).Render("x")
		}
	}
}

type fakeLister struct {
	calls []string
	games []storage.GameRecord
}

func (f *fakeLister) TopGames(ns string, _ int) ([]storage.GameRecord, error) {
	f.calls = append(f.calls, ns)
	return f.games, nil
}

func TestScoreboardToggle(t *testing.T) {
	lister := &fakeLister{games: []storage.GameRecord{
		{Namespace: "alice", Score: 2048, MaxTile: 256, Moves: 300, Duration: 95},
	}}
	m := NewScoreboardModel(lister, "alice", 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(lister.calls) != 2 || lister.calls[0] != "alice" || lister.calls[1] != "" {
		t.Fatalf("namespaces queried = %q", lister.calls)
	}
	if !strings.Contains(m.View(), "2048") {
		t.Error("score missing from table")
	}
}

func TestSessionOpensScoreboard(t *testing.T) {
	s := NewSessionModel(&fakeLister{}, "local", Options{
		Engine: game.Options{Random: &rng.Scripted{}, Storage: storage.NewMemory()},
	})

	next, _ := s.Update(runes("H"))
	s = next.(SessionModel)
	if s.scores == nil {
		t.Fatal("H did not open the scoreboard")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.scores != nil || s.quitting {
		t.Fatal("esc should return to the game")
	}
}
