package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048plus/internal/game"
	"github.com/vovakirdan/tui-2048plus/internal/grid"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
)

// panel is an overlay that replaces the board.
type panel int

const (
	panelNone panel = iota
	panelStats
	panelAchievements
	panelThemes
	panelSize
)

// eventQueue buffers engine events until the next Update drains them.
type eventQueue struct {
	events []game.Event
}

func (q *eventQueue) Notify(e game.Event) {
	q.events = append(q.events, e)
}

func (q *eventQueue) take() []game.Event {
	evs := q.events
	q.events = nil
	return evs
}

// Options configures NewModel.
type Options struct {
	// Engine configures the game engine. Its Sink is replaced by the model.
	Engine game.Options
	// ScreenshotDir receives ctrl+s board dumps. Empty disables screenshots.
	ScreenshotDir string
	Width         int
	Height        int
}

// Model is the Bubble Tea model for one player's game.
type Model struct {
	engine *game.Engine
	events *eventQueue
	keys   KeyMap
	help   help.Model

	cursor      grid.Cell
	panel       panel
	panelCursor int

	message      string
	messageLevel game.Level
	messageSeq   int

	screenshotDir string
	width         int
	height        int
	quitting      bool
}

// NewModel builds an engine from opts and wraps it in a model.
func NewModel(opts Options) Model {
	q := &eventQueue{}
	opts.Engine.Sink = q

	m := Model{
		engine:        game.New(opts.Engine),
		events:        q,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		screenshotDir: opts.ScreenshotDir,
		width:         opts.Width,
		height:        opts.Height,
	}
	m.help.Width = opts.Width
	m.drain()
	return m
}

// Engine returns the engine driven by the model.
func (m Model) Engine() *game.Engine {
	return m.engine
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.message != "" {
		return clearMessageCmd(m.messageSeq)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clearMessageMsg:
		if msg.seq == m.messageSeq {
			m.message = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey routes a key to the confirm prompt, an open panel, the
// selection cursor or the board, in that order.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	seq := m.messageSeq
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, m.expire(seq)
	}

	v := m.engine.View()
	switch {
	case v.ConfirmingNewGame:
		m.handleConfirmKey(msg)
	case m.panel != panelNone:
		m.handlePanelKey(msg, v)
	case v.Selecting:
		m.handleSelectKey(msg, v)
	default:
		m.handleBoardKey(msg, v)
	}
	m.drain()
	return m, m.expire(seq)
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.engine.ConfirmNewGame()
	case key.Matches(msg, m.keys.No):
		m.engine.DeclineNewGame()
	}
}

func (m *Model) handleBoardKey(msg tea.KeyMsg, v game.View) {
	if dir, ok := m.keys.direction(msg); ok {
		_, _ = m.engine.Move(dir)
		return
	}
	if kind, ok := powerupKey(msg); ok {
		if err := m.engine.Activate(kind); err == nil && m.engine.View().Selecting {
			m.cursor = firstTile(m.engine.View().Grid)
		}
		return
	}

	switch {
	case key.Matches(msg, m.keys.Undo):
		if v.Over {
			_ = m.engine.UndoFromTerminal()
		} else {
			_ = m.engine.Activate(powerup.Undo)
		}
	case key.Matches(msg, m.keys.NewGame):
		_ = m.engine.RequestNewGame()
	case key.Matches(msg, m.keys.Theme):
		m.engine.CycleTheme()
	case key.Matches(msg, m.keys.Themes):
		m.openPanel(panelThemes, activeTheme(v))
	case key.Matches(msg, m.keys.Size):
		m.openPanel(panelSize, indexOf(v.GridSizes, v.Grid.Size()))
	case key.Matches(msg, m.keys.Stats):
		m.openPanel(panelStats, 0)
	case key.Matches(msg, m.keys.Awards):
		m.openPanel(panelAchievements, 0)
	case key.Matches(msg, m.keys.Mute):
		m.engine.SetSound(!v.Sound.Enabled, v.Sound.Volume)
		state := "off"
		if !v.Sound.Enabled {
			state = "on"
		}
		m.setMessage("Sound "+state, game.LevelInfo)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
}

func (m *Model) handleSelectKey(msg tea.KeyMsg, v game.View) {
	if dir, ok := m.keys.direction(msg); ok {
		m.cursor = moveCursor(m.cursor, dir, v.Grid.Size())
		return
	}
	switch {
	case key.Matches(msg, m.keys.Select):
		_ = m.engine.Select(m.cursor.Row, m.cursor.Col)
	case key.Matches(msg, m.keys.Cancel):
		_ = m.engine.CancelSelection()
	}
}

func (m *Model) handlePanelKey(msg tea.KeyMsg, v game.View) {
	n := 0
	switch m.panel {
	case panelThemes:
		n = len(v.Themes)
	case panelSize:
		n = len(v.GridSizes)
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.panel = panelNone
	case key.Matches(msg, m.keys.Up):
		if m.panelCursor > 0 {
			m.panelCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.panelCursor < n-1 {
			m.panelCursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.applyPanel(v)
	case m.panel == panelStats && key.Matches(msg, m.keys.Reset):
		m.engine.ResetStatistics()
	case m.panel == panelStats && key.Matches(msg, m.keys.Stats),
		m.panel == panelAchievements && key.Matches(msg, m.keys.Awards),
		m.panel == panelThemes && key.Matches(msg, m.keys.Themes),
		m.panel == panelSize && key.Matches(msg, m.keys.Size):
		m.panel = panelNone
	}
}

func (m *Model) applyPanel(v game.View) {
	switch m.panel {
	case panelThemes:
		if m.panelCursor < len(v.Themes) {
			if err := m.engine.SwitchTheme(v.Themes[m.panelCursor].ID); err != nil {
				return
			}
		}
	case panelSize:
		if m.panelCursor < len(v.GridSizes) {
			if err := m.engine.SetGridSize(v.GridSizes[m.panelCursor]); err != nil {
				return
			}
		}
	}
	m.panel = panelNone
}

func (m *Model) openPanel(p panel, cursor int) {
	m.panel = p
	m.panelCursor = max(cursor, 0)
}

func (m *Model) setMessage(text string, level game.Level) {
	m.message = text
	m.messageLevel = level
	m.messageSeq++
}

// drain applies queued engine events to the status line. Unlocks, wins and
// game over take precedence over routine messages in the same batch.
func (m *Model) drain() {
	important := false
	for _, ev := range m.events.take() {
		switch ev.Type {
		case game.EventMessage:
			if !important {
				m.setMessage(ev.Message, ev.Level)
			}
		case game.EventThemeUnlocked:
			m.setMessage(fmt.Sprintf("New theme unlocked: %s", ev.Name), game.LevelSuccess)
			important = true
		case game.EventAchievementUnlocked:
			m.setMessage(fmt.Sprintf("Achievement unlocked: %s", ev.Name), game.LevelSuccess)
			important = true
		case game.EventWin:
			m.setMessage(fmt.Sprintf("You reached %d! Keep going.", ev.Value), game.LevelSuccess)
			important = true
		case game.EventTerminal:
			m.setMessage("No moves left.", game.LevelError)
			important = true
		}
	}
}

// expire schedules clearing of the status line if it changed since seq.
func (m *Model) expire(seq int) tea.Cmd {
	if m.messageSeq == seq {
		return nil
	}
	return clearMessageCmd(m.messageSeq)
}

// saveScreenshot writes the current board to a text file.
func (m *Model) saveScreenshot() {
	if m.screenshotDir == "" {
		return
	}
	v := m.engine.View()
	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.setMessage("Cannot save screenshot", game.LevelError)
		return
	}

	name := fmt.Sprintf("p2048_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.screenshotDir, name)
	body := fmt.Sprintf("score %d  best %d\n%s", v.Score, v.BestScore, v.Grid)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		m.setMessage("Cannot save screenshot", game.LevelError)
		return
	}
	m.setMessage("Screenshot saved to "+path, game.LevelInfo)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.engine.View()
	p := PaletteFor(v.Theme)

	marks := boardMarks{
		locks:   v.Locks,
		partial: v.Partial,
		compact: m.height > 0 && m.height < v.Grid.Size()*cellHeight+10,
	}
	if v.Selecting {
		c := m.cursor
		marks.cursor = &c
	}

	var center string
	switch m.panel {
	case panelStats:
		center = renderStats(v, p)
	case panelAchievements:
		center = renderAchievements(v, p)
	case panelThemes:
		center = renderMenu("THEMES", themeItems(v), m.panelCursor, p)
	case panelSize:
		center = renderMenu("GRID SIZE", sizeItems(v), m.panelCursor, p)
	default:
		center = renderBoard(v.Grid, marks, p)
	}

	sections := []string{renderHUD(v, p), "", center, "", renderInventory(v, p)}
	switch {
	case v.ConfirmingNewGame:
		sections = append(sections, renderOverlay("NEW GAME?",
			[]string{"Current progress will be lost.", "y confirm · n cancel"}, p))
	case v.Over:
		sections = append(sections, renderOverlay("GAME OVER",
			[]string{fmt.Sprintf("Final score %d", v.Score), "u undo · n new game · q quit"}, p))
	case v.Selecting:
		sections = append(sections, p.MenuDescription.Render("arrows move · enter select · esc cancel"))
	}
	sections = append(sections, renderMessage(m.message, m.messageLevel, p), m.help.View(m.keys))

	body := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func firstTile(g grid.Grid) grid.Cell {
	for r := range g.Size() {
		for c := range g.Size() {
			if g[r][c] != 0 {
				return grid.Cell{Row: r, Col: c}
			}
		}
	}
	return grid.Cell{}
}

func moveCursor(c grid.Cell, dir grid.Direction, size int) grid.Cell {
	switch dir {
	case grid.DirUp:
		c.Row = max(c.Row-1, 0)
	case grid.DirDown:
		c.Row = min(c.Row+1, size-1)
	case grid.DirLeft:
		c.Col = max(c.Col-1, 0)
	case grid.DirRight:
		c.Col = min(c.Col+1, size-1)
	}
	return c
}

func activeTheme(v game.View) int {
	for i, th := range v.Themes {
		if th.Active {
			return i
		}
	}
	return 0
}

func indexOf(vals []int, want int) int {
	for i, v := range vals {
		if v == want {
			return i
		}
	}
	return 0
}

// Run starts the Bubble Tea program for a local player.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
