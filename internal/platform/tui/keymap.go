package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048plus/internal/grid"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Cancel  key.Binding
	Undo    key.Binding
	Powerup key.Binding
	NewGame key.Binding
	Yes     key.Binding
	No      key.Binding
	Theme   key.Binding
	Themes  key.Binding
	Size    key.Binding
	Stats   key.Binding
	Awards  key.Binding
	Reset   key.Binding
	Mute    key.Binding
	Scores  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Powerup, k.Undo, k.NewGame, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Powerup, k.Select, k.Cancel, k.Undo},
		{k.NewGame, k.Size, k.Theme, k.Themes},
		{k.Stats, k.Awards, k.Scores, k.Mute, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select tile"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "cancel/close"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Powerup: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "power-up"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		Themes: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "themes"),
		),
		Size: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grid size"),
		),
		Stats: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "statistics"),
		),
		Awards: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "achievements"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset stats"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "sound on/off"),
		),
		Scores: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "high scores"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// direction maps a movement key to a slide direction.
func (k KeyMap) direction(msg tea.KeyMsg) (grid.Direction, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return grid.DirUp, true
	case key.Matches(msg, k.Down):
		return grid.DirDown, true
	case key.Matches(msg, k.Left):
		return grid.DirLeft, true
	case key.Matches(msg, k.Right):
		return grid.DirRight, true
	}
	return 0, false
}

// powerupKey maps "1".."6" to power-ups in display order.
func powerupKey(msg tea.KeyMsg) (powerup.Kind, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return "", false
	}
	i := int(s[0] - '1')
	if i >= len(powerup.Kinds) {
		return "", false
	}
	return powerup.Kinds[i], true
}
