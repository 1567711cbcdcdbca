// Package tui provides the Bubble Tea front end for the game engine.
// It handles the terminal UI loop, input mapping, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// messageTTL is how long a status message stays on screen.
const messageTTL = 2 * time.Second

// clearMessageMsg clears the status message if it is still the one with seq.
type clearMessageMsg struct {
	seq int
}

// clearMessageCmd returns a command that expires message seq after messageTTL.
func clearMessageCmd(seq int) tea.Cmd {
	return tea.Tick(messageTTL, func(time.Time) tea.Msg {
		return clearMessageMsg{seq: seq}
	})
}
