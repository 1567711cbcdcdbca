package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048plus/internal/game"
	"github.com/vovakirdan/tui-2048plus/internal/grid"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
	"github.com/vovakirdan/tui-2048plus/internal/progress"
)

const (
	cellWidth  = 7
	cellHeight = 3
)

// boardMarks are the per-cell decorations drawn on top of tile colors.
type boardMarks struct {
	cursor  *grid.Cell
	partial *grid.Cell
	locks   powerup.Locks
	compact bool
}

// renderBoard draws the grid as colored tiles inside a rounded border.
func renderBoard(g grid.Grid, marks boardMarks, p Palette) string {
	h := cellHeight
	if marks.compact {
		h = 1
	}

	rows := make([]string, g.Size())
	for r := range g.Size() {
		cells := make([]string, g.Size())
		for c := range g.Size() {
			cells[c] = renderTile(g[r][c], r, c, h, marks, p)
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BoardEdge).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderTile(value, row, col, height int, marks boardMarks, p Palette) string {
	label := "·"
	if value > 0 {
		label = strconv.Itoa(value)
	}
	if marks.locks.Has(row, col) {
		label = "[" + label + "]"
	}

	style := p.Tile(value).
		Width(cellWidth).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	here := grid.Cell{Row: row, Col: col}
	switch {
	case marks.cursor != nil && *marks.cursor == here:
		style = style.Inherit(p.Cursor).Reverse(true)
	case marks.partial != nil && *marks.partial == here:
		style = style.Inherit(p.Selected).Underline(true)
	case marks.locks.Has(row, col):
		style = style.Foreground(p.Locked.GetForeground())
	}
	return style.Render(label)
}

// renderHUD draws the title, score, best score and board info.
func renderHUD(v game.View, p Palette) string {
	sep := p.HUDSeparator.Render(" │ ")
	field := func(label, value string) string {
		return p.HUDLabel.Render(label+" ") + p.HUDValue.Render(value)
	}

	sound := "off"
	if v.Sound.Enabled {
		sound = fmt.Sprintf("%d%%", int(v.Sound.Volume*100))
	}

	return strings.Join([]string{
		p.Title.Render("2048+"),
		field("SCORE", strconv.Itoa(v.Score)),
		field("BEST", strconv.Itoa(v.BestScore)),
		field("MOVES", strconv.Itoa(v.Game.Moves)),
		field("GRID", fmt.Sprintf("%d×%d", v.Grid.Size(), v.Grid.Size())),
		field("♪", sound),
	}, sep)
}

// renderInventory lists power-ups with their hotkeys and counts.
func renderInventory(v game.View, p Palette) string {
	parts := make([]string, 0, len(powerup.Kinds))
	for i, k := range powerup.Kinds {
		n := v.Inventory.Count(k)
		text := fmt.Sprintf("%d %s×%d", i+1, k, n)
		switch {
		case v.Selecting && v.SelectionKind == k:
			parts = append(parts, p.MenuItemActive.Render("▸"+text))
		case n == 0:
			parts = append(parts, p.MenuDescription.Render(text))
		default:
			parts = append(parts, p.MenuItemNormal.Render(text))
		}
	}
	return strings.Join(parts, "  ")
}

// renderMessage draws the transient status line.
func renderMessage(text string, level game.Level, p Palette) string {
	if text == "" {
		return " "
	}
	switch level {
	case game.LevelSuccess:
		return p.Success.Render(text)
	case game.LevelError:
		return p.Error.Render(text)
	default:
		return p.Info.Render(text)
	}
}

// renderOverlay draws a bordered box with a title and body lines.
func renderOverlay(title string, lines []string, p Palette) string {
	var b strings.Builder
	b.WriteString(p.OverlayTitle.Render(title))
	for _, l := range lines {
		b.WriteString("\n")
		b.WriteString(p.OverlayText.Render(l))
	}
	return p.OverlayBorder.Render(b.String())
}

// menuItem is one row of a picker panel.
type menuItem struct {
	label       string
	description string
	disabled    bool
}

// renderMenu draws a vertical picker with the cursor on one row.
func renderMenu(title string, items []menuItem, cursor int, p Palette) string {
	var b strings.Builder
	b.WriteString(p.OverlayTitle.Render(title))
	b.WriteString("\n")
	for i, it := range items {
		b.WriteString("\n")
		prefix := "  "
		style := p.MenuItemNormal
		if it.disabled {
			style = p.MenuDescription
		}
		if i == cursor {
			prefix = "> "
			style = p.MenuItemActive
		}
		b.WriteString(style.Render(prefix + it.label))
		if it.description != "" {
			b.WriteString("  ")
			b.WriteString(p.MenuDescription.Render(it.description))
		}
	}
	return p.OverlayBorder.Render(b.String())
}

func themeItems(v game.View) []menuItem {
	items := make([]menuItem, len(v.Themes))
	for i, th := range v.Themes {
		label := th.Name
		if th.Active {
			label += " ✓"
		}
		desc := th.Description
		if !th.Unlocked {
			desc = fmt.Sprintf("reach %d to unlock", th.UnlockAt)
		}
		items[i] = menuItem{label: label, description: desc, disabled: !th.Unlocked}
	}
	return items
}

func sizeItems(v game.View) []menuItem {
	items := make([]menuItem, len(v.GridSizes))
	for i, n := range v.GridSizes {
		label := fmt.Sprintf("%d×%d", n, n)
		if n == v.Grid.Size() {
			label += " ✓"
		}
		items[i] = menuItem{label: label, description: "starts a new game"}
	}
	return items
}

// renderAchievements lists every achievement with its unlock state.
func renderAchievements(v game.View, p Palette) string {
	unlocked := 0
	lines := make([]string, 0, len(v.Achievements))
	for _, a := range v.Achievements {
		mark, style := "·", p.MenuDescription
		if a.Unlocked {
			unlocked++
			mark, style = a.Icon, p.MenuItemActive
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %-14s", mark, a.Name))+
			"  "+p.MenuDescription.Render(a.Description))
	}
	title := fmt.Sprintf("ACHIEVEMENTS %d/%d", unlocked, len(v.Achievements))
	return renderOverlay(title, lines, p)
}

// statsRows returns label/value pairs for the statistics panel.
func statsRows(s progress.Statistics) []table.Row {
	fastest := "-"
	if s.FastestWin != nil {
		fastest = progress.FormatDuration(*s.FastestWin)
	}
	return []table.Row{
		{"Games played", strconv.Itoa(s.GamesPlayed)},
		{"Games won", strconv.Itoa(s.GamesWon)},
		{"Win rate", fmt.Sprintf("%d%%", s.WinRate)},
		{"Average score", strconv.Itoa(s.AverageScore)},
		{"Highest tile", strconv.Itoa(s.HighestTile)},
		{"Total moves", strconv.Itoa(s.TotalMoves)},
		{"Tiles merged", strconv.Itoa(s.TotalTilesMerged)},
		{"Power-ups used", strconv.Itoa(s.TotalPowerupsUsed)},
		{"Fastest win", fastest},
		{"Current streak", strconv.Itoa(s.CurrentStreak)},
		{"Longest streak", strconv.Itoa(s.LongestStreak)},
		{"Play time", progress.FormatDuration(s.TotalPlayTime)},
	}
}

// renderStats draws the statistics panel as a two-column table.
func renderStats(v game.View, p Palette) string {
	rows := statsRows(v.Stats)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Statistic", Width: 16},
			{Title: "Value", Width: 10},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.BoardEdge).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return renderOverlay("STATISTICS", []string{t.View(), p.MenuDescription.Render("R reset · esc close")}, p)
}

// centerText pads text so it is centered in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
