package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette contains all visual styles for one unlockable theme.
type Palette struct {
	// Tile colors, indexed by exponent (2 = 1, 4 = 2, ...).
	Tiles     []lipgloss.Style
	EmptyCell lipgloss.Style
	BoardEdge lipgloss.Color

	// Tile decorations
	Locked   lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style

	// HUD styles
	Title        lipgloss.Style
	HUDLabel     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style

	// Messages
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style

	// Overlay and panel styles
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayText   lipgloss.Style

	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// Tile returns the style for a tile value.
func (p Palette) Tile(value int) lipgloss.Style {
	if value == 0 {
		return p.EmptyCell
	}
	exp := 0
	for v := value; v > 1; v >>= 1 {
		exp++
	}
	if exp >= len(p.Tiles) {
		exp = len(p.Tiles) - 1
	}
	return p.Tiles[exp]
}

func tileStyles(fg string, bgs ...string) []lipgloss.Style {
	styles := make([]lipgloss.Style, 0, len(bgs)+1)
	styles = append(styles, lipgloss.NewStyle())
	for _, bg := range bgs {
		styles = append(styles, lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)).
			Background(lipgloss.Color(bg)).
			Bold(true))
	}
	return styles
}

// DefaultPalette returns the classic beige-and-orange look.
func DefaultPalette() Palette {
	return Palette{
		// 2 .. 8192+
		Tiles: tileStyles("235",
			"230", "223", "215", "209", "203", "196",
			"229", "228", "227", "226", "220", "214", "160"),
		EmptyCell: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		BoardEdge: lipgloss.Color("137"),

		Locked:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		Cursor:   lipgloss.NewStyle().Reverse(true).Bold(true),
		Selected: lipgloss.NewStyle().Underline(true).Bold(true),

		Title:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		HUDLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		OverlayBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).Padding(0, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		OverlayText:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),

		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// CyberpunkPalette returns a neon pink and cyan theme.
func CyberpunkPalette() Palette {
	p := DefaultPalette()
	p.Tiles = tileStyles("16",
		"51", "45", "39", "201", "199", "198",
		"165", "129", "93", "226", "220", "46", "196")
	p.BoardEdge = lipgloss.Color("201")
	p.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true)
	p.HUDValue = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	p.OverlayBorder = p.OverlayBorder.BorderForeground(lipgloss.Color("51"))
	p.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	return p
}

// VaporwavePalette returns a pastel purple theme.
func VaporwavePalette() Palette {
	p := DefaultPalette()
	p.Tiles = tileStyles("54",
		"225", "219", "218", "213", "183", "177",
		"141", "123", "159", "195", "229", "217", "211")
	p.BoardEdge = lipgloss.Color("177")
	p.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true)
	p.HUDValue = lipgloss.NewStyle().Foreground(lipgloss.Color("123")).Bold(true)
	p.OverlayBorder = p.OverlayBorder.BorderForeground(lipgloss.Color("213"))
	p.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true)
	return p
}

// MatrixPalette returns a green-on-black theme.
func MatrixPalette() Palette {
	p := DefaultPalette()
	p.Tiles = tileStyles("16",
		"22", "28", "34", "40", "46", "82",
		"118", "154", "190", "120", "157", "194", "231")
	p.EmptyCell = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	p.BoardEdge = lipgloss.Color("34")
	p.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	p.HUDLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
	p.HUDValue = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	p.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	p.OverlayBorder = p.OverlayBorder.BorderForeground(lipgloss.Color("46"))
	p.OverlayText = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	p.MenuItemNormal = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	p.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("118")).Bold(true)
	return p
}

var palettes = map[string]func() Palette{
	"default":   DefaultPalette,
	"cyberpunk": CyberpunkPalette,
	"vaporwave": VaporwavePalette,
	"matrix":    MatrixPalette,
}

// PaletteFor returns the palette for a theme id, falling back to the default.
func PaletteFor(id string) Palette {
	if f, ok := palettes[id]; ok {
		return f()
	}
	return DefaultPalette()
}
