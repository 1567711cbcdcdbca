// Package config provides YAML-based rule loading for the game: board sizes,
// starting power-ups, the reward table, themes and achievements.
package config

import "github.com/vovakirdan/tui-2048plus/internal/powerup"

// Rules contains every tunable of a game.
type Rules struct {
	GridSize           int                  `yaml:"grid_size"`
	GridSizes          []int                `yaml:"grid_sizes"`
	InitialTiles       int                  `yaml:"initial_tiles"`
	InitialTilesBySize map[int]int          `yaml:"initial_tiles_by_size"`
	HistoryLimit       int                  `yaml:"history_limit"`
	SpawnFourChance    float64              `yaml:"spawn_four_chance"`
	WinTile            int                  `yaml:"win_tile"`
	LockMoves          int                  `yaml:"lock_moves"`
	StartingInventory  map[powerup.Kind]int `yaml:"starting_inventory"`
	Rewards            []Reward             `yaml:"rewards"`
	Themes             []Theme              `yaml:"themes"`
	Achievements       []Achievement        `yaml:"achievements"`
}

// Reward grants power-ups when a tile of exactly Tile is created.
type Reward struct {
	Tile   int                  `yaml:"tile"`
	Grants map[powerup.Kind]int `yaml:"grants"`
}

// Theme is a colour scheme unlocked by creating a tile of UnlockAt.
// UnlockAt == 0 means always available.
type Theme struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	UnlockAt    int    `yaml:"unlock_at,omitempty"`
}

// Achievement is a one-time unlock guarded by Requirement.
type Achievement struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Icon        string      `yaml:"icon"`
	Requirement Requirement `yaml:"requirement"`
}

// RequirementType selects how a Requirement is evaluated.
type RequirementType string

const (
	// ReqMoves: reach Target within fewer than MaxMoves moves.
	ReqMoves RequirementType = "moves"
	// ReqPowerups: reach Target having used at most MaxPowerups power-ups.
	ReqPowerups RequirementType = "powerups"
	// ReqNoPowerup: reach Target without ever using Powerup this game.
	ReqNoPowerup RequirementType = "no_powerup"
	// ReqPowerupCount: use Powerup Count times across all games.
	ReqPowerupCount RequirementType = "powerup_count"
	// ReqHoarder: hold at least MinEach of every power-up at once.
	ReqHoarder RequirementType = "hoarder"
)

// Requirement describes an achievement predicate.
type Requirement struct {
	Type        RequirementType `yaml:"type"`
	Target      int             `yaml:"target,omitempty"`
	MaxMoves    int             `yaml:"max_moves,omitempty"`
	MaxPowerups int             `yaml:"max_powerups,omitempty"`
	Powerup     powerup.Kind    `yaml:"powerup,omitempty"`
	Count       int             `yaml:"count,omitempty"`
	MinEach     int             `yaml:"min_each,omitempty"`
}

// InitialTilesFor returns how many tiles a new game of the given size starts with.
func (r Rules) InitialTilesFor(size int) int {
	if n, ok := r.InitialTilesBySize[size]; ok {
		return n
	}
	if r.InitialTiles > 0 {
		return r.InitialTiles
	}
	return 2
}

// AllowsSize reports whether size is one of the selectable board sizes.
func (r Rules) AllowsSize(size int) bool {
	for _, s := range r.GridSizes {
		if s == size {
			return true
		}
	}
	return false
}
