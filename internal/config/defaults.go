package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-2048plus/internal/powerup"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultRules returns the built-in rule set. It mirrors defaults/rules.yaml.
func DefaultRules() Rules {
	return Rules{
		GridSize:           4,
		GridSizes:          []int{3, 4, 5, 6},
		InitialTiles:       2,
		InitialTilesBySize: map[int]int{5: 3},
		HistoryLimit:       10,
		SpawnFourChance:    0.1,
		WinTile:            2048,
		LockMoves:          3,
		StartingInventory: map[powerup.Kind]int{
			powerup.Undo:    3,
			powerup.Shuffle: 2,
			powerup.Remove:  2,
			powerup.Swap:    0,
			powerup.Lock:    0,
			powerup.Double:  0,
		},
		Rewards: []Reward{
			{Tile: 32, Grants: map[powerup.Kind]int{powerup.Swap: 1}},
			{Tile: 64, Grants: map[powerup.Kind]int{powerup.Lock: 1}},
			{Tile: 128, Grants: map[powerup.Kind]int{powerup.Undo: 1}},
			{Tile: 256, Grants: map[powerup.Kind]int{powerup.Shuffle: 1}},
			{Tile: 512, Grants: map[powerup.Kind]int{powerup.Remove: 1}},
			{Tile: 1024, Grants: map[powerup.Kind]int{powerup.Double: 1}},
			{Tile: 2048, Grants: map[powerup.Kind]int{powerup.Undo: 1, powerup.Shuffle: 1}},
			{Tile: 4096, Grants: map[powerup.Kind]int{powerup.Remove: 1, powerup.Double: 1}},
		},
		Themes: []Theme{
			{ID: "default", Name: "Dark Mode", Description: "Classic dark theme"},
			{ID: "cyberpunk", Name: "Neon Cyberpunk", Description: "Pink/cyan neon aesthetic", UnlockAt: 1024},
			{ID: "vaporwave", Name: "Vaporwave", Description: "Purple/pink retro vibes", UnlockAt: 2048},
			{ID: "matrix", Name: "Matrix", Description: "Green terminal hacker mode", UnlockAt: 4096},
		},
		Achievements: []Achievement{
			{
				ID: "speedDemon", Name: "Speed Demon", Description: "Reach 2048 in under 150 moves", Icon: "⚡",
				Requirement: Requirement{Type: ReqMoves, Target: 2048, MaxMoves: 150},
			},
			{
				ID: "minimalist", Name: "Minimalist", Description: "Reach 2048 using 5 or fewer power-ups", Icon: "◎",
				Requirement: Requirement{Type: ReqPowerups, Target: 2048, MaxPowerups: 5},
			},
			{
				ID: "noUndo", Name: "No Undo", Description: "Reach 2048 without using undo", Icon: "⊘",
				Requirement: Requirement{Type: ReqNoPowerup, Target: 2048, Powerup: powerup.Undo},
			},
			{
				ID: "lockMaster", Name: "Lock Master", Description: "Use lock 10 times", Icon: "▣",
				Requirement: Requirement{Type: ReqPowerupCount, Powerup: powerup.Lock, Count: 10},
			},
			{
				ID: "swapExpert", Name: "Swap Expert", Description: "Use swap 25 times", Icon: "⇄",
				Requirement: Requirement{Type: ReqPowerupCount, Powerup: powerup.Swap, Count: 25},
			},
			{
				ID: "hoarder", Name: "Powerup Hoarder", Description: "Have 5+ of every power-up simultaneously", Icon: "$",
				Requirement: Requirement{Type: ReqHoarder, MinEach: 5},
			},
			{
				ID: "perfectGame", Name: "Perfect Game", Description: "Reach 4096 with no tile removals", Icon: "◆",
				Requirement: Requirement{Type: ReqNoPowerup, Target: 4096, Powerup: powerup.Remove},
			},
		},
	}
}
