package config

import (
	"fmt"

	"github.com/vovakirdan/tui-2048plus/internal/grid"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
)

// DefaultThemeID names the theme that is always unlocked.
const DefaultThemeID = "default"

// Validate checks the rule set for values the engine cannot honour.
func (r Rules) Validate() error {
	if len(r.GridSizes) == 0 {
		return fmt.Errorf("config: grid_sizes is empty")
	}
	for _, s := range r.GridSizes {
		if s < grid.MinSize || s > grid.MaxSize {
			return fmt.Errorf("config: grid size %d outside %d..%d", s, grid.MinSize, grid.MaxSize)
		}
	}
	if !r.AllowsSize(r.GridSize) {
		return fmt.Errorf("config: grid_size %d not listed in grid_sizes", r.GridSize)
	}
	if r.HistoryLimit <= 0 {
		return fmt.Errorf("config: history_limit must be positive, got %d", r.HistoryLimit)
	}
	if r.SpawnFourChance < 0 || r.SpawnFourChance > 1 {
		return fmt.Errorf("config: spawn_four_chance %v outside 0..1", r.SpawnFourChance)
	}
	if !grid.IsTile(r.WinTile) {
		return fmt.Errorf("config: win_tile %d is not a power of two", r.WinTile)
	}
	if r.LockMoves <= 0 {
		return fmt.Errorf("config: lock_moves must be positive, got %d", r.LockMoves)
	}
	if err := checkKinds("starting_inventory", r.StartingInventory); err != nil {
		return err
	}

	seenTiles := make(map[int]bool)
	for _, rw := range r.Rewards {
		if !grid.IsTile(rw.Tile) {
			return fmt.Errorf("config: reward tile %d is not a power of two", rw.Tile)
		}
		if seenTiles[rw.Tile] {
			return fmt.Errorf("config: duplicate reward for tile %d", rw.Tile)
		}
		seenTiles[rw.Tile] = true
		if err := checkKinds(fmt.Sprintf("reward %d", rw.Tile), rw.Grants); err != nil {
			return err
		}
	}

	if err := r.validateThemes(); err != nil {
		return err
	}
	return r.validateAchievements()
}

func (r Rules) validateThemes() error {
	seen := make(map[string]bool)
	hasDefault := false
	for _, th := range r.Themes {
		if th.ID == "" {
			return fmt.Errorf("config: theme with empty id")
		}
		if seen[th.ID] {
			return fmt.Errorf("config: duplicate theme %q", th.ID)
		}
		seen[th.ID] = true
		if th.ID == DefaultThemeID {
			hasDefault = true
			if th.UnlockAt != 0 {
				return fmt.Errorf("config: default theme cannot have unlock_at")
			}
			continue
		}
		if !grid.IsTile(th.UnlockAt) {
			return fmt.Errorf("config: theme %q unlock_at %d is not a power of two", th.ID, th.UnlockAt)
		}
	}
	if !hasDefault {
		return fmt.Errorf("config: missing %q theme", DefaultThemeID)
	}
	return nil
}

func (r Rules) validateAchievements() error {
	seen := make(map[string]bool)
	for _, a := range r.Achievements {
		if a.ID == "" {
			return fmt.Errorf("config: achievement with empty id")
		}
		if seen[a.ID] {
			return fmt.Errorf("config: duplicate achievement %q", a.ID)
		}
		seen[a.ID] = true

		req := a.Requirement
		switch req.Type {
		case ReqMoves, ReqPowerups:
			if !grid.IsTile(req.Target) {
				return fmt.Errorf("config: achievement %q target %d is not a power of two", a.ID, req.Target)
			}
		case ReqNoPowerup:
			if !grid.IsTile(req.Target) {
				return fmt.Errorf("config: achievement %q target %d is not a power of two", a.ID, req.Target)
			}
			if _, err := powerup.ParseKind(string(req.Powerup)); err != nil {
				return fmt.Errorf("config: achievement %q: %w", a.ID, err)
			}
		case ReqPowerupCount:
			if _, err := powerup.ParseKind(string(req.Powerup)); err != nil {
				return fmt.Errorf("config: achievement %q: %w", a.ID, err)
			}
			if req.Count <= 0 {
				return fmt.Errorf("config: achievement %q count must be positive", a.ID)
			}
		case ReqHoarder:
			if req.MinEach <= 0 {
				return fmt.Errorf("config: achievement %q min_each must be positive", a.ID)
			}
		default:
			return fmt.Errorf("config: achievement %q has unknown requirement type %q", a.ID, req.Type)
		}
	}
	return nil
}

func checkKinds(where string, m map[powerup.Kind]int) error {
	for k, n := range m {
		if _, err := powerup.ParseKind(string(k)); err != nil {
			return fmt.Errorf("config: %s: %w", where, err)
		}
		if n < 0 {
			return fmt.Errorf("config: %s: negative count for %s", where, k)
		}
	}
	return nil
}
