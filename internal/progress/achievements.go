package progress

import (
	"maps"
	"time"

	"github.com/vovakirdan/tui-2048plus/internal/config"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
)

// GameStats are the per-game counters achievements look at.
type GameStats struct {
	Moves        int                  `json:"moves"`
	PowerupsUsed int                  `json:"powerupsUsed"`
	Used         map[powerup.Kind]int `json:"used"`
	StartedAt    time.Time            `json:"startedAt"`
	Elapsed      time.Duration        `json:"elapsed"` // play time as of the last save
}

// NewGameStats starts counters for a game beginning at now.
func NewGameStats(now time.Time) GameStats {
	return GameStats{Used: make(map[powerup.Kind]int), StartedAt: now}
}

// RecordUse counts one completed power-up use.
func (g *GameStats) RecordUse(k powerup.Kind) {
	if g.Used == nil {
		g.Used = make(map[powerup.Kind]int)
	}
	g.PowerupsUsed++
	g.Used[k]++
}

// UsedKind reports whether k was used this game.
func (g GameStats) UsedKind(k powerup.Kind) bool {
	return g.Used[k] > 0
}

// Facts is the state an achievement predicate is evaluated against.
type Facts struct {
	MaxTile   int
	Game      GameStats
	Inventory powerup.Inventory
}

// AchievementBook holds unlocked achievements and lifetime usage counters.
type AchievementBook struct {
	Unlocked map[string]bool      `json:"unlocked"`
	Lifetime map[powerup.Kind]int `json:"lifetimeUsage"`
}

// NewAchievementBook returns an empty book.
func NewAchievementBook() AchievementBook {
	return AchievementBook{
		Unlocked: make(map[string]bool),
		Lifetime: make(map[powerup.Kind]int),
	}
}

// Clone returns a deep copy.
func (b AchievementBook) Clone() AchievementBook {
	c := NewAchievementBook()
	maps.Copy(c.Unlocked, b.Unlocked)
	maps.Copy(c.Lifetime, b.Lifetime)
	return c
}

// RecordUse counts one completed use of k across all games.
func (b *AchievementBook) RecordUse(k powerup.Kind) {
	if b.Lifetime == nil {
		b.Lifetime = make(map[powerup.Kind]int)
	}
	b.Lifetime[k]++
}

// Evaluate unlocks every achievement whose requirement holds and returns
// the newly unlocked ones in definition order.
func (b *AchievementBook) Evaluate(defs []config.Achievement, f Facts) []config.Achievement {
	if b.Unlocked == nil {
		b.Unlocked = make(map[string]bool)
	}
	var unlocked []config.Achievement
	for _, a := range defs {
		if b.Unlocked[a.ID] || !b.satisfied(a.Requirement, f) {
			continue
		}
		b.Unlocked[a.ID] = true
		unlocked = append(unlocked, a)
	}
	return unlocked
}

func (b *AchievementBook) satisfied(req config.Requirement, f Facts) bool {
	switch req.Type {
	case config.ReqMoves:
		return f.MaxTile >= req.Target && f.Game.Moves < req.MaxMoves
	case config.ReqPowerups:
		return f.MaxTile >= req.Target && f.Game.PowerupsUsed <= req.MaxPowerups
	case config.ReqNoPowerup:
		return f.MaxTile >= req.Target && !f.Game.UsedKind(req.Powerup)
	case config.ReqPowerupCount:
		return b.Lifetime[req.Powerup] >= req.Count
	case config.ReqHoarder:
		return f.Inventory != nil && f.Inventory.AtLeast(req.MinEach)
	}
	return false
}

// Count returns how many of defs are unlocked.
func (b AchievementBook) Count(defs []config.Achievement) int {
	n := 0
	for _, a := range defs {
		if b.Unlocked[a.ID] {
			n++
		}
	}
	return n
}
