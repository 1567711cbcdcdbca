package progress

import (
	"maps"

	"github.com/vovakirdan/tui-2048plus/internal/config"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
)

// RewardTable maps a created tile value to the power-ups it grants.
type RewardTable map[int]map[powerup.Kind]int

// NewRewardTable indexes the configured rewards by tile.
func NewRewardTable(rewards []config.Reward) RewardTable {
	t := make(RewardTable, len(rewards))
	for _, r := range rewards {
		t[r.Tile] = maps.Clone(r.Grants)
	}
	return t
}

// Apply credits inv with the grants for a merge that created value and
// returns what was given. Called once per merge event.
func (t RewardTable) Apply(inv powerup.Inventory, value int) map[powerup.Kind]int {
	grants, ok := t[value]
	if !ok {
		return nil
	}
	given := make(map[powerup.Kind]int, len(grants))
	for _, k := range powerup.Kinds {
		if n := grants[k]; n > 0 {
			inv.Give(k, n)
			given[k] = n
		}
	}
	return given
}
