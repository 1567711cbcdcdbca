// Package powerup models the consumable board actions: their inventory,
// timed tile locks and the target-selection state machine.
package powerup

import (
	"fmt"
	"maps"
)

// Kind identifies a power-up.
type Kind string

const (
	Undo    Kind = "undo"
	Shuffle Kind = "shuffle"
	Remove  Kind = "remove"
	Swap    Kind = "swap"
	Lock    Kind = "lock"
	Double  Kind = "double"
)

// Kinds lists every power-up in display order.
var Kinds = []Kind{Undo, Shuffle, Remove, Swap, Lock, Double}

// ParseKind validates a power-up name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("powerup: unknown kind %q", s)
}

// Targets returns how many tiles must be picked to complete k.
// Zero means the power-up applies immediately.
func (k Kind) Targets() int {
	switch k {
	case Swap:
		return 2
	case Remove, Lock, Double:
		return 1
	default:
		return 0
	}
}

// Refundable reports whether cancelling a selection returns the charge.
// Undo never enters selection, and its charge is never given back.
func (k Kind) Refundable() bool {
	return k != Undo
}

// Inventory maps each kind to its remaining count.
type Inventory map[Kind]int

// NewInventory returns an inventory with every kind present.
func NewInventory(start map[Kind]int) Inventory {
	inv := make(Inventory, len(Kinds))
	for _, k := range Kinds {
		inv[k] = max(start[k], 0)
	}
	return inv
}

// Clone returns a copy.
func (inv Inventory) Clone() Inventory {
	return maps.Clone(inv)
}

// Count returns the remaining count for k.
func (inv Inventory) Count(k Kind) int {
	return inv[k]
}

// Take consumes one unit of k. Reports false when none are left.
func (inv Inventory) Take(k Kind) bool {
	if inv[k] <= 0 {
		return false
	}
	inv[k]--
	return true
}

// Give adds n units of k.
func (inv Inventory) Give(k Kind, n int) {
	if n <= 0 {
		return
	}
	inv[k] += n
}

// AtLeast reports whether every kind has at least n units.
func (inv Inventory) AtLeast(n int) bool {
	for _, k := range Kinds {
		if inv[k] < n {
			return false
		}
	}
	return true
}
