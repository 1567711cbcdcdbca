package powerup

import (
	"errors"

	"github.com/vovakirdan/tui-2048plus/internal/grid"
)

// State is the selection machine's state.
type State int

const (
	StateIdle State = iota
	StateAwaiting
)

// String returns the state name.
func (s State) String() string {
	if s == StateAwaiting {
		return "awaiting_selection"
	}
	return "idle"
}

var (
	// ErrBusy is returned by Begin while a selection is already in progress.
	ErrBusy = errors.New("powerup: selection already in progress")
	// ErrIdle is returned by Pick and Cancel with no selection in progress.
	ErrIdle = errors.New("powerup: no selection in progress")
	// ErrImmediate is returned by Begin for kinds that take no targets.
	ErrImmediate = errors.New("powerup: kind does not take targets")
	// ErrSameTile is returned when the second swap target repeats the first.
	ErrSameTile = errors.New("powerup: tile already selected")
)

// Selection is the Idle -> AwaitingSelection(kind, partial?) -> Idle machine.
// The zero value is Idle.
type Selection struct {
	kind  Kind
	first *grid.Cell
}

// State returns the current state.
func (s *Selection) State() State {
	if s.kind == "" {
		return StateIdle
	}
	return StateAwaiting
}

// Active reports whether a selection is in progress.
func (s *Selection) Active() bool {
	return s.kind != ""
}

// Kind returns the power-up awaiting targets, or "" when idle.
func (s *Selection) Kind() Kind {
	return s.kind
}

// Partial returns the first swap target once chosen.
func (s *Selection) Partial() (grid.Cell, bool) {
	if s.first == nil {
		return grid.Cell{}, false
	}
	return *s.first, true
}

// Begin enters AwaitingSelection for k.
func (s *Selection) Begin(k Kind) error {
	if s.Active() {
		return ErrBusy
	}
	if k.Targets() == 0 {
		return ErrImmediate
	}
	s.kind = k
	s.first = nil
	return nil
}

// Pick records a target. When the last target is chosen it returns all
// targets and the machine goes back to Idle.
func (s *Selection) Pick(c grid.Cell) ([]grid.Cell, bool, error) {
	if !s.Active() {
		return nil, false, ErrIdle
	}

	if s.kind.Targets() == 2 && s.first == nil {
		s.first = &c
		return nil, false, nil
	}

	targets := []grid.Cell{c}
	if s.first != nil {
		if *s.first == c {
			return nil, false, ErrSameTile
		}
		targets = []grid.Cell{*s.first, c}
	}

	s.reset()
	return targets, true, nil
}

// Cancel abandons the selection and returns the kind that was pending.
func (s *Selection) Cancel() (Kind, error) {
	if !s.Active() {
		return "", ErrIdle
	}
	k := s.kind
	s.reset()
	return k, nil
}

func (s *Selection) reset() {
	s.kind = ""
	s.first = nil
}
