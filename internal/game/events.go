package game

import "github.com/vovakirdan/tui-2048plus/internal/powerup"

// EventType identifies what changed.
type EventType int

const (
	EventGridChanged EventType = iota
	EventScoreChanged
	EventInventoryChanged
	EventMerge
	EventWin
	EventTerminal
	EventThemeUnlocked
	EventThemeChanged
	EventAchievementUnlocked
	EventRewardGranted
	EventLockExpired
	EventSelectionChanged
	EventConfirmNewGame
	EventMessage
)

var eventNames = map[EventType]string{
	EventGridChanged:         "grid_changed",
	EventScoreChanged:        "score_changed",
	EventInventoryChanged:    "inventory_changed",
	EventMerge:               "merge",
	EventWin:                 "win",
	EventTerminal:            "terminal",
	EventThemeUnlocked:       "theme_unlocked",
	EventThemeChanged:        "theme_changed",
	EventAchievementUnlocked: "achievement_unlocked",
	EventRewardGranted:       "reward_granted",
	EventLockExpired:         "lock_expired",
	EventSelectionChanged:    "selection_changed",
	EventConfirmNewGame:      "confirm_new_game",
	EventMessage:             "message",
}

// String returns the event name.
func (t EventType) String() string {
	if s, ok := eventNames[t]; ok {
		return s
	}
	return "unknown"
}

// Level grades a message.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Event is a notification for presenters. Only the fields relevant to Type
// are set.
type Event struct {
	Type    EventType
	Row     int
	Col     int
	Value   int
	ID      string
	Name    string
	Kind    powerup.Kind
	Grants  map[powerup.Kind]int
	Message string
	Level   Level
}

// Sink receives engine events. The engine never waits on a response.
type Sink interface {
	Notify(Event)
}

// Recorder is a Sink that keeps every event. Handy in tests and replays.
type Recorder struct {
	Events []Event
}

// Notify appends e.
func (r *Recorder) Notify(e Event) {
	r.Events = append(r.Events, e)
}

// Of returns the recorded events of type t.
func (r *Recorder) Of(t EventType) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}
