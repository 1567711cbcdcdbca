package game

import "errors"

// ErrInvalidAction is wrapped by every rejected player action. Rejections
// never change state.
var ErrInvalidAction = errors.New("invalid action")

// ActionError describes a rejected action.
type ActionError struct {
	Op     string
	Reason string
}

func (e *ActionError) Error() string {
	return e.Op + ": " + e.Reason
}

// Unwrap makes errors.Is(err, ErrInvalidAction) hold.
func (e *ActionError) Unwrap() error {
	return ErrInvalidAction
}

// reject builds an ActionError and reports it to the sink as a message.
func (e *Engine) reject(op, reason string) error {
	err := &ActionError{Op: op, Reason: reason}
	e.logger.Debug("rejected", "op", op, "reason", reason)
	e.emit(Event{Type: EventMessage, Message: reason, Level: LevelError})
	return err
}
