// Package persist reads and writes each piece of saved state as its own JSON
// document over a storage.KV. Every slice loads independently: a malformed
// document is logged and treated as absent without touching the others.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048plus/internal/storage"
)

// ErrCorrupt marks a stored document that cannot be used.
var ErrCorrupt = errors.New("persist: corrupt data")

// Store is the typed persistence layer.
type Store struct {
	kv     storage.KV
	logger *log.Logger
}

// New wraps kv. A nil logger discards output.
func New(kv storage.KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{kv: kv, logger: logger}
}

// decode unmarshals data into v and runs check on it.
func decode[T any](data []byte, check func(*T) error) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if check != nil {
		if err := check(&v); err != nil {
			return v, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	return v, nil
}

// load reads key and reports whether a usable value was found. Read errors
// and corrupt documents are logged and behave like an absent key.
func load[T any](s *Store, key string, check func(*T) error) (T, bool) {
	var zero T
	data, err := s.kv.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return zero, false
	}
	if err != nil {
		s.logger.Warn("cannot read saved state", "key", key, "error", err)
		return zero, false
	}
	if string(data) == "null" {
		return zero, false
	}

	v, err := decode(data, check)
	if err != nil {
		s.logger.Warn("discarding corrupt slice", "key", key, "error", err)
		return zero, false
	}
	return v, true
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("persist: cannot encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, data); err != nil {
		return fmt.Errorf("persist: cannot save %s: %w", key, err)
	}
	s.logger.Debug("saved", "key", key, "bytes", len(data))
	return nil
}
