// Package storage provides the key-value backends the game persists into:
// an in-memory store for tests and a SQLite store for real play.
package storage

import (
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("storage: key not found")

// Logical keys used by the persistence layer.
const (
	KeyBestScore     = "bestScore"
	KeyGameState     = "gameState"
	KeyThemes        = "gameThemes"
	KeyAchievements  = "achievements"
	KeyStatistics    = "statistics"
	KeyGridSize      = "gridSize"
	KeySoundSettings = "soundSettings"
)

// KV is a synchronous, last-writer-wins byte store.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Memory is a map-backed KV.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

// Set stores a copy of value.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = slices.Clone(value)
	return nil
}

var _ KV = (*Memory)(nil)
