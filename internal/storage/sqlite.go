package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultNamespace is used for local play.
const DefaultNamespace = "local"

// Store manages the SQLite database holding every player's saved slices
// and finished games.
type Store struct {
	db *sql.DB
}

// GameRecord is a finished game.
type GameRecord struct {
	ID        string
	Namespace string
	Score     int
	Won       bool
	MaxTile   int
	Moves     int
	Duration  int // seconds
	CreatedAt time.Time
}

// Summary aggregates a namespace's finished games.
type Summary struct {
	Namespace  string
	GamesCount int
	HighScore  int
	AvgScore   float64
	Wins       int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// The SSH server shares one Store across sessions.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (namespace, key)
		);

		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			namespace TEXT NOT NULL,
			score INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			max_tile INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_namespace ON games(namespace);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(namespace, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Namespace returns a KV view scoped to one player.
func (s *Store) Namespace(ns string) KV {
	if ns == "" {
		ns = DefaultNamespace
	}
	return &nsKV{store: s, ns: ns}
}

type nsKV struct {
	store *Store
	ns    string
}

func (n *nsKV) Get(key string) ([]byte, error) {
	var value []byte
	err := n.store.db.QueryRow(
		"SELECT value FROM kv WHERE namespace = ? AND key = ?",
		n.ns, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return value, nil
}

func (n *nsKV) Set(key string, value []byte) error {
	_, err := n.store.db.Exec(
		`INSERT INTO kv (namespace, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		n.ns, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// SaveGame records a finished game and returns its generated ID.
func (s *Store) SaveGame(rec GameRecord) (string, error) {
	if rec.Namespace == "" {
		rec.Namespace = DefaultNamespace
	}
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO games (id, namespace, score, won, max_tile, moves, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, rec.Namespace, rec.Score, rec.Won, rec.MaxTile, rec.Moves, rec.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}
	return id, nil
}

// TopGames retrieves the best N games for a namespace, highest score first.
// An empty namespace lists every player.
func (s *Store) TopGames(ns string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, namespace, score, won, max_tile, moves, duration_secs, created_at
		 FROM games`
	args := []any{}
	if ns != "" {
		query += " WHERE namespace = ?"
		args = append(args, ns)
	}
	query += " ORDER BY score DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var r GameRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Namespace, &r.Score, &r.Won, &r.MaxTile, &r.Moves, &r.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Summarize aggregates finished games for a namespace.
func (s *Store) Summarize(ns string) (*Summary, error) {
	sum := &Summary{Namespace: ns}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(won), 0), MAX(created_at)
		 FROM games WHERE namespace = ?`,
		ns,
	).Scan(&sum.GamesCount, &sum.HighScore, &sum.AvgScore, &sum.Wins, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarize games: %w", err)
	}
	sum.LastPlayed = parseTime(lastPlayed)

	return sum, nil
}

// ClearGames deletes every finished game for a namespace.
func (s *Store) ClearGames(ns string) error {
	_, err := s.db.Exec("DELETE FROM games WHERE namespace = ?", ns)
	if err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
