package persist

import (
	"fmt"

	"github.com/vovakirdan/tui-2048plus/internal/grid"
	"github.com/vovakirdan/tui-2048plus/internal/history"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
	"github.com/vovakirdan/tui-2048plus/internal/progress"
	"github.com/vovakirdan/tui-2048plus/internal/storage"
)

// GameState is the saved in-progress game.
type GameState struct {
	Grid        grid.Grid          `json:"grid"`
	Score       int                `json:"score"`
	Powerups    powerup.Inventory  `json:"powerups"`
	LockedTiles powerup.Locks      `json:"lockedTiles"`
	History     []history.Snapshot `json:"history"`
	Over        bool               `json:"gameOver"`
	Won         bool               `json:"won"`
	Recorded    bool               `json:"recorded"`
	Stats       progress.GameStats `json:"stats"`
}

// Sound holds the audio preferences.
type Sound struct {
	Enabled bool    `json:"enabled"`
	Volume  float64 `json:"volume"`
}

// DefaultSound is used until the player changes anything.
var DefaultSound = Sound{Enabled: true, Volume: 0.3}

// BestScore returns the saved best score, or 0.
func (s *Store) BestScore() int {
	v, _ := load(s, storage.KeyBestScore, func(v *int) error {
		if *v < 0 {
			return fmt.Errorf("negative best score %d", *v)
		}
		return nil
	})
	return v
}

// SaveBestScore stores the best score.
func (s *Store) SaveBestScore(score int) error {
	return s.save(storage.KeyBestScore, score)
}

// Game returns the saved game, if any.
func (s *Store) Game() (GameState, bool) {
	return load(s, storage.KeyGameState, checkGame)
}

// SaveGame stores the current game.
func (s *Store) SaveGame(gs GameState) error {
	return s.save(storage.KeyGameState, gs)
}

// Themes returns the saved theme book, or a fresh one.
func (s *Store) Themes() progress.ThemeBook {
	b, ok := load(s, storage.KeyThemes, func(b *progress.ThemeBook) error {
		if b.Current == "" {
			return fmt.Errorf("missing current theme")
		}
		return nil
	})
	if !ok {
		return progress.NewThemeBook()
	}
	return b
}

// SaveThemes stores the theme book.
func (s *Store) SaveThemes(b progress.ThemeBook) error {
	return s.save(storage.KeyThemes, b)
}

// Achievements returns the saved achievement book, or an empty one.
func (s *Store) Achievements() progress.AchievementBook {
	b, ok := load[progress.AchievementBook](s, storage.KeyAchievements, nil)
	if !ok {
		return progress.NewAchievementBook()
	}
	fresh := progress.NewAchievementBook()
	for id, on := range b.Unlocked {
		fresh.Unlocked[id] = on
	}
	for k, n := range b.Lifetime {
		if n > 0 {
			fresh.Lifetime[k] = n
		}
	}
	return fresh
}

// SaveAchievements stores the achievement book.
func (s *Store) SaveAchievements(b progress.AchievementBook) error {
	return s.save(storage.KeyAchievements, b)
}

// Statistics returns the saved statistics, or zero values.
func (s *Store) Statistics() progress.Statistics {
	st, _ := load(s, storage.KeyStatistics, func(st *progress.Statistics) error {
		if st.GamesPlayed < 0 || st.GamesWon < 0 || st.GamesWon > st.GamesPlayed {
			return fmt.Errorf("games played/won %d/%d", st.GamesPlayed, st.GamesWon)
		}
		st.Derive()
		return nil
	})
	return st
}

// SaveStatistics stores the statistics.
func (s *Store) SaveStatistics(st progress.Statistics) error {
	return s.save(storage.KeyStatistics, st)
}

// GridSize returns the saved board size.
func (s *Store) GridSize() (int, bool) {
	return load(s, storage.KeyGridSize, func(n *int) error {
		if *n < grid.MinSize || *n > grid.MaxSize {
			return fmt.Errorf("grid size %d out of range", *n)
		}
		return nil
	})
}

// SaveGridSize stores the board size.
func (s *Store) SaveGridSize(n int) error {
	return s.save(storage.KeyGridSize, n)
}

// Sound returns the saved sound settings, or DefaultSound.
func (s *Store) Sound() Sound {
	v, ok := load(s, storage.KeySoundSettings, func(v *Sound) error {
		if v.Volume < 0 || v.Volume > 1 {
			return fmt.Errorf("volume %v outside 0..1", v.Volume)
		}
		return nil
	})
	if !ok {
		return DefaultSound
	}
	return v
}

// SaveSound stores the sound settings.
func (s *Store) SaveSound(v Sound) error {
	return s.save(storage.KeySoundSettings, v)
}

func checkGame(gs *GameState) error {
	if err := gs.Grid.Check(); err != nil {
		return err
	}
	n := gs.Grid.Size()
	if gs.Score < 0 {
		return fmt.Errorf("negative score %d", gs.Score)
	}
	for k, c := range gs.Powerups {
		if _, err := powerup.ParseKind(string(k)); err != nil {
			return err
		}
		if c < 0 {
			return fmt.Errorf("negative %s count", k)
		}
	}
	gs.Powerups = powerup.NewInventory(gs.Powerups)

	for _, l := range gs.LockedTiles {
		if !gs.Grid.InBounds(l.Row, l.Col) {
			return fmt.Errorf("lock at (%d,%d) outside %dx%d board", l.Row, l.Col, n, n)
		}
	}
	gs.LockedTiles = gs.LockedTiles.Dedupe()

	for i, h := range gs.History {
		if err := h.Grid.Check(); err != nil {
			return fmt.Errorf("history %d: %w", i, err)
		}
		if h.Grid.Size() != n {
			return fmt.Errorf("history %d: size %d, board is %d", i, h.Grid.Size(), n)
		}
		gs.History[i].Inventory = powerup.NewInventory(h.Inventory)
	}
	if gs.Stats.Used == nil {
		gs.Stats.Used = make(map[powerup.Kind]int)
	}
	return nil
}
