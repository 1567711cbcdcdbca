package progress

import (
	"fmt"
	"math"
	"time"
)

// Statistics are cumulative counters across all games.
type Statistics struct {
	GamesPlayed       int  `json:"totalGamesPlayed"`
	GamesWon          int  `json:"totalGamesWon"`
	TotalScore        int  `json:"totalScore"`
	TotalMoves        int  `json:"totalMoves"`
	TotalTilesMerged  int  `json:"totalTilesMerged"`
	TotalPowerupsUsed int  `json:"totalPowerupsUsed"`
	HighestTile       int  `json:"highestTile"`
	FastestWin        *int `json:"fastestWin,omitempty"` // seconds; nil until the first win
	LongestStreak     int  `json:"longestStreak"`
	CurrentStreak     int  `json:"currentStreak"`
	TotalPlayTime     int  `json:"totalPlayTime"` // seconds
	AverageScore      int  `json:"averageScore"`
	WinRate           int  `json:"winRate"` // percent
}

// GameResult summarises a finished game.
type GameResult struct {
	Won          bool
	Score        int
	Moves        int
	PowerupsUsed int
	MaxTile      int
	Duration     time.Duration
}

// AddMerges counts merged tiles as they happen.
func (s *Statistics) AddMerges(n int) {
	s.TotalTilesMerged += n
}

// Record folds a finished game into the totals.
func (s *Statistics) Record(r GameResult) {
	secs := int(r.Duration / time.Second)

	s.GamesPlayed++
	if r.Won {
		s.GamesWon++
		s.CurrentStreak++
		s.LongestStreak = max(s.LongestStreak, s.CurrentStreak)
		if s.FastestWin == nil || secs < *s.FastestWin {
			s.FastestWin = &secs
		}
	} else {
		s.CurrentStreak = 0
	}

	s.TotalScore += r.Score
	s.TotalMoves += r.Moves
	s.TotalPowerupsUsed += r.PowerupsUsed
	s.TotalPlayTime += secs
	s.HighestTile = max(s.HighestTile, r.MaxTile)

	s.Derive()
}

// Derive recomputes AverageScore and WinRate.
func (s *Statistics) Derive() {
	if s.GamesPlayed == 0 {
		s.AverageScore, s.WinRate = 0, 0
		return
	}
	played := float64(s.GamesPlayed)
	s.AverageScore = int(math.Round(float64(s.TotalScore) / played))
	s.WinRate = int(math.Round(float64(s.GamesWon) / played * 100))
}

// FormatDuration renders seconds as "1h 2m 3s", "2m 3s" or "3s".
func FormatDuration(secs int) string {
	h, m, sec := secs/3600, secs%3600/60, secs%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, sec)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, sec)
	default:
		return fmt.Sprintf("%ds", sec)
	}
}
