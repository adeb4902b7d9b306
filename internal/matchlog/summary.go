package matchlog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/runnerr0/diary/internal/stats"
)

// Summary aggregates a set of matches.
type Summary struct {
	Played        int
	Wins          int
	Losses        int
	Draws         int
	WinRate       float64
	ScoredFor     int
	ScoredAgainst int
	Opponents     []stats.Count[string]
	Leaderboard   []Player
}

// Summarize computes the record and the MVP leaderboard. Players without
// an MVP are left off the board.
func Summarize(matches []Match, players []Player) Summary {
	sum := Summary{Played: len(matches)}
	opponents := make([]string, 0, len(matches))
	for _, m := range matches {
		switch m.Outcome() {
		case Win:
			sum.Wins++
		case Loss:
			sum.Losses++
		default:
			sum.Draws++
		}
		sum.ScoredFor += m.OurScore
		sum.ScoredAgainst += m.TheirScore
		opponents = append(opponents, strings.TrimSpace(m.Opponent))
	}
	sum.WinRate = stats.Ratio(sum.Wins, sum.Played)
	sum.Opponents = stats.Frequency(opponents)
	sum.Leaderboard = Leaderboard(players)
	return sum
}

// Leaderboard orders players by MVP count, then by name.
func Leaderboard(players []Player) []Player {
	board := make([]Player, 0, len(players))
	for _, p := range players {
		if p.MVPCount > 0 {
			board = append(board, p.Clone())
		}
	}
	slices.SortStableFunc(board, func(a, b Player) int {
		if c := cmp.Compare(b.MVPCount, a.MVPCount); c != 0 {
			return c
		}
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return board
}
