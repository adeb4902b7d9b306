// Package matchlog keeps a match history and the player roster whose MVP
// counters follow it.
package matchlog

import (
	"time"
)

// Snapshot keys.
const (
	MatchesKey = "matches"
	PlayersKey = "players"
)

// Outcome is the result of a match from our side.
type Outcome string

const (
	Win  Outcome = "win"
	Loss Outcome = "loss"
	Draw Outcome = "draw"
)

// Match is one played game.
type Match struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	PlayedAt   time.Time `json:"played_at"`
	Opponent   string    `json:"opponent"`
	OurScore   int       `json:"our_score"`
	TheirScore int       `json:"their_score"`
	MVP        string    `json:"mvp,omitempty"`
	Tournament string    `json:"tournament,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// RecordID returns the match id.
func (m Match) RecordID() string { return m.ID }

// Stamp fills unset ID and CreatedAt. PlayedAt defaults to CreatedAt.
func (m Match) Stamp(id string, at time.Time) Match {
	if m.ID == "" {
		m.ID = id
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = at
	}
	if m.PlayedAt.IsZero() {
		m.PlayedAt = m.CreatedAt
	}
	return m
}

// Clone returns m; Match holds no references.
func (m Match) Clone() Match { return m }

// Outcome derives win, loss or draw from the score.
func (m Match) Outcome() Outcome {
	switch {
	case m.OurScore > m.TheirScore:
		return Win
	case m.OurScore < m.TheirScore:
		return Loss
	default:
		return Draw
	}
}

// Margin is the absolute score difference.
func (m Match) Margin() int {
	d := m.OurScore - m.TheirScore
	if d < 0 {
		return -d
	}
	return d
}

func (m Match) searchFields() []string {
	return []string{m.Opponent, m.MVP, m.Tournament, m.Notes}
}

// Player is a roster entry with its MVP tally.
type Player struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Name      string     `json:"name"`
	MVPCount  int        `json:"mvp_count"`
	LastMVPAt *time.Time `json:"last_mvp_at,omitempty"`
}

// RecordID returns the player id.
func (p Player) RecordID() string { return p.ID }

// Stamp fills ID and CreatedAt when they are unset.
func (p Player) Stamp(id string, at time.Time) Player {
	if p.ID == "" {
		p.ID = id
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = at
	}
	return p
}

// Clone copies LastMVPAt.
func (p Player) Clone() Player {
	if p.LastMVPAt != nil {
		t := *p.LastMVPAt
		p.LastMVPAt = &t
	}
	return p
}
