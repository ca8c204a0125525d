// Package leaderboard talks to the remote score store: it fetches the
// ranking, submits finished games and ranks entries for display.
package leaderboard

import (
	"math"

	"github.com/vovakirdan/stack-top/internal/core"
)

// AnonymousPlayer replaces a missing player name.
const AnonymousPlayer = "anonymous"

// Entry is one leaderboard row, in the order the server returned it.
type Entry struct {
	Player string
	Value  float64
	Info   string // Free text, the elapsed time for this game
}

// Points returns the score as shown on the board.
func (e Entry) Points() int {
	return int(math.Floor(e.Value))
}

// wireEntry is the JSON shape of a leaderboard row. Any field may be null.
type wireEntry struct {
	Value          *float64 `json:"value"`
	Player         *string  `json:"player"`
	AdditionalInfo *string  `json:"additionalInfo"`
}

// entry applies the display defaults: 0, "anonymous" and "".
func (w wireEntry) entry() Entry {
	e := Entry{Player: AnonymousPlayer}
	if w.Value != nil {
		e.Value = *w.Value
	}
	if w.Player != nil && *w.Player != "" {
		e.Player = *w.Player
	}
	if w.AdditionalInfo != nil {
		e.Info = *w.AdditionalInfo
	}
	return e
}

// Score is a finished game to submit.
type Score struct {
	Player string
	Value  int
	Info   string
}

// submitRequest is the JSON body of a score submission.
type submitRequest struct {
	GameID string `json:"gameid"`
	Player string `json:"player"`
	Value  int    `json:"value"`
	Addi   string `json:"addi"`
}

// Medal marks the top three places.
type Medal int

const (
	MedalNone Medal = iota
	MedalGold
	MedalSilver
	MedalBronze
)

// MedalFor returns the medal for a zero-based rank.
func MedalFor(rank int) Medal {
	switch rank {
	case 0:
		return MedalGold
	case 1:
		return MedalSilver
	case 2:
		return MedalBronze
	default:
		return MedalNone
	}
}

// Symbol returns the medal emoji, or "" for MedalNone.
func (m Medal) Symbol() string {
	switch m {
	case MedalGold:
		return "🥇"
	case MedalSilver:
		return "🥈"
	case MedalBronze:
		return "🥉"
	default:
		return ""
	}
}

// Color returns the display color of the medal.
func (m Medal) Color() core.Color {
	switch m {
	case MedalGold:
		return core.ColorGold
	case MedalSilver:
		return core.ColorSilver
	case MedalBronze:
		return core.ColorBronze
	default:
		return core.ColorDefault
	}
}

// RankedEntry is an Entry with its display rank.
type RankedEntry struct {
	Entry
	Rank  int // One-based
	Medal Medal
}

// Rank attaches ranks and medals, keeping the server's order.
func Rank(entries []Entry) []RankedEntry {
	out := make([]RankedEntry, len(entries))
	for i, e := range entries {
		out[i] = RankedEntry{Entry: e, Rank: i + 1, Medal: MedalFor(i)}
	}
	return out
}
