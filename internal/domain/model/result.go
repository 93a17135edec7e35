package model

import (
	"encoding/json"
	"time"
)

// NoPeriod labels results computed without period filtering.
const NoPeriod = "CURRENT"

// Totals summarizes roster coverage for one period.
type Totals struct {
	TotalRoster int `json:"totalRoster"`
	Submitted   int `json:"submitted"`
	Missed      int `json:"missed"`
}

// Finish is the most recent completed book in the computed shape.
type Finish struct {
	Name   string    `json:"name"`
	Detail string    `json:"detail"`
	At     time.Time `json:"at"`
}

// Notable holds the per-period highlight. Its JSON form depends on the
// mode: a list of names for the pre-aggregated shape, a single finish
// object (or null) for the computed shape.
type Notable struct {
	Mode      Mode
	Finishers []string
	Latest    *Finish
}

// MarshalJSON implements json.Marshaler.
func (n Notable) MarshalJSON() ([]byte, error) {
	if n.Mode == ModeComputed {
		return json.Marshal(n.Latest)
	}
	names := n.Finishers
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

// Result is the leaderboard payload for one request.
type Result struct {
	Period      string    `json:"period"`
	Mode        Mode      `json:"mode"`
	GeneratedAt time.Time `json:"generatedAt"`
	Totals      Totals    `json:"totals"`
	Leaderboard []Entry   `json:"leaderboard"`
	Missed      []string  `json:"missed"`
	Notable     Notable   `json:"notable"`
}
