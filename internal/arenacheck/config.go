package arenacheck

import (
	"time"

	"github.com/okian/arena/internal/domain/model"
)

// FixtureConfig controls the generated sheets.
type FixtureConfig struct {
	Mode        model.Mode // sheet shape to generate
	Players     int        // active roster size
	Inactive    int        // extra roster members marked inactive
	MissedRatio float64    // share of active members without a submission
	Period      string     // period id written into computed rows
	Addr        string     // listen address for Serve
}

// VerifyConfig controls a verification run against a live service.
type VerifyConfig struct {
	BaseURL  string
	Week     string
	Timeout  time.Duration
	Language string // collation used to check the missed order
	Expect   *Expectation
}

// Expectation is what a correct service reports for a generated fixture.
type Expectation struct {
	Mode      model.Mode
	Roster    int
	Submitted int
	Missed    []string
}

// Result is the subset of the /api/arena payload the checks read.
type Result struct {
	Period string `json:"period"`
	Mode   string `json:"mode"`
	Totals struct {
		TotalRoster int `json:"totalRoster"`
		Submitted   int `json:"submitted"`
		Missed      int `json:"missed"`
	} `json:"totals"`
	Leaderboard []Entry  `json:"leaderboard"`
	Missed      []string `json:"missed"`
}

// Entry is one leaderboard row as served.
type Entry struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	WeeklyScore int    `json:"weeklyScore"`
}
