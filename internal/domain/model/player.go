package model

import (
	"encoding/json"
	"time"
)

// Mode identifies which activity sheet shape a computation runs on.
type Mode int

const (
	// ModePreAggregated reads weekly_score straight from the sheet.
	ModePreAggregated Mode = iota
	// ModeComputed derives the score from per-submission progress rows.
	ModeComputed
)

// String returns the JSON name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePreAggregated:
		return "preAggregated"
	case ModeComputed:
		return "computed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Player is a normalized activity row. It lives for one computation only.
type Player struct {
	Name      string
	Submitted bool

	Pages       int
	FinishBonus int
	StreakBonus int
	WeeklyScore int

	// Pre-aggregated shape only.
	BooksFinishedWeek int
	FinishedTotal     int
	SheetRank         int

	// Computed shape only.
	Period      string
	Status      string
	BookTitle   string
	SubmittedAt time.Time
	// Finished is set by the scorer when Status matches the finished sentinel.
	Finished bool
}

// Entry is a Player with its assigned leaderboard position.
type Entry struct {
	Player
	Rank int
	Mode Mode

	// AvatarURL is display-only and filled by the HTTP layer.
	AvatarURL string
}

type preAggregatedEntry struct {
	Rank              int     `json:"rank"`
	Name              string  `json:"name"`
	WeeklyScore       int     `json:"weeklyScore"`
	Pages             int     `json:"pages"`
	BooksFinishedWeek int     `json:"booksFinishedWeek"`
	FinishedTotal     int     `json:"finishedTotal"`
	FinishBonus       int     `json:"finishBonus"`
	StreakBonus       int     `json:"streakBonus"`
	SheetRank         *int    `json:"sheetRank"`
	AvatarURL         *string `json:"avatarUrl"`
}

type computedEntry struct {
	Rank        int        `json:"rank"`
	Name        string     `json:"name"`
	WeeklyScore int        `json:"weeklyScore"`
	Pages       int        `json:"pages"`
	FinishBonus int        `json:"finishBonus"`
	StreakBonus int        `json:"streakBonus"`
	Status      string     `json:"status"`
	BookTitle   string     `json:"bookTitle,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt"`
	AvatarURL   *string    `json:"avatarUrl"`
}

// MarshalJSON renders the fields that the entry's scoring mode carries.
func (e Entry) MarshalJSON() ([]byte, error) {
	var avatar *string
	if e.AvatarURL != "" {
		avatar = &e.AvatarURL
	}

	if e.Mode == ModeComputed {
		var at *time.Time
		if !e.SubmittedAt.IsZero() {
			t := e.SubmittedAt.UTC()
			at = &t
		}
		return json.Marshal(computedEntry{
			Rank:        e.Rank,
			Name:        e.Name,
			WeeklyScore: e.WeeklyScore,
			Pages:       e.Pages,
			FinishBonus: e.FinishBonus,
			StreakBonus: e.StreakBonus,
			Status:      e.Status,
			BookTitle:   e.BookTitle,
			SubmittedAt: at,
			AvatarURL:   avatar,
		})
	}

	var sheetRank *int
	if e.SheetRank != 0 {
		sheetRank = &e.SheetRank
	}
	return json.Marshal(preAggregatedEntry{
		Rank:              e.Rank,
		Name:              e.Name,
		WeeklyScore:       e.WeeklyScore,
		Pages:             e.Pages,
		BooksFinishedWeek: e.BooksFinishedWeek,
		FinishedTotal:     e.FinishedTotal,
		FinishBonus:       e.FinishBonus,
		StreakBonus:       e.StreakBonus,
		SheetRank:         sheetRank,
		AvatarURL:         avatar,
	})
}

// Member is a normalized roster row.
type Member struct {
	Name   string
	Active bool
}
