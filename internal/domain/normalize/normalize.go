// Package normalize turns loosely formatted spreadsheet cells into typed
// values. Every function here is total: bad input yields a zero value,
// never an error, so one malformed row cannot abort a computation.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/okian/arena/internal/domain/model"
)

// maxSafeInt bounds coerced integers to the range a JSON number can carry
// without losing precision.
const maxSafeInt = 1<<53 - 1

var truthy = map[string]struct{}{
	"true": {},
	"1":    {},
	"yes":  {},
	"y":    {},
	"iya":  {},
}

// timestampLayouts lists the formats spreadsheet exports use for the
// submission timestamp, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006/01/02 15:04:05",
	"2006-01-02",
}

// Int coerces a numeric cell. The first comma is read as a decimal point,
// every character other than a digit, '.' or '-' is dropped and the
// remainder is floored. Anything unparseable is 0.
//
// "1,200" therefore reads as 1.2 and floors to 1; thousands separators
// are not recognized.
func Int(s string) int {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' {
			b.WriteByte(c)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Floor(f)
	switch {
	case f > maxSafeInt:
		return maxSafeInt
	case f < -maxSafeInt:
		return -maxSafeInt
	}
	return int(f)
}

// Bool reports whether s is one of the accepted truthy spellings
// (true, 1, yes, y, iya), ignoring case and surrounding space.
func Bool(s string) bool {
	_, ok := truthy[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Name trims a person name. Identity is the trimmed display name; casing
// and inner whitespace are preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Text trims a free-form cell.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// Timestamp parses a submission timestamp. Unparseable input yields the
// zero time so it never wins a latest-submission comparison.
func Timestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Activity normalizes one activity row for the given sheet shape. In the
// pre-aggregated shape the sheet's weekly_score is carried as-is; in the
// computed shape the score is left for the scorer and every row counts
// as a submission.
func Activity(row model.Row, mode model.Mode) model.Player {
	p := model.Player{
		Name: Name(row.Get(model.ColEmployeeName)),
	}

	if mode == model.ModeComputed {
		p.Submitted = true
		p.Pages = Int(row.Get(model.ColPagesRead))
		p.Period = Text(row.Get(model.ColWeek))
		p.Status = Text(row.Get(model.ColStatus))
		p.BookTitle = Text(row.Get(model.ColBookTitle))
		p.SubmittedAt = Timestamp(row.Get(model.ColTimestamp))
		return p
	}

	p.Submitted = Bool(row.Get(model.ColSubmitted))
	p.Pages = Int(row.Get(model.ColPagesAdded))
	p.FinishBonus = Int(row.Get(model.ColFinishBonus))
	p.StreakBonus = Int(row.Get(model.ColStreakBonus))
	p.WeeklyScore = Int(row.Get(model.ColWeeklyScore))
	p.BooksFinishedWeek = Int(row.Get(model.ColBooksFinishedWeek))
	p.FinishedTotal = Int(row.Get(model.ColFinishedTotal))
	p.SheetRank = Int(row.Get(model.ColRank))
	return p
}

// Roster normalizes one roster row.
func Roster(row model.Row) model.Member {
	return model.Member{
		Name:   Name(row.Get(model.ColEmployeeName)),
		Active: Bool(row.Get(model.ColActive)),
	}
}
