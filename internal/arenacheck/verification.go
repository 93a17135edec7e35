package arenacheck

import (
	"errors"
	"fmt"

	"github.com/okian/arena/internal/domain/ranking"
)

// Verify checks the rules every served leaderboard must satisfy. order
// is the collation the service sorts missed names with; nil selects the
// root collation. All violations are returned joined.
func Verify(r Result, order *ranking.NameOrder) error {
	if order == nil {
		order = ranking.NewNameOrder()
	}
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...))
	}

	names := make(map[string]struct{}, len(r.Leaderboard))
	for i, e := range r.Leaderboard {
		if e.Rank != i+1 {
			fail("entry %d (%s) has rank %d", i, e.Name, e.Rank)
		}
		if i > 0 && e.WeeklyScore > r.Leaderboard[i-1].WeeklyScore {
			fail("entry %d (%s) outscores the entry above it", i, e.Name)
		}
		names[e.Name] = struct{}{}
	}

	seen := make(map[string]struct{}, len(r.Missed))
	for i, name := range r.Missed {
		if _, ok := names[name]; ok {
			fail("%s is both ranked and missed", name)
		}
		if _, dup := seen[name]; dup {
			fail("%s is listed twice as missed", name)
		}
		seen[name] = struct{}{}
		if i > 0 && order.Compare(r.Missed[i-1], name) > 0 {
			fail("missed list is out of order at %q", name)
		}
	}

	if r.Totals.Submitted != len(r.Leaderboard) {
		fail("totals.submitted=%d but leaderboard has %d entries", r.Totals.Submitted, len(r.Leaderboard))
	}
	if r.Totals.Missed != len(r.Missed) {
		fail("totals.missed=%d but missed has %d names", r.Totals.Missed, len(r.Missed))
	}
	if r.Totals.TotalRoster < r.Totals.Missed {
		fail("totals.totalRoster=%d is smaller than totals.missed=%d", r.Totals.TotalRoster, r.Totals.Missed)
	}
	return errors.Join(errs...)
}

// Compare checks a served result against the facts of a generated fixture.
func Compare(r Result, want Expectation) error {
	var errs []error
	if r.Mode != want.Mode.String() {
		errs = append(errs, fmt.Errorf("%w: mode %s, want %s", ErrInvariant, r.Mode, want.Mode))
	}
	if r.Totals.TotalRoster != want.Roster {
		errs = append(errs, fmt.Errorf("%w: totalRoster %d, want %d", ErrInvariant, r.Totals.TotalRoster, want.Roster))
	}
	if r.Totals.Submitted != want.Submitted {
		errs = append(errs, fmt.Errorf("%w: submitted %d, want %d", ErrInvariant, r.Totals.Submitted, want.Submitted))
	}

	got := make(map[string]struct{}, len(r.Missed))
	for _, name := range r.Missed {
		got[name] = struct{}{}
	}
	if len(got) != len(want.Missed) {
		errs = append(errs, fmt.Errorf("%w: %d missed, want %d", ErrInvariant, len(got), len(want.Missed)))
	}
	for _, name := range want.Missed {
		if _, ok := got[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s should be missed", ErrInvariant, name))
		}
	}
	return errors.Join(errs...)
}
