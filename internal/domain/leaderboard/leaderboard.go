// Package leaderboard runs the full pipeline from two parsed sheets to the
// leaderboard payload. Compute is a pure function of its inputs and clock.
package leaderboard

import (
	"strings"

	"github.com/okian/arena/internal/domain/attendance"
	"github.com/okian/arena/internal/domain/dedupe"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/normalize"
	"github.com/okian/arena/internal/domain/ranking"
	"github.com/okian/arena/internal/domain/reconcile"
	"github.com/okian/arena/internal/domain/scoring"
)

// Stats counts what the pipeline discarded on the way. It never affects
// the result.
type Stats struct {
	ActivityRows int
	RosterRows   int
	// Activity rows without a name or without a submission.
	NotSubmitted int
	// Computed shape rows outside the effective period.
	OutOfPeriod int
	// Computed shape rows replaced by a later submission.
	Superseded int
	// Roster rows without a name or not active, plus duplicate names.
	InactiveRoster int
}

// DroppedActivity is the number of activity rows that did not reach the
// leaderboard.
func (s Stats) DroppedActivity() int {
	return s.NotSubmitted + s.OutOfPeriod + s.Superseded
}

// ResolvePeriod picks the effective period. A requested period is used
// as given once surrounding spaces are trimmed; "CURRENT" and blank mean
// "latest", where the lexicographically greatest period seen in the rows
// wins. An empty return means no period is known.
func ResolvePeriod(requested string, players []model.Player) string {
	requested = strings.TrimSpace(requested)
	if requested != "" && !strings.EqualFold(requested, model.NoPeriod) {
		return requested
	}
	latest := ""
	for _, p := range players {
		if p.Period > latest {
			latest = p.Period
		}
	}
	return latest
}

// Compute builds the leaderboard for period from the activity and roster
// tables. The scoring mode is chosen from the activity header.
func Compute(activity, roster model.Table, period string, opts ...Option) (model.Result, Stats) {
	cfg := newConfig(opts)
	mode := scoring.DetectMode(activity)
	stats := Stats{ActivityRows: activity.Len(), RosterRows: roster.Len()}

	players := make([]model.Player, 0, activity.Len())
	for _, row := range activity.Rows {
		players = append(players, normalize.Activity(row, mode))
	}
	submitted := attendance.Submitted(players)
	stats.NotSubmitted = len(players) - len(submitted)

	label := strings.TrimSpace(period)
	if mode == model.ModeComputed {
		label = ResolvePeriod(period, submitted)
		inPeriod := submitted
		// Without a week column every row is in scope; the period is a label.
		if activity.HasColumn(model.ColWeek) {
			inPeriod = attendance.ForPeriod(submitted, label)
		}
		stats.OutOfPeriod = len(submitted) - len(inPeriod)

		submitted = dedupe.Latest(inPeriod)
		stats.Superseded = len(inPeriod) - len(submitted)
	}
	if label == "" {
		label = model.NoPeriod
	}

	scorer := scoring.NewScorer(mode, cfg.scoring...)
	for i := range submitted {
		submitted[i] = scorer.Score(submitted[i])
	}
	ranked := ranking.Rank(submitted, mode, cfg.ranking...)

	members := make([]model.Member, 0, roster.Len())
	for _, row := range roster.Rows {
		members = append(members, normalize.Roster(row))
	}
	active := attendance.ActiveRoster(members)
	stats.InactiveRoster = len(members) - len(active)

	outcome := reconcile.Reconcile(ranked, active, mode, cfg.ranking...)

	return model.Result{
		Period:      label,
		Mode:        mode,
		GeneratedAt: cfg.now().UTC(),
		Totals: model.Totals{
			TotalRoster: len(active),
			Submitted:   len(ranked),
			Missed:      len(outcome.Missed),
		},
		Leaderboard: ranked,
		Missed:      outcome.Missed,
		Notable:     outcome.Notable,
	}, stats
}
