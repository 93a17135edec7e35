// Package reconcile compares the ranked leaderboard with the roster.
package reconcile

import (
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/ranking"
)

// Outcome is what the roster comparison yields for one period.
type Outcome struct {
	Missed  []string
	Notable model.Notable
}

// Reconcile computes the missed names and the period highlight.
func Reconcile(ranked []model.Entry, activeRoster []string, mode model.Mode, opts ...ranking.Option) Outcome {
	return Outcome{
		Missed:  Missed(ranked, activeRoster, ranking.NewNameOrder(opts...)),
		Notable: Notable(ranked, mode),
	}
}

// Missed returns the distinct active roster names absent from ranked,
// sorted with order. The result is never nil.
func Missed(ranked []model.Entry, activeRoster []string, order *ranking.NameOrder) []string {
	present := make(map[string]struct{}, len(ranked))
	for _, e := range ranked {
		present[e.Name] = struct{}{}
	}

	missed := make([]string, 0, len(activeRoster))
	seen := make(map[string]struct{}, len(activeRoster))
	for _, name := range activeRoster {
		if _, ok := present[name]; ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		missed = append(missed, name)
	}

	if order == nil {
		order = ranking.NewNameOrder()
	}
	order.Sort(missed)
	return missed
}

// Notable picks the period highlight. The pre-aggregated shape reports
// every entry that finished a book this week, in rank order. The computed
// shape reports the single most recent finish, or nothing.
func Notable(ranked []model.Entry, mode model.Mode) model.Notable {
	n := model.Notable{Mode: mode}

	if mode != model.ModeComputed {
		n.Finishers = make([]string, 0)
		for _, e := range ranked {
			if e.BooksFinishedWeek > 0 {
				n.Finishers = append(n.Finishers, e.Name)
			}
		}
		return n
	}

	var latest *model.Entry
	for i := range ranked {
		e := &ranked[i]
		if !e.Finished {
			continue
		}
		// Strictly after: among equal timestamps the higher-ranked entry stays.
		if latest == nil || e.SubmittedAt.After(latest.SubmittedAt) {
			latest = e
		}
	}
	if latest != nil {
		n.Latest = &model.Finish{
			Name:   latest.Name,
			Detail: latest.BookTitle,
			At:     latest.SubmittedAt,
		}
	}
	return n
}
