// Package attendance selects who took part in a period and who was
// expected to.
package attendance

import "github.com/okian/arena/internal/domain/model"

// Submitted returns the players that submitted for the period, keeping
// their order. Rows with an empty name are dropped.
func Submitted(players []model.Player) []model.Player {
	out := make([]model.Player, 0, len(players))
	for _, p := range players {
		if p.Name == "" || !p.Submitted {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ActiveRoster returns the distinct names of active roster members in
// first-seen order. Duplicate rows for one name collapse to one person.
func ActiveRoster(members []model.Member) []string {
	seen := make(map[string]struct{}, len(members))
	names := make([]string, 0, len(members))
	for _, m := range members {
		if m.Name == "" || !m.Active {
			continue
		}
		if _, dup := seen[m.Name]; dup {
			continue
		}
		seen[m.Name] = struct{}{}
		names = append(names, m.Name)
	}
	return names
}

// ForPeriod keeps the players whose period equals period.
func ForPeriod(players []model.Player, period string) []model.Player {
	out := make([]model.Player, 0, len(players))
	for _, p := range players {
		if p.Period == period {
			out = append(out, p)
		}
	}
	return out
}
