// Package dedupe collapses repeated submissions to one row per person.
package dedupe

import "github.com/okian/arena/internal/domain/model"

// Deduper keeps the latest submission per name.
type Deduper interface {
	// Offer considers p as the current row for its name. It returns true
	// when p became the current row. A row whose timestamp is equal to
	// the current one replaces it, so later rows win ties.
	Offer(p model.Player) bool
	// Players returns the retained rows in first-seen name order.
	Players() []model.Player
	Size() int
}

// latestWins implements Deduper with an index into a slice so the
// first-seen order of names is kept.
type latestWins struct {
	index   map[string]int
	players []model.Player
}

// NewLatestWins creates an empty latest-submission-wins deduper.
func NewLatestWins(opts ...Option) Deduper {
	d := &latestWins{}
	for _, opt := range opts {
		opt(d)
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	return d
}

func (d *latestWins) Offer(p model.Player) bool {
	i, ok := d.index[p.Name]
	if !ok {
		d.index[p.Name] = len(d.players)
		d.players = append(d.players, p)
		return true
	}
	// Zero (unparseable) timestamps lose to any real one and tie with
	// each other, so the later zero row still wins over an earlier zero.
	if p.SubmittedAt.Before(d.players[i].SubmittedAt) {
		return false
	}
	d.players[i] = p
	return true
}

func (d *latestWins) Players() []model.Player {
	out := make([]model.Player, len(d.players))
	copy(out, d.players)
	return out
}

func (d *latestWins) Size() int {
	return len(d.players)
}

// Latest returns one row per name, the one with the greatest timestamp.
func Latest(players []model.Player) []model.Player {
	d := NewLatestWins(WithCapacity(len(players)))
	for _, p := range players {
		d.Offer(p)
	}
	return d.Players()
}
