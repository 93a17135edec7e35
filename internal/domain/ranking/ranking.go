// Package ranking orders scored players and assigns leaderboard positions.
package ranking

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/okian/arena/internal/domain/model"
)

// Option configures ranking.
type Option func(*options)

type options struct {
	tag language.Tag
}

// WithLanguage selects the collation used for the name tie-break.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.tag = tag
	}
}

func buildOptions(opts []Option) options {
	o := options{tag: language.Und}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NameOrder compares display names with a locale-aware collator and
// falls back to byte order, so two distinct names never compare equal.
// A NameOrder is not safe for concurrent use.
type NameOrder struct {
	coll *collate.Collator
}

// NewNameOrder builds a NameOrder for the configured language.
func NewNameOrder(opts ...Option) *NameOrder {
	o := buildOptions(opts)
	return &NameOrder{coll: collate.New(o.tag)}
}

// Compare returns -1, 0 or +1. It returns 0 only for identical strings.
func (n *NameOrder) Compare(a, b string) int {
	if c := n.coll.CompareString(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Sort orders names ascending in place.
func (n *NameOrder) Sort(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return n.Compare(names[i], names[j]) < 0
	})
}

// Comparator is the leaderboard order: weekly score, books finished this
// week (pre-aggregated shape only), pages, then name.
type Comparator struct {
	mode  model.Mode
	names *NameOrder
}

// NewComparator builds the comparator for a scoring mode.
func NewComparator(mode model.Mode, opts ...Option) *Comparator {
	return &Comparator{mode: mode, names: NewNameOrder(opts...)}
}

// Compare returns a negative value when a ranks ahead of b.
func (c *Comparator) Compare(a, b model.Player) int {
	if a.WeeklyScore != b.WeeklyScore {
		return desc(a.WeeklyScore, b.WeeklyScore)
	}
	if c.mode == model.ModePreAggregated && a.BooksFinishedWeek != b.BooksFinishedWeek {
		return desc(a.BooksFinishedWeek, b.BooksFinishedWeek)
	}
	if a.Pages != b.Pages {
		return desc(a.Pages, b.Pages)
	}
	return c.names.Compare(a.Name, b.Name)
}

// Less reports whether a ranks ahead of b.
func (c *Comparator) Less(a, b model.Player) bool {
	return c.Compare(a, b) < 0
}

func desc(a, b int) int {
	if a > b {
		return -1
	}
	return 1
}

// Rank sorts players and assigns 1-based ranks by position. The input
// slice is not modified.
func Rank(players []model.Player, mode model.Mode, opts ...Option) []model.Entry {
	sorted := make([]model.Player, len(players))
	copy(sorted, players)

	cmp := NewComparator(mode, opts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return cmp.Less(sorted[i], sorted[j])
	})

	entries := make([]model.Entry, len(sorted))
	for i, p := range sorted {
		entries[i] = model.Entry{Player: p, Rank: i + 1, Mode: mode}
	}
	return entries
}
