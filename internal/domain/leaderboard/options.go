package leaderboard

import (
	"time"

	"github.com/okian/arena/internal/domain/ranking"
	"github.com/okian/arena/internal/domain/scoring"
)

// Option applies a configuration option to a computation.
type Option func(*config)

type config struct {
	now     func() time.Time
	scoring []scoring.Option
	ranking []ranking.Option
}

func newConfig(opts []Option) config {
	c := config{now: time.Now}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithClock sets the source of the generatedAt timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithScoring passes options to the computed-shape scorer.
func WithScoring(opts ...scoring.Option) Option {
	return func(c *config) {
		c.scoring = append(c.scoring, opts...)
	}
}

// WithRanking passes options to the ranker and the missed-list sort.
func WithRanking(opts ...ranking.Option) Option {
	return func(c *config) {
		c.ranking = append(c.ranking, opts...)
	}
}
