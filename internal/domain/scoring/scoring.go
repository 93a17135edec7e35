// Package scoring derives a player's weekly score for either sheet shape.
package scoring

import "github.com/okian/arena/internal/domain/model"

// Mode is the scoring variant, chosen from the activity sheet header.
type Mode = model.Mode

// Scoring modes.
const (
	ModePreAggregated = model.ModePreAggregated
	ModeComputed      = model.ModeComputed
)

// Default computed-mode scoring constants. The streak bonus is applied
// uniformly to every submission.
const (
	DefaultFinishBonus    = 50
	DefaultStreakBonus    = 10
	DefaultFinishedStatus = "FINISHED"
)

// DetectMode picks the scoring mode from the columns the activity sheet
// actually carries: a weekly_score column means the sheet did the math.
func DetectMode(t model.Table) Mode {
	if t.HasColumn(model.ColWeeklyScore) {
		return ModePreAggregated
	}
	if t.HasColumn(model.ColTimestamp) || t.HasColumn(model.ColPagesRead) {
		return ModeComputed
	}
	return ModePreAggregated
}

// Scorer fills in the score fields of a normalized player.
type Scorer interface {
	Mode() Mode
	Score(p model.Player) model.Player
}

// Option applies a configuration option to the computed scorer.
type Option func(*computedScorer)

// WithFinishBonus sets the bonus for a finished book.
func WithFinishBonus(bonus int) Option {
	return func(s *computedScorer) {
		s.finishBonus = bonus
	}
}

// WithStreakBonus sets the flat streak bonus.
func WithStreakBonus(bonus int) Option {
	return func(s *computedScorer) {
		s.streakBonus = bonus
	}
}

// WithFinishedStatus sets the exact status value that marks a finish.
func WithFinishedStatus(status string) Option {
	return func(s *computedScorer) {
		if status != "" {
			s.finishedStatus = status
		}
	}
}

// NewScorer returns the scorer for mode. Options only affect ModeComputed.
func NewScorer(mode Mode, opts ...Option) Scorer {
	if mode == ModePreAggregated {
		return preAggregatedScorer{}
	}
	s := &computedScorer{
		finishBonus:    DefaultFinishBonus,
		streakBonus:    DefaultStreakBonus,
		finishedStatus: DefaultFinishedStatus,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// preAggregatedScorer trusts the sheet's weekly_score.
type preAggregatedScorer struct{}

func (preAggregatedScorer) Mode() Mode { return ModePreAggregated }

func (preAggregatedScorer) Score(p model.Player) model.Player { return p }

// computedScorer scores pages + finish bonus + streak bonus.
type computedScorer struct {
	finishBonus    int
	streakBonus    int
	finishedStatus string
}

func (s *computedScorer) Mode() Mode { return ModeComputed }

func (s *computedScorer) Score(p model.Player) model.Player {
	p.Finished = p.Status == s.finishedStatus
	p.FinishBonus = 0
	if p.Finished {
		p.FinishBonus = s.finishBonus
	}
	p.StreakBonus = s.streakBonus
	p.WeeklyScore = p.Pages + p.FinishBonus + p.StreakBonus
	return p
}
