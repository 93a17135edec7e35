package service

import (
	"time"

	"golang.org/x/text/language"

	"github.com/okian/arena/internal/domain/scoring"
	"github.com/okian/arena/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSources sets the component that downloads both exports.
func WithSources(src Sources) Option {
	return func(s *Service) {
		if src != nil {
			s.sources = src
		}
	}
}

// WithSourceURLs sets the published activity and roster export URLs.
func WithSourceURLs(activity, roster string) Option {
	return func(s *Service) {
		s.activityURL = activity
		s.rosterURL = roster
	}
}

// WithScoring sets the computed-shape scoring parameters.
func WithScoring(finishBonus, streakBonus int, finishedStatus string) Option {
	return func(s *Service) {
		s.scoring = []scoring.Option{
			scoring.WithFinishBonus(finishBonus),
			scoring.WithStreakBonus(streakBonus),
			scoring.WithFinishedStatus(finishedStatus),
		}
	}
}

// WithLanguage sets the collation used to order names.
func WithLanguage(tag language.Tag) Option {
	return func(s *Service) {
		s.lang = tag
	}
}

// WithAvatars sets the display-only name to image table.
func WithAvatars(avatars map[string]string) Option {
	return func(s *Service) {
		s.avatars = normalizeAvatars(avatars)
	}
}

// WithClock sets the source of generatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
