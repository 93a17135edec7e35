// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/okian/arena/internal/adapters/sheets"
	"github.com/okian/arena/internal/domain/leaderboard"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/ranking"
	"github.com/okian/arena/internal/domain/scoring"
	"github.com/okian/arena/pkg/logger"
	"github.com/okian/arena/pkg/metrics"
)

// Configuration keys reported when a source URL is missing.
const (
	KeySheetURL     = "SHEET_CSV_URL"
	KeyEmployeesURL = "EMPLOYEES_CSV_URL"
)

// Sources downloads both exports for one computation.
type Sources interface {
	FetchBoth(ctx context.Context, activityURL, rosterURL string) (activity, roster model.Table, err error)
}

// snapshot describes the last computation for operators.
type snapshot struct {
	at         time.Time
	mode       string
	period     string
	totals     model.Totals
	duration   time.Duration
	dropped    int
	lastError  string
	lastFailed time.Time
}

// Service computes the leaderboard from the live exports on every call.
// It keeps no results between calls; only counters for /stats.
type Service struct {
	mu sync.RWMutex

	sources     Sources
	ownSources  bool
	activityURL string
	rosterURL   string
	scoring     []scoring.Option
	lang        language.Tag
	avatars     map[string]string
	now         func() time.Time

	started      bool
	computations int64
	failures     int64
	last         snapshot

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		lang:    language.Und,
		avatars: map[string]string{},
		now:     time.Now,
		logger:  nil, // Will be replaced when service starts
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sources == nil {
		s.sources = sheets.NewFetcher(sheets.WithLogger(s.logger))
		s.ownSources = true
	}
	return s
}

// Start validates the wiring and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.ownSources {
		s.sources = sheets.NewFetcher(sheets.WithLogger(s.logger.Named("sheets")))
	}

	if s.activityURL == "" || s.rosterURL == "" {
		s.logger.Warn(ctx, "source urls incomplete; /api/arena will fail until configured",
			logger.Bool("activityConfigured", s.activityURL != ""),
			logger.Bool("rosterConfigured", s.rosterURL != ""),
		)
	}

	s.started = true
	s.logger.Info(ctx, "arena service started",
		logger.String("language", s.lang.String()),
		logger.Int("avatars", len(s.avatars)),
	)
	return nil
}

// Stop marks the service stopped. Requests in flight finish normally.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "arena service stopped")
}

// Arena fetches both exports and computes the leaderboard for week. An
// empty week selects the latest period the data carries.
func (s *Service) Arena(ctx context.Context, week string) (model.Result, error) {
	log := s.log()

	if err := s.checkConfigured(); err != nil {
		s.fail(ctx, "config", err)
		return model.Result{}, err
	}

	start := time.Now()
	s.mu.RLock()
	src := s.sources
	s.mu.RUnlock()
	activity, roster, err := src.FetchBoth(ctx, s.activityURL, s.rosterURL)
	if err != nil {
		if errors.Is(err, sheets.ErrNotConfigured) {
			err = fmt.Errorf("%w: %v", ErrNotConfigured, err)
			s.fail(ctx, "config", err)
			return model.Result{}, err
		}
		err = fmt.Errorf("%w: %w", ErrUpstream, err)
		s.fail(ctx, "upstream", err)
		return model.Result{}, err
	}

	res, stats := leaderboard.Compute(activity, roster, week,
		leaderboard.WithClock(s.now),
		leaderboard.WithScoring(s.scoring...),
		leaderboard.WithRanking(ranking.WithLanguage(s.lang)),
	)
	elapsed := time.Since(start)

	metrics.RecordComputation(res.Mode.String(), float64(elapsed.Milliseconds()))
	metrics.RecordRowsDropped(sheets.SourceActivity, stats.DroppedActivity())
	metrics.RecordRowsDropped(sheets.SourceRoster, stats.InactiveRoster)
	metrics.UpdateLeaderboardTotals(res.Totals.TotalRoster, res.Totals.Submitted, res.Totals.Missed)

	log.Debug(ctx, "leaderboard computed",
		logger.String("mode", res.Mode.String()),
		logger.String("period", res.Period),
		logger.Int("activityRows", stats.ActivityRows),
		logger.Int("rosterRows", stats.RosterRows),
		logger.Int("submitted", res.Totals.Submitted),
		logger.Int("missed", res.Totals.Missed),
		logger.Duration("elapsed", elapsed),
	)

	s.mu.Lock()
	s.computations++
	s.last.at = res.GeneratedAt
	s.last.mode = res.Mode.String()
	s.last.period = res.Period
	s.last.totals = res.Totals
	s.last.duration = elapsed
	s.last.dropped = stats.DroppedActivity()
	s.mu.Unlock()

	return res, nil
}

func (s *Service) checkConfigured() error {
	if strings.TrimSpace(s.activityURL) == "" {
		return fmt.Errorf("%s %w", KeySheetURL, ErrNotConfigured)
	}
	if strings.TrimSpace(s.rosterURL) == "" {
		return fmt.Errorf("%s %w", KeyEmployeesURL, ErrNotConfigured)
	}
	return nil
}

func (s *Service) fail(ctx context.Context, reason string, err error) {
	metrics.RecordComputationError(reason)
	s.log().Warn(ctx, "leaderboard computation failed",
		logger.String("reason", reason),
		logger.Error(err),
	)

	s.mu.Lock()
	s.failures++
	s.last.lastError = err.Error()
	s.last.lastFailed = s.now().UTC()
	s.mu.Unlock()
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Nop()
	}
	return l
}

// AvatarURL returns the configured image for name, or "".
func (s *Service) AvatarURL(name string) string {
	return s.avatars[avatarKey(name)]
}

// Avatars returns a copy of the avatar table keyed by upper-cased name.
func (s *Service) Avatars() map[string]string {
	out := make(map[string]string, len(s.avatars))
	for k, v := range s.avatars {
		out[k] = v
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":            s.started,
		"computations":       s.computations,
		"failures":           s.failures,
		"activityConfigured": s.activityURL != "",
		"rosterConfigured":   s.rosterURL != "",
	}

	if !s.last.at.IsZero() {
		stats["lastComputedAt"] = s.last.at
		stats["lastMode"] = s.last.mode
		stats["lastPeriod"] = s.last.period
		stats["lastTotals"] = s.last.totals
		stats["lastDurationMs"] = s.last.duration.Milliseconds()
		stats["lastDroppedRows"] = s.last.dropped
	}
	if s.last.lastError != "" {
		stats["lastError"] = s.last.lastError
		stats["lastErrorAt"] = s.last.lastFailed
	}
	return stats
}

func avatarKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func normalizeAvatars(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for name, url := range in {
		if key := avatarKey(name); key != "" && url != "" {
			out[key] = url
		}
	}
	return out
}
