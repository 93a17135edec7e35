package arenacheck

import (
	"context"
	"fmt"
	"net"
	"time"

	"golang.org/x/text/language"

	"github.com/okian/arena/internal/domain/ranking"
	"github.com/okian/arena/pkg/logger"
)

// RunFixtures generates a fixture and serves it until ctx is cancelled.
func RunFixtures(ctx context.Context, cfg FixtureConfig) error {
	f, err := Generate(cfg)
	if err != nil {
		return err
	}
	log := logger.Get()
	return Serve(ctx, cfg.Addr, f, func(addr net.Addr) {
		base := "http://" + addr.String()
		log.Info(ctx, "point the service at these exports",
			logger.String("ARENA_SHEET_CSV_URL", base+ActivityPath),
			logger.String("ARENA_EMPLOYEES_CSV_URL", base+RosterPath),
			logger.String("mode", cfg.Mode.String()),
		)
	})
}

// RunVerify fetches the leaderboard once and checks it.
func RunVerify(ctx context.Context, cfg VerifyConfig) error {
	log := logger.Get()
	start := time.Now()

	tag := language.Und
	if cfg.Language != "" {
		parsed, err := language.Parse(cfg.Language)
		if err != nil {
			return fmt.Errorf("%w: language: %v", ErrInvalidConfig, err)
		}
		tag = parsed
	}

	res, err := FetchArena(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info(ctx, "leaderboard fetched",
		logger.String("period", res.Period),
		logger.String("mode", res.Mode),
		logger.Int("entries", len(res.Leaderboard)),
		logger.Int("missed", len(res.Missed)),
		logger.Duration("latency", time.Since(start)),
	)

	if err := Verify(res, ranking.NewNameOrder(ranking.WithLanguage(tag))); err != nil {
		return err
	}
	if cfg.Expect != nil {
		if err := Compare(res, *cfg.Expect); err != nil {
			return err
		}
	}

	log.Info(ctx, "leaderboard verified")
	return nil
}
