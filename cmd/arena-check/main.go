package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/arena/internal/arenacheck"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/pkg/logger"
)

// Default configuration constants.
const (
	defaultAddr        = "127.0.0.1:9090"
	defaultBaseURL     = "http://localhost:9080"
	defaultPlayers     = 40
	defaultInactive    = 3
	defaultMissedRatio = 0.25
	defaultTimeout     = 30 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logFormat string

	root := &cobra.Command{
		Use:          "arena-check",
		Short:        "Serve fixture sheets and verify a running arena service",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.Init(logger.WithFormat(logFormat))
		},
	}
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format (text|json)")

	root.AddCommand(newFixturesCmd(), newVerifyCmd())
	return root
}

func newFixturesCmd() *cobra.Command {
	var (
		cfg  arenacheck.FixtureConfig
		mode string
	)

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Generate a roster and activity sheet and serve them as CSV",
		Example: `  arena-check fixtures --mode computed --players 60 --missed-ratio 0.3
  ARENA_SHEET_CSV_URL=http://127.0.0.1:9090/activity.csv \
  ARENA_EMPLOYEES_CSV_URL=http://127.0.0.1:9090/roster.csv go run ./cmd`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := parseMode(mode)
			if err != nil {
				return err
			}
			cfg.Mode = m
			return arenacheck.RunFixtures(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&mode, "mode", model.ModePreAggregated.String(), "sheet shape (preAggregated|computed)")
	flags.IntVar(&cfg.Players, "players", defaultPlayers, "active roster size")
	flags.IntVar(&cfg.Inactive, "inactive", defaultInactive, "inactive roster members")
	flags.Float64Var(&cfg.MissedRatio, "missed-ratio", defaultMissedRatio, "share of active members without a submission")
	flags.StringVar(&cfg.Period, "period", "", "period id for computed rows (default: current ISO week)")
	flags.StringVar(&cfg.Addr, "addr", defaultAddr, "listen address")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var cfg arenacheck.VerifyConfig

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Fetch /api/arena once and check the leaderboard rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return arenacheck.RunVerify(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", defaultBaseURL, "base URL of the arena service")
	flags.StringVar(&cfg.Week, "week", "", "period to request (default: latest)")
	flags.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "request timeout")
	flags.StringVar(&cfg.Language, "lang", "und", "collation the service sorts names with")
	return cmd
}

func parseMode(s string) (model.Mode, error) {
	switch s {
	case model.ModePreAggregated.String():
		return model.ModePreAggregated, nil
	case model.ModeComputed.String():
		return model.ModeComputed, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", arenacheck.ErrInvalidConfig, s)
	}
}
