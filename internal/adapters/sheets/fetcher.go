// Package sheets downloads the published activity and roster exports.
package sheets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/pkg/logger"
	"github.com/okian/arena/pkg/metrics"
)

// Source names used in logs, metrics and errors.
const (
	SourceActivity = "activity"
	SourceRoster   = "roster"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 16 << 20
)

// Fetcher downloads CSV exports. Every call goes to the network; nothing
// is cached.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
	logger   logger.Logger
}

// NewFetcher constructs a Fetcher with defaults.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{},
		timeout:  defaultTimeout,
		maxBytes: defaultMaxBytes,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads and parses one source.
func (f *Fetcher) Fetch(ctx context.Context, source, url string) (model.Table, error) {
	if strings.TrimSpace(url) == "" {
		return model.Table{}, fmt.Errorf("%w: %s", ErrNotConfigured, source)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	table, err := f.fetch(ctx, url)
	if err != nil {
		metrics.RecordSourceFetchError(source)
		f.logger.Warn(ctx, "source fetch failed",
			logger.String("source", source),
			logger.Error(err),
		)
		return model.Table{}, fmt.Errorf("%s: %w", source, err)
	}

	elapsed := time.Since(start)
	metrics.RecordSourceFetch(source, float64(elapsed.Milliseconds()), table.Len())
	f.logger.Debug(ctx, "source fetched",
		logger.String("source", source),
		logger.Int("rows", table.Len()),
		logger.Duration("elapsed", elapsed),
	)
	return table, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) (model.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	// Published sheets sit behind a CDN; always ask for a fresh copy.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return model.Table{}, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	// One byte past the cap tells a full payload from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		if ctx.Err() != nil {
			return model.Table{}, fmt.Errorf("%w: %v", ErrFetch, ctx.Err())
		}
		return model.Table{}, fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}
	if int64(len(body)) > f.maxBytes {
		return model.Table{}, fmt.Errorf("%w: payload exceeds %d bytes", ErrFetch, f.maxBytes)
	}
	return Parse(bytes.NewReader(body))
}

// FetchBoth downloads the activity and roster exports concurrently. The
// first failure cancels the other download and is returned.
func (f *Fetcher) FetchBoth(ctx context.Context, activityURL, rosterURL string) (activity, roster model.Table, err error) {
	if strings.TrimSpace(activityURL) == "" {
		return model.Table{}, model.Table{}, fmt.Errorf("%w: %s", ErrNotConfigured, SourceActivity)
	}
	if strings.TrimSpace(rosterURL) == "" {
		return model.Table{}, model.Table{}, fmt.Errorf("%w: %s", ErrNotConfigured, SourceRoster)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		activity, err = f.Fetch(gctx, SourceActivity, activityURL)
		return err
	})
	g.Go(func() error {
		var err error
		roster, err = f.Fetch(gctx, SourceRoster, rosterURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Table{}, model.Table{}, err
	}
	return activity, roster, nil
}
