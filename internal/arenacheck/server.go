package arenacheck

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/okian/arena/pkg/logger"
)

// Fixture routes.
const (
	ActivityPath = "/activity.csv"
	RosterPath   = "/roster.csv"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Handler serves the fixture exports the way a published sheet does.
func Handler(f Fixture) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(ActivityPath, csvHandler(f.Activity))
	mux.HandleFunc(RosterPath, csvHandler(f.Roster))
	return mux
}

func csvHandler(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = w.Write(body)
	}
}

// Serve listens on addr and serves f until ctx is cancelled. ready, when
// non-nil, receives the bound address once the listener is open.
func Serve(ctx context.Context, addr string, f Fixture, ready func(net.Addr)) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           Handler(f),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log := logger.Get()
	log.Info(ctx, "serving fixtures",
		logger.String("addr", ln.Addr().String()),
		logger.Int("roster", f.Expect.Roster),
		logger.Int("submitted", f.Expect.Submitted),
		logger.Int("missed", len(f.Expect.Missed)),
	)
	if ready != nil {
		ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
