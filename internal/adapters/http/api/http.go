// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Arena computes the leaderboard for week from the live sources.
	Arena(ctx context.Context, week string) (model.Result, error)

	// AvatarURL returns a display image for name, or "".
	AvatarURL(name string) string
	Avatars() map[string]string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	arenaHandler     *ArenaHandler
	avatarsHandler   *AvatarsHandler
	dashboardHandler *dashboardHandler

	rateLimitRPS   float64
	rateLimitBurst int
	logger         logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithRateLimit throttles /api/arena per client address. A zero rps
// disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.rateLimitRPS = rps
		s.rateLimitBurst = burst
	}
}

// WithLogger sets a custom logger for the handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.arenaHandler = NewArenaHandler(deps, s.logger)
	s.avatarsHandler = NewAvatarsHandler(deps)
	s.dashboardHandler = newDashboardHandler()
	return s
}

// Register attaches all HTTP routes to mux. ctx bounds background work
// such as rate limiter cleanup.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	arena := http.Handler(http.HandlerFunc(s.arenaHandler.HandleGetArena))
	if s.rateLimitRPS > 0 {
		arena = NewRateLimiter(ctx, s.rateLimitRPS, s.rateLimitBurst, "arena").Middleware(arena)
	}

	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/arena", MetricsMiddleware(RequestIDMiddleware(arena).ServeHTTP, "arena"))
	mux.HandleFunc("/api/avatars", MetricsMiddleware(s.avatarsHandler.HandleGetAvatars, "avatars"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Error repeats Message under the key the browser views read.
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, Error: msg})
}
