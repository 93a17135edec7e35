package api

import (
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/arena/internal/app"
	"github.com/okian/arena/pkg/logger"
)

const maxWeekLength = 64

// ArenaHandler serves the leaderboard payload.
type ArenaHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewArenaHandler creates a new arena handler.
func NewArenaHandler(deps Dependencies, l logger.Logger) *ArenaHandler {
	return &ArenaHandler{deps: deps, logger: l}
}

// HandleGetArena handles GET /api/arena?week=ID requests. Every call
// recomputes from the live sources; responses must not be cached.
func (h *ArenaHandler) HandleGetArena(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_arena"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-store")

	week := strings.TrimSpace(r.URL.Query().Get("week"))
	if len(week) > maxWeekLength {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	res, err := h.deps.Arena(r.Context(), week)
	if err != nil {
		status, code, apiErr := classify(op, err)
		h.logger.Warn(r.Context(), "arena request failed",
			logger.String("requestId", RequestID(r.Context())),
			logger.String("code", code),
			logger.Error(err),
		)
		writeError(w, status, code, apiErr)
		return
	}

	for i := range res.Leaderboard {
		res.Leaderboard[i].AvatarURL = h.deps.AvatarURL(res.Leaderboard[i].Name)
	}
	writeJSON(w, http.StatusOK, res)
}

// classify maps service failures onto HTTP responses.
func classify(op string, err error) (int, string, error) {
	switch {
	case errors.Is(err, service.ErrNotConfigured):
		return http.StatusInternalServerError, "config_error", WrapKind(op, ErrConfig, err)
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, "upstream_error", WrapKind(op, ErrUpstream, err)
	default:
		return http.StatusInternalServerError, "internal_error", Wrap(op, err)
	}
}
