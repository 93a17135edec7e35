package api

import "net/http"

// AvatarsHandler serves the display-only avatar table.
type AvatarsHandler struct {
	deps Dependencies
}

// NewAvatarsHandler creates a new avatars handler.
func NewAvatarsHandler(deps Dependencies) *AvatarsHandler {
	return &AvatarsHandler{deps: deps}
}

// HandleGetAvatars handles GET /api/avatars requests.
func (h *AvatarsHandler) HandleGetAvatars(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Avatars())
}
