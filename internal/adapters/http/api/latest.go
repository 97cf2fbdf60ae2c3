// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/rigmate/rigmate/internal/domain/model"
)

// LatestDependencies defines the interface for the latest-analysis snapshot.
type LatestDependencies interface {
	Latest() *model.AnalysisResult
}

// LatestHandler serves the most recent applied analysis.
type LatestHandler struct {
	deps LatestDependencies
}

// NewLatestHandler creates a new latest-analysis handler.
func NewLatestHandler(deps LatestDependencies) *LatestHandler {
	return &LatestHandler{deps: deps}
}

// HandleLatest handles GET /analysis/latest requests.
func (h *LatestHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	result := h.deps.Latest()
	if result == nil {
		writeError(w, http.StatusNotFound, "not_found", ErrNoAnalysis)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
