// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/rigmate/rigmate/internal/domain/model"
)

// CompatibilityDependencies defines the interface for compatibility checks.
type CompatibilityDependencies interface {
	CheckCompatibility(ctx context.Context, cfg *model.PCConfiguration) (model.CompatibilityResult, error)
}

// CompatibilityHandler handles compatibility check requests.
type CompatibilityHandler struct {
	deps CompatibilityDependencies
}

// NewCompatibilityHandler creates a new compatibility handler.
func NewCompatibilityHandler(deps CompatibilityDependencies) *CompatibilityHandler {
	return &CompatibilityHandler{deps: deps}
}

// HandleCheck handles POST /compatibility requests.
func (h *CompatibilityHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	cfg, err := decodeConfiguration(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := h.deps.CheckCompatibility(r.Context(), cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
