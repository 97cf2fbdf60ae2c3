// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/rigmate/rigmate/internal/domain/model"
)

// RecommendationDependencies defines the interface for upgrade plan requests.
type RecommendationDependencies interface {
	Recommend(ctx context.Context, cfg *model.PCConfiguration) ([]model.UpgradeRecommendation, error)
}

// RecommendationsHandler handles upgrade plan requests.
type RecommendationsHandler struct {
	deps RecommendationDependencies
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps}
}

// HandleRecommend handles POST /recommendations requests.
func (h *RecommendationsHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	cfg, err := decodeConfiguration(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	plans, err := h.deps.Recommend(r.Context(), cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if plans == nil {
		plans = []model.UpgradeRecommendation{}
	}
	writeJSON(w, http.StatusOK, plans)
}
