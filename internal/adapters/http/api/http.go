// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rigmate/rigmate/internal/domain/model"
	"github.com/rigmate/rigmate/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Analyze runs the full analysis pipeline over one configuration.
	Analyze(ctx context.Context, cfg *model.PCConfiguration) (*model.AnalysisResult, error)

	// CheckCompatibility runs only the compatibility rule engine.
	CheckCompatibility(ctx context.Context, cfg *model.PCConfiguration) (model.CompatibilityResult, error)

	// Recommend returns only the upgrade plans for one configuration.
	Recommend(ctx context.Context, cfg *model.PCConfiguration) ([]model.UpgradeRecommendation, error)

	// Latest returns the most recent applied analysis, or nil.
	Latest() *model.AnalysisResult
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	analyzeHandler         *AnalyzeHandler
	compatibilityHandler   *CompatibilityHandler
	recommendationsHandler *RecommendationsHandler
	latestHandler          *LatestHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		analyzeHandler:         NewAnalyzeHandler(deps),
		compatibilityHandler:   NewCompatibilityHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps),
		latestHandler:          NewLatestHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/analyze", MetricsMiddleware(s.analyzeHandler.HandleAnalyze, "analyze"))
	mux.HandleFunc("/compatibility", MetricsMiddleware(s.compatibilityHandler.HandleCheck, "compatibility"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendationsHandler.HandleRecommend, "recommendations"))
	mux.HandleFunc("/analysis/latest", MetricsMiddleware(s.latestHandler.HandleLatest, "analysis_latest"))
}

// knownProfiles guards the usage_profile request field. An empty profile
// is accepted and treated as "other" downstream.
var knownProfiles = map[types.UsageProfile]struct{}{
	types.ProfileGaming:      {},
	types.ProfileCreative:    {},
	types.ProfileDevelopment: {},
	types.ProfileOffice:      {},
	types.ProfileOther:       {},
}

// decodeConfiguration reads and validates the configuration payload shared
// by the analysis endpoints.
func decodeConfiguration(r *http.Request) (*model.PCConfiguration, error) {
	var cfg model.PCConfiguration
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		return nil, ErrBadRequest
	}
	if cfg.UsageProfile != "" {
		if _, ok := knownProfiles[cfg.UsageProfile]; !ok {
			return nil, ErrUnknownProfile
		}
	}
	if len(cfg.Parts()) == 0 {
		return nil, ErrEmptyConfiguration
	}
	for _, sp := range cfg.Parts() {
		if sp.Part.ID == "" {
			return nil, ErrMissingPartID
		}
	}
	return &cfg, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
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
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
