package rigctl

import (
	"context"

	"github.com/rigmate/rigmate/internal/app"
	"github.com/rigmate/rigmate/internal/domain/model"
)

// runner abstracts where the analysis executes: in-process with the
// embedded catalog, or against a running server.
type runner interface {
	analyze(ctx context.Context, cfg *model.PCConfiguration) (*model.AnalysisResult, error)
	compat(ctx context.Context, cfg *model.PCConfiguration) (model.CompatibilityResult, error)
	recommend(ctx context.Context, cfg *model.PCConfiguration) ([]model.UpgradeRecommendation, error)
	close()
}

func newRunner(ctx context.Context) (runner, error) {
	if serverURL != "" {
		return &remoteRunner{base: serverURL}, nil
	}
	svc := app.New()
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return &localRunner{svc: svc}, nil
}

type localRunner struct {
	svc *app.Service
}

func (r *localRunner) analyze(ctx context.Context, cfg *model.PCConfiguration) (*model.AnalysisResult, error) {
	return r.svc.Analyze(ctx, cfg)
}

func (r *localRunner) compat(ctx context.Context, cfg *model.PCConfiguration) (model.CompatibilityResult, error) {
	return r.svc.CheckCompatibility(ctx, cfg)
}

func (r *localRunner) recommend(ctx context.Context, cfg *model.PCConfiguration) ([]model.UpgradeRecommendation, error) {
	return r.svc.Recommend(ctx, cfg)
}

func (r *localRunner) close() {
	r.svc.Stop()
}

type remoteRunner struct {
	base string
}

func (r *remoteRunner) analyze(ctx context.Context, cfg *model.PCConfiguration) (*model.AnalysisResult, error) {
	var out model.AnalysisResult
	if err := postJSON(ctx, r.base, "/analyze", cfg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *remoteRunner) compat(ctx context.Context, cfg *model.PCConfiguration) (model.CompatibilityResult, error) {
	var out model.CompatibilityResult
	if err := postJSON(ctx, r.base, "/compatibility", cfg, &out); err != nil {
		return model.CompatibilityResult{}, err
	}
	return out, nil
}

func (r *remoteRunner) recommend(ctx context.Context, cfg *model.PCConfiguration) ([]model.UpgradeRecommendation, error) {
	var out []model.UpgradeRecommendation
	if err := postJSON(ctx, r.base, "/recommendations", cfg, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *remoteRunner) close() {}
