// Package compat evaluates whether a configuration is physically and
// electrically buildable and produces a 0-100 compatibility score.
package compat

import (
	"context"

	"github.com/rigmate/rigmate/internal/domain/catalog"
	"github.com/rigmate/rigmate/internal/domain/model"
	"github.com/rigmate/rigmate/internal/domain/types"
)

// Score weights. Each violated check subtracts its fixed weight once; the
// balance check is staged by severity. These are hand-tuned values carried
// from the original advisory tables.
const (
	baseScore = 100

	socketWeight      = 30
	memoryWeight      = 25
	connectorsWeight  = 25
	physicalWeight    = 15
	powerBudgetWeight = 25

	balanceModeratePenalty = 5
	balanceMajorPenalty    = 10
	balanceCriticalPenalty = 20

	warningPenalty    = 3
	extraIssuePenalty = 8
	cleanBonus        = 5

	// PSU utilization bands. Above the critical band the PSU cannot carry
	// the build; the warning band leaves no headroom for transients.
	defaultPSUCriticalUtilization = 0.90
	defaultPSUWarningUtilization  = 0.80

	// Physical-fit margin bands: a part within this fraction of the case
	// limit still fits but deserves a warning.
	gpuFitMarginFraction    = 0.10
	coolerFitMarginFraction = 0.05

	// CPU/GPU pairing ratio bands, shared with the bottleneck detector.
	balanceModerateRatio = 0.6
	balanceMajorRatio    = 0.5
	balanceCriticalRatio = 0.4
)

// Engine checks configurations against pairwise and group constraints.
type Engine interface {
	Check(ctx context.Context, cfg *model.PCConfiguration) model.CompatibilityResult
}

// Option applies a configuration option to the RuleEngine.
type Option func(*RuleEngine)

// WithPSUBands overrides the PSU utilization thresholds.
func WithPSUBands(critical, warning float64) Option {
	return func(e *RuleEngine) {
		if critical > 0 && warning > 0 && warning < critical {
			e.psuCritical = critical
			e.psuWarning = warning
		}
	}
}

// RuleEngine implements Engine. Each check is independent and composable;
// all of them read typed specs with documented defaults and never fail on
// missing data.
type RuleEngine struct {
	catalog     catalog.Catalog
	psuCritical float64
	psuWarning  float64
}

// New creates a RuleEngine. The catalog supplies performance scores for
// the pairing-balance check and socket metadata fallbacks.
func New(cat catalog.Catalog, opts ...Option) *RuleEngine {
	e := &RuleEngine{
		catalog:     cat,
		psuCritical: defaultPSUCriticalUtilization,
		psuWarning:  defaultPSUWarningUtilization,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// checkResult accumulates the outcome of one independent check.
type checkResult struct {
	name     string
	issues   []model.CompatibilityIssue
	warnings []model.CompatibilityWarning
	weight   float64
}

func (r *checkResult) violated() bool { return len(r.issues) > 0 }

// Check runs every rule and aggregates issues, warnings and the score.
func (e *RuleEngine) Check(ctx context.Context, cfg *model.PCConfiguration) model.CompatibilityResult {
	results := []checkResult{
		e.checkSocket(ctx, cfg),
		e.checkMemory(cfg),
		e.checkPowerConnectors(cfg),
		e.checkPhysicalFit(cfg),
		e.checkPowerBudget(cfg),
	}
	balance := e.checkPerformanceBalance(ctx, cfg)
	missing := e.checkEssentials(cfg)

	out := model.CompatibilityResult{
		IsCompatible: true,
		Details:      map[string]string{},
	}
	score := float64(baseScore)

	for _, r := range results {
		out.Issues = append(out.Issues, r.issues...)
		out.Warnings = append(out.Warnings, r.warnings...)
		if r.violated() {
			score -= r.weight
			out.Details[r.name] = "violated"
		} else {
			out.Details[r.name] = "ok"
		}
	}

	// Balance penalties are staged by severity instead of a fixed weight.
	out.Issues = append(out.Issues, balance.issues...)
	out.Details[balance.name] = "ok"
	for _, is := range balance.issues {
		out.Details[balance.name] = "violated"
		switch is.Severity {
		case types.SeverityCritical:
			score -= balanceCriticalPenalty
		case types.SeverityMajor:
			score -= balanceMajorPenalty
		default:
			score -= balanceModeratePenalty
		}
	}

	out.Issues = append(out.Issues, missing...)

	score -= float64(len(out.Warnings)) * warningPenalty
	for _, is := range out.Issues {
		if !is.MustResolve {
			score -= extraIssuePenalty
		}
	}
	if len(out.Issues) == 0 && len(out.Warnings) == 0 {
		score += cleanBonus
	}
	out.Score = types.ClampScore(score)

	essentialsOK := len(missing) == 0
	out.IsCompatible = essentialsOK && out.CriticalCount() == 0

	if out.Issues == nil {
		out.Issues = []model.CompatibilityIssue{}
	}
	if out.Warnings == nil {
		out.Warnings = []model.CompatibilityWarning{}
	}
	return out
}

// checkEssentials reports informational issues for absent must-have
// categories. These never raise; the caller decides how to message them.
func (e *RuleEngine) checkEssentials(cfg *model.PCConfiguration) []model.CompatibilityIssue {
	var out []model.CompatibilityIssue
	for _, cat := range types.EssentialCategories {
		if !cfg.HasCategory(cat) {
			out = append(out, model.CompatibilityIssue{
				Type:          "missing_component",
				Severity:      types.SeverityMajor,
				Message:       "no " + string(cat) + " selected",
				AffectedParts: []string{string(cat)},
				Solution:      "select a " + string(cat) + " to complete the build",
				MustResolve:   false,
			})
		}
	}
	return out
}
