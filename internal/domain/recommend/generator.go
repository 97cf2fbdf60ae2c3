// Package recommend turns detected bottlenecks into tiered, phased upgrade
// plans with cost/ROI projections.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/rigmate/rigmate/internal/domain/model"
	"github.com/rigmate/rigmate/internal/domain/types"
)

// Plan archetype constants.
const (
	urgentPriority   = 95
	urgentConfidence = 0.9

	balancedPriority   = 70
	balancedConfidence = 0.8

	budgetPriority    = 60
	budgetConfidence  = 0.75
	budgetScoreGate   = 70
	budgetCostCeiling = 30000
	budgetMaxPhases   = 3

	// Improvement projection coefficients.
	efficiencyGainElectrical = 20
	efficiencyGainBase       = 5
	reliabilityGainBase      = 10
	reliabilityGainPerPhase  = 8
	reliabilityGainCap       = 40
)

// Generator builds upgrade plans from a sorted bottleneck list.
type Generator interface {
	Generate(ctx context.Context, bottlenecks []model.BottleneckResult, overallScore float64) []model.UpgradeRecommendation
}

// PlanGenerator implements Generator. Plan construction is deterministic
// except for plan IDs, which are fresh UUIDs per invocation.
type PlanGenerator struct {
	newID func() string
}

// Option applies a configuration option to the PlanGenerator.
type Option func(*PlanGenerator)

// WithIDFunc overrides plan ID generation. Tests use this to pin IDs.
func WithIDFunc(f func() string) Option {
	return func(g *PlanGenerator) {
		if f != nil {
			g.newID = f
		}
	}
}

// New creates a PlanGenerator.
func New(opts ...Option) *PlanGenerator {
	g := &PlanGenerator{newID: uuid.NewString}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds up to three plan archetypes, each independently optional
// based on the input, sorted by priority descending. Zero bottlenecks
// yield zero plans.
func (g *PlanGenerator) Generate(_ context.Context, bottlenecks []model.BottleneckResult, overallScore float64) []model.UpgradeRecommendation {
	plans := []model.UpgradeRecommendation{}
	if p := g.urgentPlan(bottlenecks); p != nil {
		plans = append(plans, *p)
	}
	if p := g.balancedPlan(bottlenecks); p != nil {
		plans = append(plans, *p)
	}
	if p := g.budgetPlan(bottlenecks, overallScore); p != nil {
		plans = append(plans, *p)
	}
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].Priority > plans[j].Priority
	})
	return plans
}

// urgentPlan addresses every critical bottleneck in one phase each.
func (g *PlanGenerator) urgentPlan(bottlenecks []model.BottleneckResult) *model.UpgradeRecommendation {
	critical := filterSeverity(bottlenecks, types.SeverityCritical)
	if len(critical) == 0 {
		return nil
	}
	phases := make([]model.UpgradePhase, 0, len(critical))
	for _, b := range critical {
		phases = append(phases, phaseFor(b, nil))
	}
	plan := &model.UpgradeRecommendation{
		ID:                  g.newID(),
		Name:                "Urgent fixes",
		Type:                "urgent",
		TotalCost:           totalCost(phases),
		Phases:              phases,
		ExpectedImprovement: improvementFor(critical, len(phases)),
		Risks:               risksFor(critical, "multiple simultaneous replacements raise assembly risk"),
		Priority:            urgentPriority,
		Confidence:          urgentConfidence,
	}
	return plan
}

// balancedPlan sequences major bottlenecks, each phase depending on the
// immediately preceding one.
func (g *PlanGenerator) balancedPlan(bottlenecks []model.BottleneckResult) *model.UpgradeRecommendation {
	major := filterSeverity(bottlenecks, types.SeverityMajor)
	if len(major) == 0 {
		return nil
	}
	phases := make([]model.UpgradePhase, 0, len(major))
	for i, b := range major {
		var deps []int
		if i > 0 {
			deps = []int{i - 1}
		}
		phases = append(phases, phaseFor(b, deps))
	}
	plan := &model.UpgradeRecommendation{
		ID:                  g.newID(),
		Name:                "Staged improvements",
		Type:                "balanced",
		TotalCost:           totalCost(phases),
		Phases:              phases,
		ExpectedImprovement: improvementFor(major, len(phases)),
		Risks:               risksFor(major, ""),
		Priority:            balancedPriority,
		Confidence:          balancedConfidence,
	}
	return plan
}

// budgetPlan picks the cheapest high-leverage fixes, only when the overall
// score shows room to improve.
func (g *PlanGenerator) budgetPlan(bottlenecks []model.BottleneckResult, overallScore float64) *model.UpgradeRecommendation {
	if overallScore >= budgetScoreGate {
		return nil
	}
	affordable := []model.BottleneckResult{}
	for _, b := range bottlenecks {
		if b.CostEstimate < budgetCostCeiling {
			affordable = append(affordable, b)
		}
	}
	if len(affordable) == 0 {
		return nil
	}
	sort.SliceStable(affordable, func(i, j int) bool {
		return affordable[i].ImprovementPotential > affordable[j].ImprovementPotential
	})
	if len(affordable) > budgetMaxPhases {
		affordable = affordable[:budgetMaxPhases]
	}
	phases := make([]model.UpgradePhase, 0, len(affordable))
	for _, b := range affordable {
		phases = append(phases, phaseFor(b, nil))
	}
	plan := &model.UpgradeRecommendation{
		ID:                  g.newID(),
		Name:                "Budget boost",
		Type:                "budget",
		TotalCost:           totalCost(phases),
		Phases:              phases,
		ExpectedImprovement: improvementFor(affordable, len(phases)),
		Risks:               risksFor(affordable, ""),
		Priority:            budgetPriority,
		Confidence:          budgetConfidence,
	}
	return plan
}

// phaseFor converts one bottleneck into an upgrade phase.
func phaseFor(b model.BottleneckResult, deps []int) model.UpgradePhase {
	return model.UpgradePhase{
		Name:          fmt.Sprintf("Upgrade %s", b.Type),
		Description:   b.Description,
		Cost:          b.CostEstimate,
		TargetParts:   b.AffectedParts,
		DependsOn:     deps,
		EstimatedGain: b.ImprovementPotential,
	}
}

func totalCost(phases []model.UpgradePhase) float64 {
	total := 0.0
	for _, p := range phases {
		total += p.Cost
	}
	return total
}

// improvementFor projects plan-level gains from the included bottlenecks.
func improvementFor(included []model.BottleneckResult, phaseCount int) model.ExpectedImprovement {
	perf := 0.0
	electrical := false
	for _, b := range included {
		perf += b.ImprovementPotential
		if b.Type == types.BottleneckPSU || b.Type == types.BottleneckCooling {
			electrical = true
		}
	}
	if len(included) > 0 {
		perf /= float64(len(included))
	}

	efficiency := float64(efficiencyGainBase)
	if electrical {
		efficiency = efficiencyGainElectrical
	}
	reliability := float64(reliabilityGainBase + reliabilityGainPerPhase*phaseCount)
	if reliability > reliabilityGainCap {
		reliability = reliabilityGainCap
	}
	return model.ExpectedImprovement{
		PerformanceGain: types.ClampScore(perf),
		EfficiencyGain:  efficiency,
		ReliabilityGain: reliability,
	}
}

// risksFor collects plan risks, deduplicated, in stable order.
func risksFor(included []model.BottleneckResult, extra string) []string {
	out := []string{}
	seen := map[string]bool{}
	add := func(risk string) {
		if risk != "" && !seen[risk] {
			seen[risk] = true
			out = append(out, risk)
		}
	}
	add(extra)
	for _, b := range included {
		switch b.Type {
		case types.BottleneckCPU, types.BottleneckCompatibility:
			add("a firmware update may be required before the new CPU is recognized")
		case types.BottleneckGPU:
			add("verify PSU connectors and case clearance before ordering the GPU")
		case types.BottleneckStorage:
			add("migrating the operating system to the new drive takes extra care")
		}
	}
	return out
}

func filterSeverity(bottlenecks []model.BottleneckResult, s types.Severity) []model.BottleneckResult {
	out := []model.BottleneckResult{}
	for _, b := range bottlenecks {
		if b.Severity == s {
			out = append(out, b)
		}
	}
	return out
}
