package model

import "github.com/rigmate/rigmate/internal/domain/types"

// ComponentPerformance is the per-part scoring record. It is derived on
// every analysis and never persisted across configuration changes.
type ComponentPerformance struct {
	PartID                  string                  `json:"part_id"`
	Category                types.Category          `json:"category"`
	PerformanceScore        float64                 `json:"performance_score"`
	ValueScore              float64                 `json:"value_score"`
	ModernityScore          float64                 `json:"modernity_score"`
	Strengths               []string                `json:"strengths"`
	Weaknesses              []string                `json:"weaknesses"`
	RecommendedAction       types.RecommendedAction `json:"recommended_action"`
	ExpectedLifespanMonths  float64                 `json:"expected_lifespan_months"`
	CompatibilityWithOthers float64                 `json:"compatibility_with_others"`
}

// BottleneckResult describes one detected performance limiter.
type BottleneckResult struct {
	Type                 types.BottleneckType `json:"type"`
	Severity             types.Severity       `json:"severity"`
	Description          string               `json:"description"`
	ImprovementPotential float64              `json:"improvement_potential"`
	CostEstimate         float64              `json:"cost_estimate"`
	DifficultyLevel      string               `json:"difficulty_level"`
	AffectedParts        []string             `json:"affected_parts"`
	DependentUpgrades    []string             `json:"dependent_upgrades,omitempty"`
}

// CompatibilityIssue is a blocking or near-blocking constraint violation.
// MustResolve issues force the configuration to be reported incompatible.
type CompatibilityIssue struct {
	Type          string         `json:"type"`
	Severity      types.Severity `json:"severity"`
	Message       string         `json:"message"`
	AffectedParts []string       `json:"affected_parts"`
	Solution      string         `json:"solution,omitempty"`
	MustResolve   bool           `json:"must_resolve"`
}

// CompatibilityWarning is advisory and never blocks a build.
type CompatibilityWarning struct {
	Type          string         `json:"type"`
	Severity      types.Severity `json:"severity"`
	Message       string         `json:"message"`
	AffectedParts []string       `json:"affected_parts"`
	Suggestion    string         `json:"suggestion,omitempty"`
}

// CompatibilityResult is the outcome of the rule engine over one build.
type CompatibilityResult struct {
	IsCompatible bool                   `json:"is_compatible"`
	Score        float64                `json:"score"`
	Issues       []CompatibilityIssue   `json:"issues"`
	Warnings     []CompatibilityWarning `json:"warnings"`
	Details      map[string]string      `json:"details,omitempty"`
}

// CriticalCount returns the number of must-resolve issues.
func (r CompatibilityResult) CriticalCount() int {
	n := 0
	for _, is := range r.Issues {
		if is.MustResolve {
			n++
		}
	}
	return n
}

// UpgradePhase is one ordered step of an upgrade plan. DependsOn holds
// indices of earlier phases, so plans are acyclic by construction.
type UpgradePhase struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Cost          float64  `json:"cost"`
	TargetParts   []string `json:"target_parts"`
	DependsOn     []int    `json:"depends_on,omitempty"`
	EstimatedGain float64  `json:"estimated_gain"`
}

// ExpectedImprovement quantifies what a plan is projected to deliver.
type ExpectedImprovement struct {
	PerformanceGain float64 `json:"performance_gain"`
	EfficiencyGain  float64 `json:"efficiency_gain"`
	ReliabilityGain float64 `json:"reliability_gain"`
}

// UpgradeRecommendation is one tiered, phased upgrade plan.
type UpgradeRecommendation struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Type                string              `json:"type"`
	TotalCost           float64             `json:"total_cost"`
	Phases              []UpgradePhase      `json:"phases"`
	ExpectedImprovement ExpectedImprovement `json:"expected_improvement"`
	ROI                 *ROIAnalysis        `json:"roi,omitempty"`
	Risks               []string            `json:"risks,omitempty"`
	Priority            float64             `json:"priority"`
	Confidence          float64             `json:"confidence"`
}

// UncertaintyRange bounds an ROI projection.
type UncertaintyRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ROIAnalysis attaches cost/benefit projections to an upgrade plan.
// PaybackPeriodMonths is +Inf when the plan yields no monthly benefit.
type ROIAnalysis struct {
	InvestmentCost      float64          `json:"investment_cost"`
	MonthlyBenefit      float64          `json:"monthly_benefit"`
	PaybackPeriodMonths float64          `json:"payback_period_months"`
	ROI                 float64          `json:"roi"`
	RiskAdjustedROI     float64          `json:"risk_adjusted_roi"`
	UncertaintyRange    UncertaintyRange `json:"uncertainty_range"`
	TimeframeMonths     int              `json:"timeframe_months"`
}

// PerformanceMetrics summarizes the whole-system view of a build.
type PerformanceMetrics struct {
	CPUScore       float64 `json:"cpu_score"`
	GPUScore       float64 `json:"gpu_score"`
	MemoryScore    float64 `json:"memory_score"`
	StorageScore   float64 `json:"storage_score"`
	TotalPowerDraw float64 `json:"total_power_draw_watts"`
	PSUUtilization float64 `json:"psu_utilization"`
}

// AnalysisResult is the full report assembled by the orchestrator.
type AnalysisResult struct {
	Fingerprint        string                          `json:"fingerprint"`
	OverallScore       float64                         `json:"overall_score"`
	BalanceScore       float64                         `json:"balance_score"`
	ComponentAnalysis  map[string]ComponentPerformance `json:"component_analysis"`
	Bottlenecks        []BottleneckResult              `json:"bottlenecks"`
	PerformanceMetrics PerformanceMetrics              `json:"performance_metrics"`
	Compatibility      CompatibilityResult             `json:"compatibility"`
	Recommendations    []UpgradeRecommendation         `json:"recommendations"`
}
