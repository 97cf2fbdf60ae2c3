// Package types contains common domain types used across the application.
package types

// Score bounds enforced at every computation boundary.
const (
	MinScore = 0
	MaxScore = 100
)

// Category identifies a hardware part category.
type Category string

// Known part categories.
const (
	CategoryCPU         Category = "cpu"
	CategoryGPU         Category = "gpu"
	CategoryMotherboard Category = "motherboard"
	CategoryMemory      Category = "memory"
	CategoryStorage     Category = "storage"
	CategoryPSU         Category = "psu"
	CategoryCase        Category = "case"
	CategoryCooler      Category = "cooler"
)

// EssentialCategories must all be populated for a configuration to be buildable.
var EssentialCategories = []Category{
	CategoryCPU,
	CategoryMotherboard,
	CategoryMemory,
	CategoryPSU,
}

// UsageProfile describes the primary workload of a build.
type UsageProfile string

// Known usage profiles. Unknown values behave like ProfileOther.
const (
	ProfileGaming      UsageProfile = "gaming"
	ProfileCreative    UsageProfile = "creative"
	ProfileDevelopment UsageProfile = "development"
	ProfileOffice      UsageProfile = "office"
	ProfileOther       UsageProfile = "other"
)

// Severity classifies issues and bottlenecks.
type Severity string

// Severity levels, ordered by Rank.
const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// Rank returns the ordering weight of a severity; higher means more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityMajor:
		return 3
	case SeverityModerate:
		return 2
	case SeverityMinor:
		return 1
	default:
		return 0
	}
}

// BottleneckType identifies which subsystem limits the build.
type BottleneckType string

// Known bottleneck types.
const (
	BottleneckCPU           BottleneckType = "cpu"
	BottleneckGPU           BottleneckType = "gpu"
	BottleneckMemory        BottleneckType = "memory"
	BottleneckStorage       BottleneckType = "storage"
	BottleneckPSU           BottleneckType = "psu"
	BottleneckCooling       BottleneckType = "cooling"
	BottleneckCompatibility BottleneckType = "compatibility"
)

// RecommendedAction is the per-component advisory verdict.
type RecommendedAction string

// Advisory verdicts ordered from best to worst component condition.
const (
	ActionKeep               RecommendedAction = "keep"
	ActionUpgradeLater       RecommendedAction = "upgrade_later"
	ActionUpgradeSoon        RecommendedAction = "upgrade_soon"
	ActionReplaceImmediately RecommendedAction = "replace_immediately"
)

// ClampScore bounds a score to [MinScore, MaxScore]. NaN collapses to MinScore.
func ClampScore(v float64) float64 {
	if v != v { // NaN
		return MinScore
	}
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
