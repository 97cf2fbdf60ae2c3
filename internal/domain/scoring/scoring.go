// Package scoring converts single parts into per-component performance records.
package scoring

import (
	"context"
	"time"

	"github.com/rigmate/rigmate/internal/domain/catalog"
	"github.com/rigmate/rigmate/internal/domain/model"
	"github.com/rigmate/rigmate/internal/domain/types"
	"github.com/rigmate/rigmate/pkg/metrics"
)

// Scoring model constants. Thresholds are hand-tuned in the original
// advisory tables; keep them named rather than deriving new values.
const (
	// valueScore = perf / (price / valuePriceUnit) * valueScale, i.e. the
	// benchmark points bought per 10k JPY.
	valuePriceUnit = 10000
	valueScale     = 10
	// fallbackValueScore is used when the price is unknown or non-positive.
	fallbackValueScore = 50

	modernityDecayPerYear  = 15
	modernityFloor         = 20
	fallbackModernityScore = 60

	strengthPerformanceMin = 80
	strengthValueMin       = 70
	strengthModernityMin   = 85
	weaknessPerformanceMax = 40
	weaknessValueMax       = 30
	weaknessModernityMax   = 50

	actionReplaceBelow      = 30
	actionUpgradeSoonBelow  = 50
	actionUpgradeLaterBelow = 70

	lifespanBaseMonths        = 60
	lifespanPerfCoefficient   = 0.5
	lifespanModernCoefficient = 0.3
	lifespanMinMonths         = 12
	lifespanMaxMonths         = 120
)

// Scorer computes a performance record for one part.
type Scorer interface {
	// Score evaluates a part in the context of a usage profile.
	Score(ctx context.Context, part model.Part, profile types.UsageProfile) model.ComponentPerformance
}

// Option applies a configuration option to the ComponentScorer.
type Option func(*ComponentScorer)

// WithReferenceYear pins the year used for age computation. Tests use this
// to keep modernity scores stable.
func WithReferenceYear(year int) Option {
	return func(s *ComponentScorer) {
		if year > 0 {
			s.referenceYear = year
		}
	}
}

// WithLifespanMultipliers overrides the usage-profile lifespan multipliers.
func WithLifespanMultipliers(m map[types.UsageProfile]float64) Option {
	return func(s *ComponentScorer) {
		for profile, mult := range m {
			if mult > 0 {
				s.lifespanMultipliers[profile] = mult
			}
		}
	}
}

// ComponentScorer implements Scorer over a benchmark catalog.
type ComponentScorer struct {
	catalog             catalog.Catalog
	referenceYear       int
	lifespanMultipliers map[types.UsageProfile]float64
}

// New creates a ComponentScorer reading benchmark data from cat.
func New(cat catalog.Catalog, opts ...Option) *ComponentScorer {
	s := &ComponentScorer{
		catalog:       cat,
		referenceYear: time.Now().Year(),
		lifespanMultipliers: map[types.UsageProfile]float64{
			types.ProfileGaming: 0.8,
			types.ProfileOffice: 1.3,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score evaluates one part. Catalog misses and absent specification fields
// degrade to documented defaults; this method never fails.
func (s *ComponentScorer) Score(ctx context.Context, part model.Part, profile types.UsageProfile) model.ComponentPerformance {
	entry, ok := s.catalog.Lookup(ctx, part.Category, part.Manufacturer, part.Name())
	if !ok {
		metrics.RecordCatalogMiss()
	}
	perf := types.ClampScore(entry.Score)

	value := s.valueScore(perf, part.Price)
	modernity := s.modernityScore(part, entry)

	perfRecord := model.ComponentPerformance{
		PartID:                  part.ID,
		Category:                part.Category,
		PerformanceScore:        perf,
		ValueScore:              value,
		ModernityScore:          modernity,
		Strengths:               strengths(perf, value, modernity),
		Weaknesses:              weaknesses(perf, value, modernity),
		RecommendedAction:       action((perf + value + modernity) / 3),
		ExpectedLifespanMonths:  s.lifespan(perf, modernity, profile),
		CompatibilityWithOthers: types.MaxScore,
	}
	return perfRecord
}

// valueScore measures cost performance. A non-positive price cannot be
// divided through and yields the fixed fallback instead.
func (s *ComponentScorer) valueScore(perf, price float64) float64 {
	if price <= 0 {
		return fallbackValueScore
	}
	return types.ClampScore(perf / (price / valuePriceUnit) * valueScale)
}

// modernityScore decays with component age. The release year comes from the
// specification bag first, then catalog metadata, then the fallback.
func (s *ComponentScorer) modernityScore(part model.Part, entry catalog.Entry) float64 {
	year := model.ReleaseYear(part)
	if year == 0 {
		year = entry.ReleaseYear
	}
	if year == 0 {
		return fallbackModernityScore
	}
	age := s.referenceYear - year
	if age < 0 {
		age = 0
	}
	score := types.MaxScore - float64(age)*modernityDecayPerYear
	if score < modernityFloor {
		return modernityFloor
	}
	return types.ClampScore(score)
}

func strengths(perf, value, modernity float64) []string {
	out := []string{}
	if perf > strengthPerformanceMin {
		out = append(out, "high performance")
	}
	if value > strengthValueMin {
		out = append(out, "good value")
	}
	if modernity > strengthModernityMin {
		out = append(out, "current generation")
	}
	return out
}

func weaknesses(perf, value, modernity float64) []string {
	out := []string{}
	if perf < weaknessPerformanceMax {
		out = append(out, "low performance")
	}
	if value < weaknessValueMax {
		out = append(out, "poor cost performance")
	}
	if modernity < weaknessModernityMax {
		out = append(out, "aging platform")
	}
	return out
}

// action maps the mean of the three scores onto the four advisory bands.
func action(avg float64) types.RecommendedAction {
	switch {
	case avg < actionReplaceBelow:
		return types.ActionReplaceImmediately
	case avg < actionUpgradeSoonBelow:
		return types.ActionUpgradeSoon
	case avg < actionUpgradeLaterBelow:
		return types.ActionUpgradeLater
	default:
		return types.ActionKeep
	}
}

// lifespan projects remaining service months from performance and
// modernity, scaled by the usage profile.
func (s *ComponentScorer) lifespan(perf, modernity float64, profile types.UsageProfile) float64 {
	months := lifespanBaseMonths +
		lifespanPerfCoefficient*(perf-50) +
		lifespanModernCoefficient*(modernity-50)
	if mult, ok := s.lifespanMultipliers[profile]; ok {
		months *= mult
	}
	if months < lifespanMinMonths {
		return lifespanMinMonths
	}
	if months > lifespanMaxMonths {
		return lifespanMaxMonths
	}
	return months
}
