// Package bottleneck identifies which components limit overall system
// performance, with severity classification.
package bottleneck

import (
	"context"
	"fmt"
	"sort"

	"github.com/rigmate/rigmate/internal/domain/catalog"
	"github.com/rigmate/rigmate/internal/domain/compat"
	"github.com/rigmate/rigmate/internal/domain/model"
	"github.com/rigmate/rigmate/internal/domain/types"
)

// Detection thresholds and advisory constants. Hand-tuned values carried
// from the original tables; tune through config, not in place.
const (
	cpuGPURatioCritical = 0.4
	cpuGPURatioMajor    = 0.5
	cpuGPURatioModerate = 0.6

	gpuDeficitCritical = 30
	gpuDeficitMajor    = 20

	memoryDeficitCriticalGB = 32
	memoryDeficitMajorGB    = 16

	psuUtilizationCritical = 0.95
	psuUtilizationMajor    = 0.90
	psuUtilizationModerate = 0.80

	coolingRatioCritical = 1.0
	coolingRatioMajor    = 1.1
	coolingRatioModerate = 1.2

	generationGapLimit = 1

	// Improvement potential by severity, except storage which is fixed.
	potentialCritical = 75
	potentialMajor    = 55
	potentialModerate = 35
	potentialStorage  = 85

	// Upgrade cost estimates in JPY.
	costCPUUpgrade      = 45000
	costGPUUpgrade      = 80000
	costMemoryUpgrade   = 15000
	costStorageUpgrade  = 12000
	costPSUUpgrade      = 12000
	costCoolingUpgrade  = 8000
	costPlatformUpgrade = 70000
)

// gpuProfileMinimums is the minimum GPU score each usage profile expects.
var gpuProfileMinimums = map[types.UsageProfile]float64{
	types.ProfileGaming:      70,
	types.ProfileCreative:    75,
	types.ProfileDevelopment: 60,
	types.ProfileOther:       40,
}

// memoryProfileRecommendedGB is the recommended total memory per profile.
var memoryProfileRecommendedGB = map[types.UsageProfile]float64{
	types.ProfileGaming:      32,
	types.ProfileCreative:    64,
	types.ProfileDevelopment: 32,
	types.ProfileOther:       16,
}

// Detector finds performance limiters in a configuration.
type Detector interface {
	Detect(ctx context.Context, cfg *model.PCConfiguration) []model.BottleneckResult
}

// Option applies a configuration option to the RuleDetector.
type Option func(*RuleDetector)

// WithGPUMinimums overrides the per-profile GPU score minimums.
func WithGPUMinimums(m map[types.UsageProfile]float64) Option {
	return func(d *RuleDetector) {
		for p, v := range m {
			if v > 0 {
				d.gpuMinimums[p] = v
			}
		}
	}
}

// WithMemoryRecommendations overrides the per-profile memory targets.
func WithMemoryRecommendations(m map[types.UsageProfile]float64) Option {
	return func(d *RuleDetector) {
		for p, v := range m {
			if v > 0 {
				d.memoryTargets[p] = v
			}
		}
	}
}

// RuleDetector implements Detector with one independent rule per candidate
// bottleneck type. A rule that does not trigger emits nothing.
type RuleDetector struct {
	catalog       catalog.Catalog
	gpuMinimums   map[types.UsageProfile]float64
	memoryTargets map[types.UsageProfile]float64
}

// New creates a RuleDetector reading benchmark data from cat.
func New(cat catalog.Catalog, opts ...Option) *RuleDetector {
	d := &RuleDetector{
		catalog:       cat,
		gpuMinimums:   map[types.UsageProfile]float64{},
		memoryTargets: map[types.UsageProfile]float64{},
	}
	for p, v := range gpuProfileMinimums {
		d.gpuMinimums[p] = v
	}
	for p, v := range memoryProfileRecommendedGB {
		d.memoryTargets[p] = v
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect runs every rule and returns results sorted by severity,
// descending; ties preserve detection order.
func (d *RuleDetector) Detect(ctx context.Context, cfg *model.PCConfiguration) []model.BottleneckResult {
	rules := []func(context.Context, *model.PCConfiguration) *model.BottleneckResult{
		d.cpuGPURatio,
		d.gpuForProfile,
		d.memoryForProfile,
		d.storageClass,
		d.psuUtilization,
		d.coolingHeadroom,
		d.generationGap,
	}

	out := []model.BottleneckResult{}
	for _, rule := range rules {
		if r := rule(ctx, cfg); r != nil {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Rank() > out[j].Severity.Rank()
	})
	return out
}

// score looks up a part's benchmark score, or 0 when the part is absent.
func (d *RuleDetector) score(ctx context.Context, cat types.Category, p *model.Part) float64 {
	if p == nil {
		return 0
	}
	entry, _ := d.catalog.Lookup(ctx, cat, p.Manufacturer, p.Name())
	return entry.Score
}

// cpuGPURatio flags CPUs too slow for the paired GPU.
func (d *RuleDetector) cpuGPURatio(ctx context.Context, cfg *model.PCConfiguration) *model.BottleneckResult {
	if cfg.CPU == nil || cfg.GPU == nil {
		return nil
	}
	gpuScore := d.score(ctx, types.CategoryGPU, cfg.GPU)
	if gpuScore <= 0 {
		return nil
	}
	ratio := d.score(ctx, types.CategoryCPU, cfg.CPU) / gpuScore

	var severity types.Severity
	switch {
	case ratio < cpuGPURatioCritical:
		severity = types.SeverityCritical
	case ratio < cpuGPURatioMajor:
		severity = types.SeverityMajor
	case ratio < cpuGPURatioModerate:
		severity = types.SeverityModerate
	default:
		return nil
	}
	return &model.BottleneckResult{
		Type:                 types.BottleneckCPU,
		Severity:             severity,
		Description:          fmt.Sprintf("CPU limits the GPU: score ratio %.2f", ratio),
		ImprovementPotential: potentialFor(severity),
		CostEstimate:         costCPUUpgrade,
		DifficultyLevel:      "hard",
		AffectedParts:        []string{cfg.CPU.ID},
		DependentUpgrades:    []string{"verify motherboard socket supports the replacement CPU"},
	}
}

// gpuForProfile flags GPUs below the usage profile's expectation.
func (d *RuleDetector) gpuForProfile(ctx context.Context, cfg *model.PCConfiguration) *model.BottleneckResult {
	profile := cfg.Profile()
	min, ok := d.gpuMinimums[profile]
	if !ok {
		min = d.gpuMinimums[types.ProfileOther]
	}
	deficit := min - d.score(ctx, types.CategoryGPU, cfg.GPU)
	if deficit <= 0 {
		return nil
	}

	var severity types.Severity
	switch {
	case deficit > gpuDeficitCritical:
		severity = types.SeverityCritical
	case deficit > gpuDeficitMajor:
		severity = types.SeverityMajor
	default:
		severity = types.SeverityModerate
	}
	affected := []string{"gpu"}
	if cfg.GPU != nil {
		affected = []string{cfg.GPU.ID}
	}
	return &model.BottleneckResult{
		Type:                 types.BottleneckGPU,
		Severity:             severity,
		Description:          fmt.Sprintf("GPU is %.0f points below the %s profile target", deficit, profile),
		ImprovementPotential: potentialFor(severity),
		CostEstimate:         costGPUUpgrade,
		DifficultyLevel:      "moderate",
		AffectedParts:        affected,
		DependentUpgrades:    []string{"check PSU wattage and connectors for the replacement GPU", "check case clearance for the replacement GPU"},
	}
}

// memoryForProfile flags builds short on total memory for their workload.
func (d *RuleDetector) memoryForProfile(_ context.Context, cfg *model.PCConfiguration) *model.BottleneckResult {
	profile := cfg.Profile()
	target, ok := d.memoryTargets[profile]
	if !ok {
		target = d.memoryTargets[types.ProfileOther]
	}
	totalGB := 0.0
	affected := []string{}
	for i := range cfg.Memory {
		totalGB += model.ParseMemorySpec(cfg.Memory[i]).CapacityGB
		affected = append(affected, cfg.Memory[i].ID)
	}
	deficit := target - totalGB
	if deficit <= 0 {
		return nil
	}
	if len(affected) == 0 {
		affected = []string{"memory"}
	}

	var severity types.Severity
	switch {
	case deficit >= memoryDeficitCriticalGB:
		severity = types.SeverityCritical
	case deficit >= memoryDeficitMajorGB:
		severity = types.SeverityMajor
	default:
		severity = types.SeverityModerate
	}
	return &model.BottleneckResult{
		Type:                 types.BottleneckMemory,
		Severity:             severity,
		Description:          fmt.Sprintf("%.0fGB installed vs %.0fGB recommended for the %s profile", totalGB, target, profile),
		ImprovementPotential: potentialFor(severity),
		CostEstimate:         costMemoryUpgrade,
		DifficultyLevel:      "easy",
		AffectedParts:        affected,
	}
}

// storageClass flags configurations with no SSD/NVMe device. Presence of a
// single solid-state drive suppresses the check entirely.
func (d *RuleDetector) storageClass(_ context.Context, cfg *model.PCConfiguration) *model.BottleneckResult {
	affected := []string{}
	for i := range cfg.Storage {
		if model.ParseStorageSpec(cfg.Storage[i]).IsSolidState() {
			return nil
		}
		affected = append(affected, cfg.Storage[i].ID)
	}
	if len(affected) == 0 {
		affected = []string{"storage"}
	}
	return &model.BottleneckResult{
		Type:                 types.BottleneckStorage,
		Severity:             types.SeverityMajor,
		Description:          "no SSD or NVMe device; system responsiveness is bound by mechanical storage",
		ImprovementPotential: potentialStorage,
		CostEstimate:         costStorageUpgrade,
		DifficultyLevel:      "easy",
		AffectedParts:        affected,
	}
}

// psuUtilization re-expresses a strained power budget as a bottleneck.
func (d *RuleDetector) psuUtilization(_ context.Context, cfg *model.PCConfiguration) *model.BottleneckResult {
	if cfg.PSU == nil {
		return nil
	}
	wattage := model.ParsePSUSpec(*cfg.PSU).Wattage
	if wattage <= 0 {
		wattage = model.DefaultPSUWattage
	}
	draw := compat.TotalPowerDraw(cfg)
	if draw <= 0 {
		return nil
	}
	utilization := draw / wattage

	var severity types.Severity
	switch {
	case utilization > psuUtilizationCritical:
		severity = types.SeverityCritical
	case utilization > psuUtilizationMajor:
		severity = types.SeverityMajor
	case utilization > psuUtilizationModerate:
		severity = types.SeverityModerate
	default:
		return nil
	}
	return &model.BottleneckResult{
		Type:                 types.BottleneckPSU,
		Severity:             severity,
		Description:          fmt.Sprintf("PSU utilization %.0f%% of %.0fW", utilization*100, wattage),
		ImprovementPotential: potentialFor(severity),
		CostEstimate:         costPSUUpgrade,
		DifficultyLevel:      "moderate",
		AffectedParts:        []string{cfg.PSU.ID},
	}
}

// coolingHeadroom compares cooler capacity against CPU heat output.
func (d *RuleDetector) coolingHeadroom(_ context.Context, cfg *model.PCConfiguration) *model.BottleneckResult {
	if cfg.Cooler == nil || cfg.CPU == nil {
		return nil
	}
	capacity := model.ParseCoolerSpec(*cfg.Cooler).CoolingCapacityWatts
	if capacity <= 0 {
		return nil
	}
	tdp := model.ParseCPUSpec(*cfg.CPU).TDPWatts
	if tdp <= 0 {
		tdp = model.DefaultCPUTDPWatts
	}
	ratio := capacity / tdp

	var severity types.Severity
	switch {
	case ratio < coolingRatioCritical:
		severity = types.SeverityCritical
	case ratio < coolingRatioMajor:
		severity = types.SeverityMajor
	case ratio < coolingRatioModerate:
		severity = types.SeverityModerate
	default:
		return nil
	}
	return &model.BottleneckResult{
		Type:                 types.BottleneckCooling,
		Severity:             severity,
		Description:          fmt.Sprintf("cooler capacity %.0fW against a %.0fW CPU leaves a %.2fx margin", capacity, tdp, ratio),
		ImprovementPotential: potentialFor(severity),
		CostEstimate:         costCoolingUpgrade,
		DifficultyLevel:      "moderate",
		AffectedParts:        []string{cfg.Cooler.ID, cfg.CPU.ID},
	}
}

// generationGap flags motherboard/CPU pairings more than one generation
// apart. Physically valid on a shared socket, but it limits features and
// the upgrade path, so it surfaces as a compatibility-type bottleneck.
func (d *RuleDetector) generationGap(ctx context.Context, cfg *model.PCConfiguration) *model.BottleneckResult {
	if cfg.CPU == nil || cfg.Motherboard == nil {
		return nil
	}
	cpuGen := model.ParseCPUSpec(*cfg.CPU).Generation
	if cpuGen == 0 {
		if entry, ok := d.catalog.Lookup(ctx, types.CategoryCPU, cfg.CPU.Manufacturer, cfg.CPU.Name()); ok {
			cpuGen = entry.Generation
		}
	}
	mbGen := model.ParseMotherboardSpec(*cfg.Motherboard).Generation
	if mbGen == 0 {
		if entry, ok := d.catalog.Lookup(ctx, types.CategoryMotherboard, cfg.Motherboard.Manufacturer, cfg.Motherboard.Name()); ok {
			mbGen = entry.Generation
		}
	}
	if cpuGen == 0 || mbGen == 0 {
		return nil
	}
	gap := cpuGen - mbGen
	if gap < 0 {
		gap = -gap
	}
	if gap <= generationGapLimit {
		return nil
	}
	return &model.BottleneckResult{
		Type:                 types.BottleneckCompatibility,
		Severity:             types.SeverityMajor,
		Description:          fmt.Sprintf("motherboard and CPU are %.0f generations apart; platform features and upgrade path are limited", gap),
		ImprovementPotential: potentialFor(types.SeverityMajor),
		CostEstimate:         costPlatformUpgrade,
		DifficultyLevel:      "hard",
		AffectedParts:        []string{cfg.Motherboard.ID, cfg.CPU.ID},
		DependentUpgrades:    []string{"a platform refresh replaces motherboard and CPU together"},
	}
}

func potentialFor(s types.Severity) float64 {
	switch s {
	case types.SeverityCritical:
		return potentialCritical
	case types.SeverityMajor:
		return potentialMajor
	default:
		return potentialModerate
	}
}
