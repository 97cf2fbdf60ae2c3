// Package app provides the analysis orchestrator that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rigmate/rigmate/internal/adapters/cache"
	"github.com/rigmate/rigmate/internal/domain/bottleneck"
	"github.com/rigmate/rigmate/internal/domain/catalog"
	"github.com/rigmate/rigmate/internal/domain/compat"
	"github.com/rigmate/rigmate/internal/domain/model"
	"github.com/rigmate/rigmate/internal/domain/recommend"
	"github.com/rigmate/rigmate/internal/domain/scoring"
	"github.com/rigmate/rigmate/internal/domain/types"
	"github.com/rigmate/rigmate/pkg/logger"
	"github.com/rigmate/rigmate/pkg/metrics"
)

// Default orchestrator configuration.
const (
	defaultCacheTTL     = 5 * time.Minute
	defaultROITimeframe = 36
)

// overallWeights distribute category influence in the overall score.
// Categories absent from the configuration are renormalized away.
// Both maps are summed in overallOrder so identical inputs produce
// bit-identical scores.
var overallWeights = map[types.Category]float64{
	types.CategoryCPU:         0.25,
	types.CategoryGPU:         0.30,
	types.CategoryMemory:      0.15,
	types.CategoryStorage:     0.10,
	types.CategoryMotherboard: 0.05,
	types.CategoryPSU:         0.05,
	types.CategoryCase:        0.025,
	types.CategoryCooler:      0.075,
}

var overallOrder = []types.Category{
	types.CategoryCPU,
	types.CategoryGPU,
	types.CategoryMemory,
	types.CategoryStorage,
	types.CategoryMotherboard,
	types.CategoryPSU,
	types.CategoryCase,
	types.CategoryCooler,
}

// balanceCategories participate in the balance-score spread.
var balanceCategories = []types.Category{
	types.CategoryCPU,
	types.CategoryGPU,
	types.CategoryMemory,
	types.CategoryStorage,
}

// Service is the analysis orchestrator. The engine components it sequences
// are pure; all mutable state (cache, last-result snapshot) lives here.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog  catalog.Catalog
	scorer   scoring.Scorer
	compat   compat.Engine
	detector bottleneck.Detector
	plans    recommend.Generator
	results  *cache.ResultCache

	// Configuration
	catalogFile         string
	cacheTTL            time.Duration
	roiTimeframeMonths  int
	psuCritical         float64
	psuWarning          float64
	gpuMinimums         map[types.UsageProfile]float64
	memoryTargets       map[types.UsageProfile]float64
	lifespanMultipliers map[types.UsageProfile]float64
	referenceYear       int

	// In-flight dedupe and result sequencing. lastSeq grows per analysis;
	// a completed analysis only replaces the snapshot when its sequence
	// number is newer than the applied one, so a stale result can never
	// overwrite a fresher snapshot.
	flights    singleflight.Group
	lastSeq    atomic.Uint64
	appliedSeq uint64
	lastResult *model.AnalysisResult

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog injects a prebuilt benchmark catalog. Tests use this to run
// fixtures with distinct catalogs.
func WithCatalog(c catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithCatalogFile points the service at a YAML catalog on disk instead of
// the embedded data set.
func WithCatalogFile(path string) Option {
	return func(s *Service) {
		s.catalogFile = path
	}
}

// WithCacheTTL sets the result cache time-to-live.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithROITimeframe sets the projection horizon in months.
func WithROITimeframe(months int) Option {
	return func(s *Service) {
		if months > 0 {
			s.roiTimeframeMonths = months
		}
	}
}

// WithPSUBands sets the power budget utilization bands.
func WithPSUBands(critical, warning float64) Option {
	return func(s *Service) {
		if critical > 0 && warning > 0 && warning < critical {
			s.psuCritical = critical
			s.psuWarning = warning
		}
	}
}

// WithGPUMinimums sets the per-profile GPU score minimums.
func WithGPUMinimums(m map[types.UsageProfile]float64) Option {
	return func(s *Service) {
		if m != nil {
			s.gpuMinimums = m
		}
	}
}

// WithMemoryTargets sets the per-profile recommended memory totals.
func WithMemoryTargets(m map[types.UsageProfile]float64) Option {
	return func(s *Service) {
		if m != nil {
			s.memoryTargets = m
		}
	}
}

// WithLifespanMultipliers sets the per-profile lifespan scaling factors.
func WithLifespanMultipliers(m map[types.UsageProfile]float64) Option {
	return func(s *Service) {
		if m != nil {
			s.lifespanMultipliers = m
		}
	}
}

// WithReferenceYear pins the year used for modernity scoring.
func WithReferenceYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.referenceYear = year
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cacheTTL:           defaultCacheTTL,
		roiTimeframeMonths: defaultROITimeframe,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the engine components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.catalog == nil {
		var err error
		var cat *catalog.InMemoryCatalog
		if s.catalogFile != "" {
			cat, err = catalog.New(catalog.WithFile(s.catalogFile))
		} else {
			cat, err = catalog.Default()
		}
		if err != nil {
			return err
		}
		s.catalog = cat
	}
	metrics.UpdateCatalogEntries(s.catalog.Count(ctx))

	scorerOpts := []scoring.Option{}
	if s.referenceYear > 0 {
		scorerOpts = append(scorerOpts, scoring.WithReferenceYear(s.referenceYear))
	}
	if s.lifespanMultipliers != nil {
		scorerOpts = append(scorerOpts, scoring.WithLifespanMultipliers(s.lifespanMultipliers))
	}
	s.scorer = scoring.New(s.catalog, scorerOpts...)

	compatOpts := []compat.Option{}
	if s.psuCritical > 0 && s.psuWarning > 0 {
		compatOpts = append(compatOpts, compat.WithPSUBands(s.psuCritical, s.psuWarning))
	}
	s.compat = compat.New(s.catalog, compatOpts...)

	detectorOpts := []bottleneck.Option{}
	if s.gpuMinimums != nil {
		detectorOpts = append(detectorOpts, bottleneck.WithGPUMinimums(s.gpuMinimums))
	}
	if s.memoryTargets != nil {
		detectorOpts = append(detectorOpts, bottleneck.WithMemoryRecommendations(s.memoryTargets))
	}
	s.detector = bottleneck.New(s.catalog, detectorOpts...)

	s.plans = recommend.New()
	s.results = cache.New(cache.WithTTL(s.cacheTTL))

	s.started = true
	s.logger.Info(ctx, "analysis service started",
		logger.Int("catalogEntries", s.catalog.Count(ctx)),
		logger.Int("roiTimeframeMonths", s.roiTimeframeMonths),
	)
	return nil
}

// Stop releases service resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	if s.results != nil {
		s.results.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "analysis service stopped")
}

// Analyze runs the full pipeline over one configuration. Results are
// cached by configuration fingerprint; concurrent identical requests share
// a single computation.
func (s *Service) Analyze(ctx context.Context, cfg *model.PCConfiguration) (*model.AnalysisResult, error) {
	if cfg == nil {
		return nil, ErrNilConfiguration
	}
	if err := s.ensureStarted(); err != nil {
		return nil, err
	}

	fp := cfg.Fingerprint()
	if cached, ok := s.results.Get(fp); ok {
		metrics.RecordCacheHit()
		return cached, nil
	}
	metrics.RecordCacheMiss()

	v, err, _ := s.flights.Do(fp, func() (any, error) {
		seq := s.lastSeq.Add(1)
		start := time.Now()

		result := s.runAnalysis(ctx, cfg, fp)

		metrics.RecordAnalysis(float64(time.Since(start).Nanoseconds()) / 1e6)
		s.results.Set(fp, result)
		metrics.UpdateCacheEntries(s.results.Len())
		s.applyResult(seq, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.AnalysisResult), nil
}

// CheckCompatibility runs only the rule engine over one configuration.
func (s *Service) CheckCompatibility(ctx context.Context, cfg *model.PCConfiguration) (model.CompatibilityResult, error) {
	if cfg == nil {
		return model.CompatibilityResult{}, ErrNilConfiguration
	}
	if err := s.ensureStarted(); err != nil {
		return model.CompatibilityResult{}, err
	}
	return s.compat.Check(ctx, cfg), nil
}

// Recommend runs the full pipeline and returns only the upgrade plans.
func (s *Service) Recommend(ctx context.Context, cfg *model.PCConfiguration) ([]model.UpgradeRecommendation, error) {
	result, err := s.Analyze(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return result.Recommendations, nil
}

// Latest returns the most recently applied analysis snapshot, or nil when
// no analysis completed yet.
func (s *Service) Latest() *model.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult
}

// applyResult installs a completed analysis as the latest snapshot unless
// a newer one was applied while it ran.
func (s *Service) applyResult(seq uint64, result *model.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.appliedSeq {
		metrics.RecordStaleResultDiscarded()
		return
	}
	s.appliedSeq = seq
	s.lastResult = result
}

func (s *Service) ensureStarted() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// runAnalysis sequences the pure engine components and assembles the
// report. Identical inputs always produce identical output.
func (s *Service) runAnalysis(ctx context.Context, cfg *model.PCConfiguration, fp string) *model.AnalysisResult {
	profile := cfg.Profile()

	componentAnalysis := map[string]model.ComponentPerformance{}
	for _, sp := range cfg.Parts() {
		componentAnalysis[sp.Slot] = s.scorer.Score(ctx, sp.Part, profile)
	}

	compatibility := s.compat.Check(ctx, cfg)
	bottlenecks := s.detector.Detect(ctx, cfg)

	for slot, perf := range componentAnalysis {
		perf.CompatibilityWithOthers = partCompatibility(perf.PartID, compatibility)
		componentAnalysis[slot] = perf
	}

	overall := s.overallScore(cfg, componentAnalysis)
	plans := s.plans.Generate(ctx, bottlenecks, overall)
	for i := range plans {
		roi := recommend.CalculateROI(plans[i], s.roiTimeframeMonths)
		plans[i].ROI = &roi
	}

	result := &model.AnalysisResult{
		Fingerprint:        fp,
		OverallScore:       overall,
		BalanceScore:       balanceScore(cfg, componentAnalysis),
		ComponentAnalysis:  componentAnalysis,
		Bottlenecks:        bottlenecks,
		PerformanceMetrics: s.performanceMetrics(cfg, componentAnalysis),
		Compatibility:      compatibility,
		Recommendations:    plans,
	}

	for _, b := range bottlenecks {
		metrics.RecordBottleneck(string(b.Type), string(b.Severity))
	}
	if !compatibility.IsCompatible {
		metrics.RecordIncompatibleConfiguration()
	}
	metrics.RecordRecommendations(len(plans))

	s.logger.Debug(ctx, "analysis complete",
		logger.String("fingerprint", fp),
		logger.Float64("overallScore", result.OverallScore),
		logger.Int("bottlenecks", len(bottlenecks)),
		logger.Int("plans", len(plans)),
	)
	return result
}

// categoryScore averages the performance scores of a category's parts,
// summing in sorted slot order.
func categoryScore(cat types.Category, analysis map[string]model.ComponentPerformance) (float64, bool) {
	slots := make([]string, 0, len(analysis))
	for slot := range analysis {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	sum, n := 0.0, 0
	for _, slot := range slots {
		if perf := analysis[slot]; perf.Category == cat {
			sum += perf.PerformanceScore
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// overallScore is the weighted mean of present category scores.
func (s *Service) overallScore(cfg *model.PCConfiguration, analysis map[string]model.ComponentPerformance) float64 {
	weightSum, scoreSum := 0.0, 0.0
	for _, cat := range overallOrder {
		if score, ok := categoryScore(cat, analysis); ok {
			weightSum += overallWeights[cat]
			scoreSum += score * overallWeights[cat]
		}
	}
	if weightSum == 0 {
		return 0
	}
	return types.ClampScore(scoreSum / weightSum)
}

// balanceScore shrinks with the spread between the strongest and weakest
// core subsystem. A single-category build is trivially balanced.
func balanceScore(cfg *model.PCConfiguration, analysis map[string]model.ComponentPerformance) float64 {
	lowest, highest := 0.0, 0.0
	n := 0
	for _, cat := range balanceCategories {
		score, ok := categoryScore(cat, analysis)
		if !ok {
			continue
		}
		if n == 0 || score < lowest {
			lowest = score
		}
		if n == 0 || score > highest {
			highest = score
		}
		n++
	}
	if n < 2 {
		return types.MaxScore
	}
	return types.ClampScore(types.MaxScore - (highest - lowest))
}

// performanceMetrics assembles the whole-system summary.
func (s *Service) performanceMetrics(cfg *model.PCConfiguration, analysis map[string]model.ComponentPerformance) model.PerformanceMetrics {
	cpuScore, _ := categoryScore(types.CategoryCPU, analysis)
	gpuScore, _ := categoryScore(types.CategoryGPU, analysis)
	memScore, _ := categoryScore(types.CategoryMemory, analysis)
	storageScore, _ := categoryScore(types.CategoryStorage, analysis)

	draw := compat.TotalPowerDraw(cfg)
	utilization := 0.0
	if cfg.PSU != nil {
		wattage := model.ParsePSUSpec(*cfg.PSU).Wattage
		if wattage <= 0 {
			wattage = model.DefaultPSUWattage
		}
		utilization = draw / wattage
	}
	return model.PerformanceMetrics{
		CPUScore:       cpuScore,
		GPUScore:       gpuScore,
		MemoryScore:    memScore,
		StorageScore:   storageScore,
		TotalPowerDraw: draw,
		PSUUtilization: utilization,
	}
}

// partCompatibility derives a per-part compatibility score from the issues
// and warnings that name the part.
func partCompatibility(partID string, result model.CompatibilityResult) float64 {
	score := float64(types.MaxScore)
	for _, is := range result.Issues {
		if !containsPart(is.AffectedParts, partID) {
			continue
		}
		if is.MustResolve {
			score -= 30
		} else {
			score -= 10
		}
	}
	for _, w := range result.Warnings {
		if containsPart(w.AffectedParts, partID) {
			score -= 5
		}
	}
	return types.ClampScore(score)
}

func containsPart(parts []string, id string) bool {
	for _, p := range parts {
		if p == id {
			return true
		}
	}
	return false
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":              s.started,
		"roi_timeframe_months": s.roiTimeframeMonths,
	}
	if s.started {
		stats["catalog_entries"] = s.catalog.Count(context.Background())
		stats["cache_entries"] = s.results.Len()
		stats["analyses_applied"] = s.appliedSeq
		if s.lastResult != nil {
			stats["last_overall_score"] = s.lastResult.OverallScore
		}
	}
	return stats
}
