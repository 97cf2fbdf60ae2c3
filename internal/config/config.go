// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults; Load() layers file/env.
//   - Hand-tuned analysis thresholds live here as named fields so they can
//     be changed centrally without touching the engine.
//   - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// CatalogFile optionally points at a YAML benchmark catalog that
	// replaces the embedded data set.
	CatalogFile string `koanf:"catalog_file"`

	// CacheTTLSeconds bounds how long analysis results stay cached.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// ROITimeframeMonths is the horizon used for ROI projections.
	ROITimeframeMonths int `koanf:"roi_timeframe_months"`

	// PSUCriticalUtilization and PSUWarningUtilization are the power
	// budget bands as fractions of rated wattage.
	PSUCriticalUtilization float64 `koanf:"psu_critical_utilization"`
	PSUWarningUtilization  float64 `koanf:"psu_warning_utilization"`

	// GPUProfileMinimums maps usage profiles to minimum GPU scores.
	GPUProfileMinimums map[string]float64 `koanf:"gpu_profile_minimums"`

	// MemoryProfileTargetsGB maps usage profiles to recommended total memory.
	MemoryProfileTargetsGB map[string]float64 `koanf:"memory_profile_targets_gb"`

	// LifespanMultipliers maps usage profiles to lifespan scaling factors.
	LifespanMultipliers map[string]float64 `koanf:"lifespan_multipliers"`
}

// New creates a Config populated with defaults. The threshold values are
// hand-tuned in the original advisory tables; change them here, not in the
// engine.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		CacheTTLSeconds:        300,
		ROITimeframeMonths:     36,
		PSUCriticalUtilization: 0.90,
		PSUWarningUtilization:  0.80,
		GPUProfileMinimums: map[string]float64{
			"gaming":      70,
			"creative":    75,
			"development": 60,
			"other":       40,
		},
		MemoryProfileTargetsGB: map[string]float64{
			"gaming":      32,
			"creative":    64,
			"development": 32,
			"other":       16,
		},
		LifespanMultipliers: map[string]float64{
			"gaming": 0.8,
			"office": 1.3,
		},
	}
}
