package compat

import (
	"sort"
	"strings"
)

// jedecMaxSpeeds holds the highest JEDEC-standard transfer rate per memory
// type. Modules clocked above these run an overclock profile.
var jedecMaxSpeeds = map[string]float64{
	"ddr3": 2133,
	"ddr4": 3200,
	"ddr5": 6400,
}

// jedecMaxSpeed returns the JEDEC ceiling for a memory type. Unknown types
// report false and skip the speed check.
func jedecMaxSpeed(memType string) (float64, bool) {
	max, ok := jedecMaxSpeeds[strings.ToLower(strings.TrimSpace(memType))]
	return max, ok
}

// connectorProviders maps a required connector to the PSU connector names
// that can physically serve it, in preference order. A 6+2pin splits into
// either PCIe requirement; a 4+4pin serves both CPU connector sizes.
var connectorProviders = map[string][]string{
	"24pin":     {"24pin"},
	"8pin_cpu":  {"8pin_cpu", "4+4pin"},
	"4pin_cpu":  {"4pin_cpu", "4+4pin", "8pin_cpu"},
	"6pin_pcie": {"6pin_pcie", "6+2pin", "8pin_pcie"},
	"8pin_pcie": {"8pin_pcie", "6+2pin"},
	"12vhpwr":   {"12vhpwr", "16pin"},
	"16pin":     {"16pin", "12vhpwr"},
}

// providersOf lists the PSU connectors that satisfy a requirement. Unknown
// requirements match only their own name.
func providersOf(required string) []string {
	key := strings.ToLower(strings.TrimSpace(required))
	if providers, ok := connectorProviders[key]; ok {
		return providers
	}
	return []string{key}
}

// containsFold reports whether list contains s, case-insensitively.
func containsFold(list []string, s string) bool {
	for _, e := range list {
		if strings.EqualFold(strings.TrimSpace(e), strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}

// sortedKeys returns map keys in stable order so check output is
// deterministic across runs.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
