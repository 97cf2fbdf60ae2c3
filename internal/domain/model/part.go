// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"github.com/rigmate/rigmate/internal/domain/types"
)

// Part is the ingestion shape supplied by the catalog/price collaborator.
// Specifications is an open key-value bag; engine logic never reads it
// directly and instead goes through the typed Parse*Spec constructors.
type Part struct {
	ID             string         `json:"id" yaml:"id"`
	Category       types.Category `json:"category" yaml:"category"`
	Manufacturer   string         `json:"manufacturer" yaml:"manufacturer"`
	Model          string         `json:"model,omitempty" yaml:"model,omitempty"`
	Price          float64        `json:"price" yaml:"price"`
	Specifications map[string]any `json:"specifications,omitempty" yaml:"specifications,omitempty"`
}

// Name returns the display name used for catalog lookups.
func (p Part) Name() string {
	if p.Model != "" {
		return p.Model
	}
	return p.ID
}

// PCConfiguration is one selected build: at most one part per single-part
// category, ordered lists for memory modules and storage drives.
type PCConfiguration struct {
	CPU         *Part `json:"cpu,omitempty" yaml:"cpu,omitempty"`
	GPU         *Part `json:"gpu,omitempty" yaml:"gpu,omitempty"`
	Motherboard *Part `json:"motherboard,omitempty" yaml:"motherboard,omitempty"`
	PSU         *Part `json:"psu,omitempty" yaml:"psu,omitempty"`
	Case        *Part `json:"case,omitempty" yaml:"case,omitempty"`
	Cooler      *Part `json:"cooler,omitempty" yaml:"cooler,omitempty"`

	Memory  []Part `json:"memory,omitempty" yaml:"memory,omitempty"`
	Storage []Part `json:"storage,omitempty" yaml:"storage,omitempty"`

	UsageProfile types.UsageProfile `json:"usage_profile,omitempty" yaml:"usage_profile,omitempty"`
}

// Profile returns the usage profile, defaulting to "other" when unset.
func (c *PCConfiguration) Profile() types.UsageProfile {
	if c.UsageProfile == "" {
		return types.ProfileOther
	}
	return c.UsageProfile
}

// Parts returns every selected part keyed by category slot. Multi-instance
// categories append an index to the slot name. Iteration over the returned
// slice is deterministic.
func (c *PCConfiguration) Parts() []SlottedPart {
	var out []SlottedPart
	add := func(slot string, p *Part) {
		if p != nil {
			out = append(out, SlottedPart{Slot: slot, Part: *p})
		}
	}
	add("cpu", c.CPU)
	add("gpu", c.GPU)
	add("motherboard", c.Motherboard)
	for i := range c.Memory {
		out = append(out, SlottedPart{Slot: fmt.Sprintf("memory[%d]", i), Part: c.Memory[i]})
	}
	for i := range c.Storage {
		out = append(out, SlottedPart{Slot: fmt.Sprintf("storage[%d]", i), Part: c.Storage[i]})
	}
	add("psu", c.PSU)
	add("case", c.Case)
	add("cooler", c.Cooler)
	return out
}

// SlottedPart pairs a part with the configuration slot it occupies.
type SlottedPart struct {
	Slot string
	Part Part
}

// HasCategory reports whether at least one part of the category is selected.
func (c *PCConfiguration) HasCategory(cat types.Category) bool {
	switch cat {
	case types.CategoryCPU:
		return c.CPU != nil
	case types.CategoryGPU:
		return c.GPU != nil
	case types.CategoryMotherboard:
		return c.Motherboard != nil
	case types.CategoryMemory:
		return len(c.Memory) > 0
	case types.CategoryStorage:
		return len(c.Storage) > 0
	case types.CategoryPSU:
		return c.PSU != nil
	case types.CategoryCase:
		return c.Case != nil
	case types.CategoryCooler:
		return c.Cooler != nil
	default:
		return false
	}
}

// Fingerprint returns a deterministic cache key derived from the selected
// part IDs and the usage profile. Identical configurations always produce
// the same fingerprint.
func (c *PCConfiguration) Fingerprint() string {
	ids := make([]string, 0, 8)
	for _, sp := range c.Parts() {
		ids = append(ids, sp.Part.ID)
	}
	sort.Strings(ids)

	h := fnv.New64a()
	for _, id := range ids {
		_, _ = h.Write([]byte(id))
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte(c.Profile()))
	return strconv.FormatUint(h.Sum64(), 16)
}

// normalizeToken lowercases and trims a spec token for comparison.
func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// specString reads a string spec field, returning def when absent or empty.
func specString(specs map[string]any, key, def string) string {
	if specs == nil {
		return def
	}
	if v, ok := specs[key]; ok {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return def
}

// specFloat reads a numeric spec field, tolerating the scalar shapes that
// JSON and YAML decoders produce, returning def when absent or unparsable.
func specFloat(specs map[string]any, key string, def float64) float64 {
	if specs == nil {
		return def
	}
	v, ok := specs[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return def
}

// specStrings reads a string-list spec field. Accepts []string, []any with
// string elements, or a comma-separated string. Returns nil when absent.
func specStrings(specs map[string]any, key string) []string {
	if specs == nil {
		return nil
	}
	v, ok := specs[key]
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(list) == "" {
			return nil
		}
		parts := strings.Split(list, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// specCounts reads a map spec field of connector name -> count. Accepts
// map[string]int and map[string]any with numeric values.
func specCounts(specs map[string]any, key string) map[string]int {
	if specs == nil {
		return nil
	}
	v, ok := specs[key]
	if !ok {
		return nil
	}
	switch m := v.(type) {
	case map[string]int:
		return m
	case map[string]any:
		out := make(map[string]int, len(m))
		for k, raw := range m {
			switch n := raw.(type) {
			case int:
				out[k] = n
			case int64:
				out[k] = int(n)
			case float64:
				out[k] = int(n)
			}
		}
		return out
	}
	return nil
}
