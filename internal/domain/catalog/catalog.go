// Package catalog defines the benchmark catalog interface and its
// in-memory implementation backed by a YAML data file.
package catalog

import (
	"context"
	"regexp"
	"strings"

	"github.com/rigmate/rigmate/internal/domain/types"
)

// NeutralScore is returned for parts the catalog does not know. A miss is
// never an error; it only lowers confidence.
const NeutralScore = 50

// Entry is one benchmark record with compatibility metadata.
type Entry struct {
	Category     types.Category `yaml:"category"`
	Manufacturer string         `yaml:"manufacturer"`
	Model        string         `yaml:"model"`
	Score        float64        `yaml:"score"`
	ReleaseYear  int            `yaml:"release_year,omitempty"`
	Socket       string         `yaml:"socket,omitempty"`
	Generation   float64        `yaml:"generation,omitempty"`
	MemoryTypes  []string       `yaml:"memory_types,omitempty"`
}

// Catalog provides read access to benchmark data.
type Catalog interface {
	// Lookup resolves an entry by category, manufacturer and model name.
	// The bool is false on a miss, in which case the entry carries the
	// neutral default score.
	Lookup(ctx context.Context, cat types.Category, manufacturer, model string) (Entry, bool)

	// Count returns the number of entries loaded.
	Count(ctx context.Context) int
}

// key is the composite lookup key. Using a struct key instead of string
// concatenation avoids separator collisions between its fields.
type key struct {
	category     types.Category
	manufacturer string
	model        string
}

// modelPatterns extract the recognizable model token from free-form part
// names, e.g. "NVIDIA GeForce RTX 4080 SUPER 16GB" -> "rtx 4080 super".
var modelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:rtx|gtx|rx|arc)\s*\d{3,4}\s*(?:ti\s*super|ti|super|xtx|xt|gre)?`),
	regexp.MustCompile(`i[3579]-?\d{4,5}[a-z]{0,2}`),
	regexp.MustCompile(`ryzen\s*[3579]\s*\d{4}[a-z0-9]{0,3}`),
	regexp.MustCompile(`threadripper\s*\d{4}[a-z]{0,3}`),
}

// modelKey is the manufacturer-agnostic lookup key.
type modelKey struct {
	category types.Category
	model    string
}

// InMemoryCatalog implements Catalog with normalized map lookups and a
// secondary model-token index for fuzzy name matching.
type InMemoryCatalog struct {
	entries map[key]Entry
	// models indexes entries by category and model alone; the first entry
	// loaded for a model claims it, so lookups that fall back past the
	// manufacturer resolve the same way every time.
	models map[modelKey]Entry
	// tokens indexes entries by extracted model token per category so that
	// vendor-decorated names still resolve.
	tokens map[types.Category]map[string]Entry
}

// New creates an InMemoryCatalog with configuration options. With no
// options the catalog is empty; use Default for the embedded data set.
func New(opts ...Option) (*InMemoryCatalog, error) {
	c := &InMemoryCatalog{
		entries: make(map[key]Entry),
		models:  make(map[modelKey]Entry),
		tokens:  make(map[types.Category]map[string]Entry),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// add indexes one entry under its composite key and model token.
func (c *InMemoryCatalog) add(e Entry) {
	k := key{
		category:     types.Category(normalize(string(e.Category))),
		manufacturer: normalize(e.Manufacturer),
		model:        normalize(e.Model),
	}
	c.entries[k] = e

	mk := modelKey{category: k.category, model: k.model}
	if _, ok := c.models[mk]; !ok {
		c.models[mk] = e
	}

	if tok := extractModelToken(e.Model); tok != "" {
		byToken, ok := c.tokens[k.category]
		if !ok {
			byToken = make(map[string]Entry)
			c.tokens[k.category] = byToken
		}
		byToken[tok] = e
	}
}

// Lookup resolves an entry; a miss yields a neutral-score entry and false.
func (c *InMemoryCatalog) Lookup(_ context.Context, cat types.Category, manufacturer, model string) (Entry, bool) {
	nc := types.Category(normalize(string(cat)))
	nm := normalize(model)

	if e, ok := c.entries[key{category: nc, manufacturer: normalize(manufacturer), model: nm}]; ok {
		return e, true
	}
	// Manufacturer strings vary between retailers; retry on model alone.
	if e, ok := c.models[modelKey{category: nc, model: nm}]; ok {
		return e, true
	}
	// Fall back to the recognizable model token.
	if tok := extractModelToken(model); tok != "" {
		if e, ok := c.tokens[nc][tok]; ok {
			return e, true
		}
	}
	return Entry{Category: cat, Manufacturer: manufacturer, Model: model, Score: NeutralScore}, false
}

// Count returns the number of entries loaded.
func (c *InMemoryCatalog) Count(_ context.Context) int {
	return len(c.entries)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalize lowercases, trims and collapses whitespace in a name.
func normalize(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// extractModelToken returns the normalized model token of a part name, or
// "" when no known naming pattern matches.
func extractModelToken(name string) string {
	n := normalize(name)
	for _, re := range modelPatterns {
		if m := re.FindString(n); m != "" {
			return strings.TrimSpace(whitespaceRun.ReplaceAllString(strings.ReplaceAll(m, "-", ""), " "))
		}
	}
	return ""
}
