package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Option applies a configuration option to the InMemoryCatalog.
type Option func(*InMemoryCatalog) error

// WithEntries indexes the given entries. Later entries win on key collisions.
func WithEntries(entries []Entry) Option {
	return func(c *InMemoryCatalog) error {
		for _, e := range entries {
			c.add(e)
		}
		return nil
	}
}

// dataFile mirrors the YAML document shape of the catalog data file.
type dataFile struct {
	Entries []Entry `yaml:"entries"`
}

// WithYAML parses a YAML catalog document and indexes its entries.
func WithYAML(data []byte) Option {
	return func(c *InMemoryCatalog) error {
		var doc dataFile
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%w: %v", ErrLoadCatalog, err)
		}
		for _, e := range doc.Entries {
			c.add(e)
		}
		return nil
	}
}

// WithFile loads a YAML catalog document from disk. Used when the operator
// points the service at a refreshed data file.
func WithFile(path string) Option {
	return func(c *InMemoryCatalog) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLoadCatalog, err)
		}
		return WithYAML(data)(c)
	}
}
