package catalog

import (
	_ "embed"
)

//go:embed catalog.yaml
var embeddedData []byte

// Default builds the catalog from the embedded data file.
func Default() (*InMemoryCatalog, error) {
	return New(WithYAML(embeddedData))
}
