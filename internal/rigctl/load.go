package rigctl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rigmate/rigmate/internal/domain/model"
)

// loadBuild reads a build file into a configuration.
func loadBuild(path string) (*model.PCConfiguration, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read build file: %w", err)
	}
	var cfg model.PCConfiguration
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse build file: %w", err)
	}
	if len(cfg.Parts()) == 0 {
		return nil, fmt.Errorf("build file %s lists no parts", path)
	}
	return &cfg, nil
}
