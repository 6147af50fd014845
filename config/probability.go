package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"roulette/engine"
)

//go:embed probability.yaml
var defaultProbabilityYAML []byte

// LoadProbabilityConfig reads the probability table from path, or the
// embedded default when path is empty.
func LoadProbabilityConfig(path string) (engine.ProbabilityConfig, error) {
	data := defaultProbabilityYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return engine.ProbabilityConfig{}, fmt.Errorf("failed to read probability config %s: %w", path, err)
		}
	}
	return ParseProbabilityConfig(data)
}

// ParseProbabilityConfig decodes and validates a YAML probability table.
// Unknown keys are rejected.
func ParseProbabilityConfig(data []byte) (engine.ProbabilityConfig, error) {
	var cfg engine.ProbabilityConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return engine.ProbabilityConfig{}, fmt.Errorf("failed to parse probability config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return engine.ProbabilityConfig{}, fmt.Errorf("invalid probability config: %w", err)
	}
	return cfg, nil
}
