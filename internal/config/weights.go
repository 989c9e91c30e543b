package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sawpanic/propscore/internal/scoring"
)

// WeightsConfig is the on-disk shape of a weight table.
//
//	description: favour location
//	weights:
//	  price: 0.3
//	  location: 0.4
type WeightsConfig struct {
	Description string             `yaml:"description"`
	Weights     map[string]float64 `yaml:"weights"`
}

// LoadWeights reads a YAML weight table. Factors the file leaves out keep
// their default weight; the merged table must validate.
func LoadWeights(path string) (scoring.Weights, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights config: %w", err)
	}

	var cfg WeightsConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weights config: %w", err)
	}

	overrides := make(map[scoring.Factor]float64, len(cfg.Weights))
	for name, v := range cfg.Weights {
		f, err := scoring.ParseFactor(name)
		if err != nil {
			return nil, fmt.Errorf("weights config %s: %w", path, err)
		}
		overrides[f] = v
	}

	w := scoring.DefaultWeights().With(overrides)
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("weights config %s: %w", path, err)
	}
	return w, nil
}

// ParseWeightOverrides parses "price=0.5,external=0" style flag values.
func ParseWeightOverrides(pairs []string) (map[scoring.Factor]float64, error) {
	overrides := make(map[scoring.Factor]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("%w: override %q is not factor=weight", scoring.ErrInvalidWeights, pair)
		}
		f, err := scoring.ParseFactor(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: override %q: %v", scoring.ErrInvalidWeights, pair, err)
		}
		overrides[f] = v
	}
	return overrides, nil
}

// ResolveWeights loads path (or the defaults when path is empty) and applies
// overrides on top.
func ResolveWeights(path string, overrides map[scoring.Factor]float64) (scoring.Weights, error) {
	w := scoring.DefaultWeights()
	if path != "" {
		loaded, err := LoadWeights(path)
		if err != nil {
			return nil, err
		}
		w = loaded
	}

	w = w.With(overrides)
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}
