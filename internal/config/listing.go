package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sawpanic/propscore/internal/scoring"
)

// LoadListing decodes a listing document. YAML is a superset of JSON, so
// both formats are accepted. Unknown keys are rejected.
func LoadListing(path string) (scoring.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return scoring.Params{}, fmt.Errorf("failed to open listing: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var p scoring.Params
	if err := dec.Decode(&p); err != nil {
		return scoring.Params{}, fmt.Errorf("failed to decode listing %s: %w", path, err)
	}
	return p, nil
}
