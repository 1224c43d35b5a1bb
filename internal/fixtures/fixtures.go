// Package fixtures loads named canonicalization and meter-bound scenarios
// from an embedded YAML file so the concrete test data is data, not
// hardcoded Go literals scattered across test files.
package fixtures

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var scenariosYAML []byte

// CanonScenario is one canonicalization literal test scenario.
type CanonScenario struct {
	Name         string `yaml:"name"`
	Input        string `yaml:"input"`
	WantCanonical string `yaml:"want_canonical,omitempty"`
	WantErrorKind string `yaml:"want_error_kind,omitempty"`
	WantErrorPath string `yaml:"want_error_path,omitempty"`
}

// MeterScenario is one verifier meter-bound literal test scenario.
type MeterScenario struct {
	Name        string `yaml:"name"`
	CapUnit     string `yaml:"cap_unit"`
	CapTag      string `yaml:"cap_tag"`
	CapValue    string `yaml:"cap_value"`
	UsedUnit    string `yaml:"used_unit"`
	UsedTag     string `yaml:"used_tag"`
	UsedValue   string `yaml:"used_value"`
	WantVerdict string `yaml:"want_verdict"`
}

// Scenarios is the top-level fixture document.
type Scenarios struct {
	Canon []CanonScenario `yaml:"canon"`
	Meter []MeterScenario `yaml:"meter"`
}

// Load parses the embedded scenarios.yaml fixture document.
func Load() (*Scenarios, error) {
	var s Scenarios
	if err := yaml.Unmarshal(scenariosYAML, &s); err != nil {
		return nil, fmt.Errorf("fixtures: %w", err)
	}
	return &s, nil
}
