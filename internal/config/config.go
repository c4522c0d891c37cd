// Package config loads environment fallbacks and the optional YAML
// tuning file that overrides the search constants.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"loop-route-service/internal/domain"
)

// Get returns an environment variable or the fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// tuningFile mirrors domain.Tuning with optional YAML fields so an
// operator can override a subset of the constants.
type tuningFile struct {
	Attempts            *int     `yaml:"attempts"`
	RoadFactor          *float64 `yaml:"road_factor"`
	LegConservatism     *float64 `yaml:"leg_conservatism"`
	OverTolerance       *float64 `yaml:"over_tolerance"`
	StepProximityWeight *float64 `yaml:"step_proximity_weight"`
	GreedyBias          *float64 `yaml:"greedy_bias"`
	ExplorationWindow   *int     `yaml:"exploration_window"`
	ClosureWeight       *float64 `yaml:"closure_weight"`
	SpacingWeight       *float64 `yaml:"spacing_weight"`
	DeviationBand       *float64 `yaml:"deviation_band"`
	TopVerify           *int     `yaml:"top_verify"`
}

// LoadTuning reads the tuning file at path and merges it over the
// defaults. A missing file is not an error; the defaults apply.
func LoadTuning(path string) (domain.Tuning, error) {
	t := domain.DefaultTuning()

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return t, fmt.Errorf("load tuning: read %q: %w", path, err)
	}

	var f tuningFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return t, fmt.Errorf("load tuning: parse %q: %w", path, err)
	}

	if f.Attempts != nil {
		t.Attempts = *f.Attempts
	}
	if f.RoadFactor != nil {
		t.RoadFactor = *f.RoadFactor
	}
	if f.LegConservatism != nil {
		t.LegConservatism = *f.LegConservatism
	}
	if f.OverTolerance != nil {
		t.OverTolerance = *f.OverTolerance
	}
	if f.StepProximityWeight != nil {
		t.StepProximityWeight = *f.StepProximityWeight
	}
	if f.GreedyBias != nil {
		t.GreedyBias = *f.GreedyBias
	}
	if f.ExplorationWindow != nil {
		t.ExplorationWindow = *f.ExplorationWindow
	}
	if f.ClosureWeight != nil {
		t.ClosureWeight = *f.ClosureWeight
	}
	if f.SpacingWeight != nil {
		t.SpacingWeight = *f.SpacingWeight
	}
	if f.DeviationBand != nil {
		t.DeviationBand = *f.DeviationBand
	}
	if f.TopVerify != nil {
		t.TopVerify = *f.TopVerify
	}

	return t, nil
}
