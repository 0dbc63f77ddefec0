// Package simevents drives the acceleration engine with scripted scroll
// scenarios through the loopback hook and verifies the outcome. It replaces
// "run the daemon and wiggle the wheel" as the diagnostic workflow.
package simevents

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/flick/pkg/logger"
)

// Config holds configuration for a simulator run.
type Config struct {
	ScenarioFile string        // YAML scenario file; empty runs the built-in set
	ReportFile   string        // JSON report output; empty skips the report
	Verbose      bool          // Enable verbose logging
	Logger       logger.Logger // Structured logger; nil disables logging
}

// Step is one scripted scroll notification.
type Step struct {
	AtMS float64 `yaml:"at_ms"` // offset from scenario start
	DX   float64 `yaml:"dx"`
	DY   float64 `yaml:"dy"`
}

// Expect describes the assertions checked after a scenario.
type Expect struct {
	NoInjections bool `yaml:"no_injections"` // no synthetic events at all
	MinInjected  int  `yaml:"min_injected"`  // at least this many injections
	MaxInjected  int  `yaml:"max_injected"`  // 0 = unbounded
	UnitSteps    bool `yaml:"unit_steps"`    // every injection is a unit step
}

// Scenario is a scripted engine run with a fixed configuration.
type Scenario struct {
	Name       string  `yaml:"name"`
	Backend    string  `yaml:"backend"` // discrete or continuous
	Multiplier float64 `yaml:"multiplier"`
	Exp        float64 `yaml:"exp"`
	MaxDelta   float64 `yaml:"max_delta"` // 0 = backend default
	Steps      []Step  `yaml:"steps"`
	Expect     Expect  `yaml:"expect"`
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadScenarios parses a YAML scenario file.
func LoadScenarios(path string) ([]Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios: %w", err)
	}
	var f scenarioFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios in %s", path)
	}
	return f.Scenarios, nil
}
