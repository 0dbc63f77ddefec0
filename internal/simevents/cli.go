package simevents

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/flick/pkg/logger"
)

// File permission constants.
const reportFilePermission = 0600

// Run executes all scenarios and optionally writes a JSON report. It
// returns an error when any scenario failed its expectations.
func Run(ctx context.Context, config *Config) error {
	scenarios := DefaultScenarios()
	if config.ScenarioFile != "" {
		loaded, err := LoadScenarios(config.ScenarioFile)
		if err != nil {
			return err
		}
		scenarios = loaded
	}

	lg := config.Logger
	if lg != nil {
		lg.Info(ctx, "starting scroll simulation",
			logger.Int("scenarios", len(scenarios)),
			logger.String("scenarioFile", config.ScenarioFile),
			logger.Bool("verbose", config.Verbose),
		)
	}

	results := make([]Result, 0, len(scenarios))
	failed := 0
	for _, sc := range scenarios {
		res := runScenario(ctx, lg, sc)
		if !res.Passed {
			failed++
			if lg != nil {
				for _, p := range res.Problems {
					lg.Warn(ctx, "scenario problem",
						logger.String("scenario", sc.Name),
						logger.String("problem", p),
					)
				}
			}
		}
		results = append(results, res)
	}

	if config.ReportFile != "" {
		if err := saveReport(config.ReportFile, results); err != nil && lg != nil {
			lg.Warn(ctx, "failed to save report", logger.Error(err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios))
	}
	if lg != nil {
		lg.Info(ctx, "all scenarios passed")
	}
	return nil
}

func saveReport(path string, results []Result) error {
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, b, reportFilePermission); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Flick Scroll Simulator
======================

Plays scripted scroll scenarios through the acceleration engine and
verifies injections, caps and self-throttling without touching real
input devices.

Usage:
  go run cmd/scroll-sim/main.go [options]

Options:
  -scenarios string
        YAML scenario file (default: built-in scenario set)
  -report string
        JSON report output file
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Run the built-in scenarios
  go run cmd/scroll-sim/main.go

  # Run a custom scenario file and keep the report
  go run cmd/scroll-sim/main.go -scenarios ramps.yaml -report out.json
`)
}
