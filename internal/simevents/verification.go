package simevents

import (
	"fmt"
	"math"
)

// Injection caps mirrored from the engine's backend defaults.
const (
	capDiscrete   = 100
	capContinuous = 1000
)

// verify checks a scenario's expectations plus the unconditional structural
// properties: the per-axis injection cap always holds, and discrete
// injections are always integral.
func verify(sc Scenario, res Result) []string {
	var problems []string

	limit := sc.MaxDelta
	if limit <= 0 {
		if sc.Backend == "discrete" {
			limit = capDiscrete
		} else {
			limit = capContinuous
		}
	}
	for _, d := range res.Injections {
		if math.Abs(d.DX) > limit || math.Abs(d.DY) > limit {
			problems = append(problems, fmt.Sprintf("injection (%v, %v) exceeds per-axis cap %v", d.DX, d.DY, limit))
		}
		if sc.Backend == "discrete" && (d.DX != math.Trunc(d.DX) || d.DY != math.Trunc(d.DY)) {
			problems = append(problems, fmt.Sprintf("discrete injection (%v, %v) is not integral", d.DX, d.DY))
		}
	}

	if sc.Expect.NoInjections && len(res.Injections) > 0 {
		problems = append(problems, fmt.Sprintf("expected no injections, got %d", len(res.Injections)))
	}
	if n := len(res.Injections); n < sc.Expect.MinInjected {
		problems = append(problems, fmt.Sprintf("expected at least %d injections, got %d", sc.Expect.MinInjected, n))
	}
	if max := sc.Expect.MaxInjected; max > 0 && len(res.Injections) > max {
		problems = append(problems, fmt.Sprintf("expected at most %d injections, got %d", max, len(res.Injections)))
	}
	if sc.Expect.UnitSteps {
		for _, d := range res.Injections {
			if math.Abs(d.DX)+math.Abs(d.DY) != 1 {
				problems = append(problems, fmt.Sprintf("injection (%v, %v) is not a unit step", d.DX, d.DY))
			}
		}
	}
	return problems
}
