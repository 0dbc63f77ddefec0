package simevents

// Built-in scenario parameters.
const (
	rampCount     = 10
	rampSpacingMS = 10
)

// DefaultScenarios returns the built-in scenario set, covering the
// behaviors that matter in the field: a fast ramp on a wheel backend, a
// neutral configuration, a direction flip, and a stale-history gap.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{
			Name:       "steady-ramp",
			Backend:    "discrete",
			Multiplier: 2,
			Exp:        1,
			Steps:      rampSteps(rampCount, rampSpacingMS, 0, 1),
			Expect: Expect{
				MinInjected: 1,
				UnitSteps:   true,
			},
		},
		{
			Name:       "neutral-config",
			Backend:    "continuous",
			Multiplier: 1,
			Exp:        0,
			Steps: []Step{
				{AtMS: 0, DY: 4},
				{AtMS: 10, DY: 12.5},
				{AtMS: 20, DX: -3, DY: 1},
				{AtMS: 35, DY: -40},
			},
			Expect: Expect{
				NoInjections: true,
			},
		},
		{
			Name:       "direction-flip",
			Backend:    "discrete",
			Multiplier: 2,
			Exp:        1,
			Steps: append(
				rampSteps(5, rampSpacingMS, 0, 1),
				Step{AtMS: 60, DY: -1},
				Step{AtMS: 70, DY: -1},
			),
			Expect: Expect{
				MinInjected: 1,
				UnitSteps:   true,
			},
		},
		{
			Name:       "stale-history",
			Backend:    "continuous",
			Multiplier: 2,
			Exp:        1,
			Steps: []Step{
				{AtMS: 0, DY: 50},
				// Well past the velocity window: the old burst must
				// not contribute to this event's estimate.
				{AtMS: 2000, DY: 1},
			},
			Expect: Expect{
				MinInjected: 1,
			},
		},
	}
}

func rampSteps(count int, spacingMS float64, dx, dy float64) []Step {
	steps := make([]Step, count)
	for i := range steps {
		steps[i] = Step{AtMS: float64(i) * spacingMS, DX: dx, DY: dy}
	}
	return steps
}
