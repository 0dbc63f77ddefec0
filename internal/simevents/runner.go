package simevents

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/flick/internal/engine"
	"github.com/okian/flick/pkg/logger"
)

// Delta is one injected synthetic scroll.
type Delta struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Result captures one scenario run.
type Result struct {
	RunID      string   `json:"run_id"`
	Scenario   string   `json:"scenario"`
	Steps      int      `json:"steps"`
	Injections []Delta  `json:"injections"`
	Suppressed int      `json:"suppressed"`
	Passed     bool     `json:"passed"`
	Problems   []string `json:"problems,omitempty"`
}

// captureInjector records injections and immediately echoes them back into
// the engine, the way a platform hook re-delivers synthetic events.
type captureInjector struct {
	injected []Delta
	echo     func(dx, dy float64)
}

func (c *captureInjector) Scroll(dx, dy float64) error {
	c.injected = append(c.injected, Delta{DX: dx, DY: dy})
	if c.echo != nil {
		c.echo(dx, dy)
	}
	return nil
}

// runScenario plays the scripted steps against a fresh engine using
// simulated timestamps. Echoed injections carry the current step's
// timestamp, so the run is deterministic regardless of wall-clock speed.
// lg may be nil.
func runScenario(ctx context.Context, lg logger.Logger, sc Scenario) Result {
	res := Result{
		RunID:    uuid.New().String(),
		Scenario: sc.Name,
		Steps:    len(sc.Steps),
	}

	discrete := sc.Backend == "discrete"
	inj := &captureInjector{}
	var suppressed int

	opts := []engine.Option{
		engine.WithMultiplier(sc.Multiplier),
		engine.WithExponent(sc.Exp),
		engine.WithMaxDelta(sc.MaxDelta),
		engine.WithDiscrete(discrete),
		engine.WithInjectDelay(0),
		engine.WithObserver(func(d engine.Decision) {
			if d.Suppressed {
				suppressed++
			}
		}),
	}

	var process func(dx, dy float64, when time.Time) error
	var now time.Time
	inj.echo = func(dx, dy float64) {
		_ = process(dx, dy, now)
	}

	if discrete {
		eng := engine.New[int](inj, opts...)
		process = func(dx, dy float64, when time.Time) error {
			return eng.OnScroll(0, 0, dx, dy, when)
		}
	} else {
		eng := engine.New[float64](inj, opts...)
		process = func(dx, dy float64, when time.Time) error {
			return eng.OnScroll(0, 0, dx, dy, when)
		}
	}

	base := time.Now()
	for _, step := range sc.Steps {
		if ctx.Err() != nil {
			break
		}
		now = base.Add(time.Duration(step.AtMS * float64(time.Millisecond)))
		if err := process(step.DX, step.DY, now); err != nil {
			res.Problems = append(res.Problems, err.Error())
			break
		}
	}

	res.Injections = inj.injected
	res.Suppressed = suppressed
	res.Problems = append(res.Problems, verify(sc, res)...)
	res.Passed = len(res.Problems) == 0

	if lg != nil {
		lg.Info(ctx, "scenario finished",
			logger.String("scenario", sc.Name),
			logger.String("run_id", res.RunID),
			logger.Int("injections", len(res.Injections)),
			logger.Int("suppressed", res.Suppressed),
			logger.Bool("passed", res.Passed),
		)
	}
	return res
}
