// Package app wires the hook, pump, engine and observability surfaces into
// one supervised daemon service.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/flick/internal/adapters/hook"
	"github.com/okian/flick/internal/adapters/http/debugws"
	"github.com/okian/flick/internal/adapters/pump"
	"github.com/okian/flick/internal/engine"
	"github.com/okian/flick/pkg/logger"
	"github.com/okian/flick/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// scrollEngine is the backend-erased face of engine.Engine[T].
type scrollEngine interface {
	OnScroll(x, y, dx, dy float64, when time.Time) error
	Neutral() bool
}

// Service runs the accelerator: one hook feeding one pump drained by one
// processing goroutine, plus the optional metrics/debug listener.
type Service struct {
	source   hook.Source
	injector hook.Injector

	discrete    bool
	multiplier  float64
	exponent    float64
	window      time.Duration
	maxRetained int
	maxDelta    float64
	injectDelay time.Duration
	pumpSize    int
	metricsAddr string

	lg logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the input collaborator.
func WithSource(s hook.Source) Option {
	return func(svc *Service) {
		if s != nil {
			svc.source = s
		}
	}
}

// WithInjector sets the output collaborator.
func WithInjector(i hook.Injector) Option {
	return func(svc *Service) {
		if i != nil {
			svc.injector = i
		}
	}
}

// WithDiscrete selects the discrete backend.
func WithDiscrete(discrete bool) Option {
	return func(svc *Service) {
		svc.discrete = discrete
	}
}

// WithAcceleration sets the multiplier and exponent knobs.
func WithAcceleration(multiplier, exponent float64) Option {
	return func(svc *Service) {
		if multiplier >= 0 {
			svc.multiplier = multiplier
		}
		if exponent >= 0 {
			svc.exponent = exponent
		}
	}
}

// WithWindow sets the velocity estimation window.
func WithWindow(d time.Duration) Option {
	return func(svc *Service) {
		if d > 0 {
			svc.window = d
		}
	}
}

// WithMaxRetained caps the event log size.
func WithMaxRetained(n int) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.maxRetained = n
		}
	}
}

// WithMaxDelta caps injected deltas per axis. Zero keeps the backend default.
func WithMaxDelta(d float64) Option {
	return func(svc *Service) {
		if d > 0 {
			svc.maxDelta = d
		}
	}
}

// WithInjectDelay paces discrete injections.
func WithInjectDelay(d time.Duration) Option {
	return func(svc *Service) {
		if d >= 0 {
			svc.injectDelay = d
		}
	}
}

// WithPumpSize bounds the delivery queue.
func WithPumpSize(n int) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.pumpSize = n
		}
	}
}

// WithMetricsAddr enables the metrics/debug listener on the given address.
func WithMetricsAddr(addr string) Option {
	return func(svc *Service) {
		svc.metricsAddr = addr
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(lg logger.Logger) Option {
	return func(svc *Service) {
		if lg != nil {
			svc.lg = lg
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	svc := &Service{
		multiplier:  1,
		exponent:    0,
		window:      time.Second,
		maxRetained: 1000,
		injectDelay: time.Millisecond,
		pumpSize:    1024,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Run blocks until ctx is done or a component fails. An injector failure is
// fatal by design: the engine cannot verify partial injection state.
func (s *Service) Run(ctx context.Context) error {
	if s.source == nil || s.injector == nil {
		return ErrNoHook
	}

	hub := debugws.NewHub(debugws.WithLogger(s.lg))

	eng := s.buildEngine(hub)
	if eng.Neutral() && s.lg != nil {
		s.lg.Warn(ctx, "acceleration disabled; running as a pass-through",
			logger.Float64("multiplier", s.multiplier),
			logger.Float64("exp", s.exponent),
		)
	}

	p := pump.New(pump.WithSize(s.pumpSize))
	defer p.Close()

	g, ctx := errgroup.WithContext(ctx)

	// Input hook: deliveries go through the pump, never into the engine
	// directly.
	g.Go(func() error {
		defer p.Close()
		return s.source.Run(ctx, func(r hook.Raw) {
			p.Enqueue(ctx, r)
		})
	})

	// The single processing goroutine: the engine's state machine runs to
	// completion per delivery.
	g.Go(func() error {
		for r := range p.Dequeue(ctx) {
			if err := eng.OnScroll(r.X, r.Y, r.DX, r.DY, r.When); err != nil {
				return err
			}
		}
		return nil
	})

	if s.metricsAddr != "" {
		g.Go(func() error {
			return s.serveMetrics(ctx, hub)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Service) buildEngine(hub *debugws.Hub) scrollEngine {
	opts := []engine.Option{
		engine.WithMultiplier(s.multiplier),
		engine.WithExponent(s.exponent),
		engine.WithWindow(s.window),
		engine.WithMaxRetained(s.maxRetained),
		engine.WithMaxDelta(s.maxDelta),
		engine.WithDiscrete(s.discrete),
		engine.WithInjectDelay(s.injectDelay),
		engine.WithLogger(s.lg),
		engine.WithObserver(func(d engine.Decision) {
			hub.Broadcast(d)
		}),
	}
	if s.discrete {
		return engine.New[int](s.injector, opts...)
	}
	return engine.New[float64](s.injector, opts...)
}

func (s *Service) serveMetrics(ctx context.Context, hub *debugws.Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	hub.Register(mux)

	srv := &http.Server{
		Addr:              s.metricsAddr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
