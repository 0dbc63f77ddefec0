package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/flick/internal/adapters/hook"
	"github.com/okian/flick/internal/adapters/hook/evdev"
	"github.com/okian/flick/internal/app"
	"github.com/okian/flick/internal/config"
	"github.com/okian/flick/pkg/logger"
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	lg := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		lg.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	discrete := cfg.Discrete()
	if !discrete {
		lg.Warn(ctx, "continuous backend: the OS may already accelerate scrolling; consider lower multiplier/exp values")
	}

	source, injector, cleanup, err := buildHook(ctx, lg, cfg)
	if err != nil {
		lg.Error(ctx, "failed to set up input hook", logger.Error(err))
		return
	}
	defer cleanup()

	// Diagnostic self-termination.
	if cfg.TimeoutSec > 0 {
		timer := time.AfterFunc(time.Duration(cfg.TimeoutSec)*time.Second, func() {
			lg.Info(context.Background(), "timeout reached, shutting down")
			stop()
		})
		defer timer.Stop()
	}

	svc := app.New(
		app.WithSource(source),
		app.WithInjector(injector),
		app.WithDiscrete(discrete),
		app.WithAcceleration(cfg.Multiplier, cfg.Exp),
		app.WithWindow(cfg.Window()),
		app.WithMaxRetained(cfg.MaxRetained),
		app.WithMaxDelta(cfg.MaxScrollDelta),
		app.WithInjectDelay(cfg.InjectDelay()),
		app.WithPumpSize(cfg.PumpSize),
		app.WithMetricsAddr(cfg.MetricsAddr),
		app.WithLogger(lg),
	)

	lg.Info(ctx, "starting scroll accelerator",
		logger.Bool("discrete", discrete),
		logger.Float64("multiplier", cfg.Multiplier),
		logger.Float64("exp", cfg.Exp),
		logger.String("hook", cfg.Hook),
	)

	if err := svc.Run(ctx); err != nil {
		lg.Error(ctx, "accelerator stopped", logger.Error(err))
		os.Exit(1)
	}
	lg.Info(ctx, "accelerator stopped")
}

// buildHook constructs the configured input/output collaborator pair.
func buildHook(ctx context.Context, lg logger.Logger, cfg *config.Config) (hook.Source, hook.Injector, func(), error) {
	if cfg.Hook == config.HookLoopback {
		lb := hook.NewLoopback()
		return lb, lb, func() {}, nil
	}

	injector, err := evdev.NewInjector(cfg.UinputPath)
	if err != nil {
		return nil, nil, nil, err
	}

	// The virtual wheel surfaces as its own input node; read it alongside
	// the physical device so injected events echo back through
	// classification instead of leaving the guard balance to be drained by
	// genuine user ticks.
	paths := []string{cfg.Device}
	if node, nodeErr := injector.EventNode(); nodeErr == nil {
		paths = append(paths, node)
	} else {
		lg.Warn(ctx, "injection echo node unavailable; self-generated events will not be observed", logger.Error(nodeErr))
	}

	source, err := evdev.NewSource(paths...)
	if err != nil {
		_ = injector.Close()
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = injector.Close()
		_ = source.Close()
	}
	return source, injector, cleanup, nil
}
