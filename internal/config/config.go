// Package config defines daemon configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer defaults -> optional YAML file -> environment in Load.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"fmt"
	"runtime"
	"time"
)

// Backend selection values.
const (
	BackendAuto       = "auto"
	BackendDiscrete   = "discrete"
	BackendContinuous = "continuous"
)

// Hook selection values.
const (
	HookEvdev    = "evdev"
	HookLoopback = "loopback"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Multiplier is the linear acceleration factor.
	Multiplier float64 `koanf:"multiplier"`

	// Exp is the exponential acceleration factor. Try 1 or so.
	Exp float64 `koanf:"exp"`

	// Backend picks the numeric domain: auto, discrete or continuous.
	// auto resolves from the platform at startup.
	Backend string `koanf:"backend"`

	// WindowMS is the velocity estimation window in milliseconds.
	WindowMS int `koanf:"window_ms"`

	// MaxRetained hard-caps the event log size.
	MaxRetained int `koanf:"max_retained"`

	// MaxScrollDelta caps injected deltas per axis. Zero keeps the
	// backend default (100 discrete, 1000 continuous).
	MaxScrollDelta float64 `koanf:"max_scroll_delta"`

	// InjectDelayMS paces discrete injections.
	InjectDelayMS int `koanf:"inject_delay_ms"`

	// PumpSize bounds the delivery queue between hook and engine.
	PumpSize int `koanf:"pump_size"`

	// Hook selects the input/output collaborator: evdev or loopback.
	Hook string `koanf:"hook"`

	// Device is the evdev input node, e.g. /dev/input/event3.
	Device string `koanf:"device"`

	// UinputPath is the uinput node used for injection.
	UinputPath string `koanf:"uinput_path"`

	// MetricsAddr exposes Prometheus metrics and the debug websocket
	// when non-empty, e.g. "127.0.0.1:9311".
	MetricsAddr string `koanf:"metrics_addr"`

	// TimeoutSec terminates the whole process after this many seconds.
	// Zero runs forever; the timeout exists for diagnostic runs.
	TimeoutSec int `koanf:"timeout_sec"`
}

// New creates a Config with defaults. The acceleration knobs default to
// neutral: the daemon then runs as a warned-about pass-through.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Multiplier:    1.0,
		Exp:           0.0,
		Backend:       BackendAuto,
		WindowMS:      1000,
		MaxRetained:   1000,
		InjectDelayMS: 1,
		PumpSize:      1024,
		Hook:          HookEvdev,
		UinputPath:    "/dev/uinput",
	}
}

// Discrete resolves the backend flag to the concrete numeric domain. Linux
// wheel notifications are always unit steps; everything else is treated as
// continuous.
func (c *Config) Discrete() bool {
	switch c.Backend {
	case BackendDiscrete:
		return true
	case BackendContinuous:
		return false
	}
	return runtime.GOOS == "linux"
}

// Window returns the estimation window as a duration.
func (c *Config) Window() time.Duration {
	return time.Duration(c.WindowMS) * time.Millisecond
}

// InjectDelay returns the discrete injection pacing as a duration.
func (c *Config) InjectDelay() time.Duration {
	return time.Duration(c.InjectDelayMS) * time.Millisecond
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Multiplier < 0 {
		return fmt.Errorf("%w: multiplier must be >= 0, got %v", ErrInvalidConfig, c.Multiplier)
	}
	if c.Exp < 0 {
		return fmt.Errorf("%w: exp must be >= 0, got %v", ErrInvalidConfig, c.Exp)
	}
	switch c.Backend {
	case BackendAuto, BackendDiscrete, BackendContinuous:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	switch c.Hook {
	case HookEvdev, HookLoopback:
	default:
		return fmt.Errorf("%w: unknown hook %q", ErrInvalidConfig, c.Hook)
	}
	if c.WindowMS <= 0 {
		return fmt.Errorf("%w: window_ms must be > 0, got %d", ErrInvalidConfig, c.WindowMS)
	}
	if c.MaxRetained <= 0 {
		return fmt.Errorf("%w: max_retained must be > 0, got %d", ErrInvalidConfig, c.MaxRetained)
	}
	if c.MaxScrollDelta < 0 {
		return fmt.Errorf("%w: max_scroll_delta must be >= 0, got %v", ErrInvalidConfig, c.MaxScrollDelta)
	}
	if c.InjectDelayMS < 0 {
		return fmt.Errorf("%w: inject_delay_ms must be >= 0, got %d", ErrInvalidConfig, c.InjectDelayMS)
	}
	if c.PumpSize <= 0 {
		return fmt.Errorf("%w: pump_size must be > 0, got %d", ErrInvalidConfig, c.PumpSize)
	}
	if c.TimeoutSec < 0 {
		return fmt.Errorf("%w: timeout_sec must be >= 0, got %d", ErrInvalidConfig, c.TimeoutSec)
	}
	return nil
}
