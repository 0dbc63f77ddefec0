package event

import "time"

// Default log configuration constants.
const (
	defaultWindow      = time.Second
	defaultMaxRetained = 1000
)

type settings struct {
	window      time.Duration
	maxRetained int
}

func defaultSettings() settings {
	return settings{
		window:      defaultWindow,
		maxRetained: defaultMaxRetained,
	}
}

// Option applies a configuration option to a Log.
type Option func(*settings)

// WithWindow sets the retention window relative to the newest event.
func WithWindow(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithMaxRetained sets the hard cap on retained events.
func WithMaxRetained(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxRetained = n
		}
	}
}
