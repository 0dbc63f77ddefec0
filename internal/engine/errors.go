package engine

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInject wraps injector failures. Injection is not retried: the
	// engine cannot verify partial injection state, so the error is
	// fatal to the process.
	ErrInject = errors.New("scroll injection failed")
)
