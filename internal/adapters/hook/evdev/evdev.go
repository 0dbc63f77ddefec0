package evdev

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/flick/internal/adapters/hook"
)

const readBatch = 64

// Source reads scroll notifications from one or more evdev character
// devices. The devices are not grabbed: real events still reach
// applications and the engine only adds synthetic ones on top.
//
// The injector's virtual node is normally one of the devices, so the
// echoes of injected events come back through the same delivery path as
// genuine input and the feedback guard can consume them.
type Source struct {
	files []*os.File
}

// NewSource opens the given evdev devices, skipping empty paths. At least
// one device is required.
func NewSource(paths ...string) (*Source, error) {
	s := &Source{}
	for _, path := range paths {
		if path == "" {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("evdev: open %s: %w", path, err)
		}
		s.files = append(s.files, f)
	}
	if len(s.files) == 0 {
		return nil, errors.New("evdev: no input device configured")
	}
	return s, nil
}

// Run reads input events from every device until ctx is done, delivering
// one Raw per SYN_REPORT frame that carried wheel movement. Positions are
// not available on this transport and are reported as the origin. deliver
// may be invoked from one goroutine per device.
func (s *Source) Run(ctx context.Context, deliver func(hook.Raw)) error {
	g, gctx := errgroup.WithContext(ctx)

	go func() {
		// Closing the devices unblocks the read loops.
		<-gctx.Done()
		for _, f := range s.files {
			f.Close()
		}
	}()

	for _, f := range s.files {
		f := f
		g.Go(func() error {
			return readLoop(gctx, f, deliver)
		})
	}
	return g.Wait()
}

func readLoop(ctx context.Context, f *os.File, deliver func(hook.Raw)) error {
	buf := make([]byte, eventSize*readBatch)
	var dx, dy float64
	for {
		n, err := f.Read(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, os.ErrClosed) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("evdev: read %s: %w", f.Name(), err)
		}
		for off := 0; off+eventSize <= n; off += eventSize {
			ev := decodeEvent(buf[off:])
			switch {
			case ev.Type == evRel && ev.Code == relWheel:
				dy += float64(ev.Value)
			case ev.Type == evRel && ev.Code == relHWheel:
				dx += float64(ev.Value)
			case ev.Type == evSyn && ev.Code == synReport:
				if dx != 0 || dy != 0 {
					deliver(hook.Raw{DX: dx, DY: dy, When: time.Now()})
					dx, dy = 0, 0
				}
			}
		}
	}
}

// Close releases the devices.
func (s *Source) Close() error {
	var err error
	for _, f := range s.files {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
