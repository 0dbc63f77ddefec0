package evdev

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DefaultUinputPath is the conventional uinput device node.
const DefaultUinputPath = "/dev/uinput"

const deviceName = "flick virtual wheel"

// Sysfs locations for resolving the virtual device's event node. The node
// is created asynchronously by the kernel, hence the short poll.
const (
	sysInputDir = "/sys/devices/virtual/input"
	devInputDir = "/dev/input"

	nodeResolveAttempts = 20
	nodeResolvePause    = 5 * time.Millisecond
)

// Injector owns a uinput virtual wheel device and writes synthetic scroll
// events through it.
type Injector struct {
	mu   sync.Mutex
	f    *os.File
	node string
}

// NewInjector creates the virtual device. The caller needs write access to
// the uinput node (usually root or the input group).
func NewInjector(path string) (*Injector, error) {
	if path == "" {
		path = DefaultUinputPath
	}
	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("uinput: open %s: %w", path, err)
	}

	fd := int(f.Fd())
	for _, req := range []struct {
		ioctl uint
		value int
	}{
		{uiSetEvBit, int(evRel)},
		{uiSetRelBit, int(relWheel)},
		{uiSetRelBit, int(relHWheel)},
	} {
		if err := unix.IoctlSetInt(fd, req.ioctl, req.value); err != nil {
			f.Close()
			return nil, fmt.Errorf("uinput: ioctl 0x%x: %w", req.ioctl, err)
		}
	}

	dev, err := encodeUserDev(deviceName)
	if err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.Write(dev); err != nil {
		f.Close()
		return nil, fmt.Errorf("uinput: device setup: %w", err)
	}
	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("uinput: create device: %w", err)
	}

	inj := &Injector{f: f}
	if name, err := sysName(fd); err == nil {
		inj.node = awaitEventNode(filepath.Join(sysInputDir, name))
	}
	return inj, nil
}

// EventNode returns the input device node the kernel created for the
// virtual wheel. The kernel delivers injected events there, not on the
// physical device, so the caller must read this node to observe the echoes
// of its own injections.
func (i *Injector) EventNode() (string, error) {
	if i.node == "" {
		return "", errors.New("uinput: virtual event node not resolved")
	}
	return i.node, nil
}

// Scroll writes one synthetic wheel frame. Deltas are whole wheel steps;
// fractional parts are rounded since the transport is integral.
func (i *Injector) Scroll(dx, dy float64) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := time.Now()
	var frame []byte
	if v := int32(math.Round(dx)); v != 0 {
		frame = append(frame, encodeEvent(relEvent(now, relHWheel, v))...)
	}
	if v := int32(math.Round(dy)); v != 0 {
		frame = append(frame, encodeEvent(relEvent(now, relWheel, v))...)
	}
	if len(frame) == 0 {
		return nil
	}
	frame = append(frame, encodeEvent(inputEvent{
		Sec:  now.Unix(),
		Usec: int64(now.Nanosecond() / 1000),
		Type: evSyn,
		Code: synReport,
	})...)

	if _, err := i.f.Write(frame); err != nil {
		return fmt.Errorf("uinput: write frame: %w", err)
	}
	return nil
}

// Close destroys the virtual device.
func (i *Injector) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := unix.IoctlSetInt(int(i.f.Fd()), uiDevDestroy, 0); err != nil {
		i.f.Close()
		return fmt.Errorf("uinput: destroy device: %w", err)
	}
	return i.f.Close()
}

// sysName asks the kernel for the sysfs name, e.g. "input42", of the
// device created on this uinput fd.
func sysName(fd int) (string, error) {
	buf := make([]byte, sysnameLen)
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(uiGetSysname), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return "", fmt.Errorf("uinput: get sysname: %w", errno)
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}

// awaitEventNode polls the device's sysfs directory until its eventN child
// shows up. Returns "" when the node never appears.
func awaitEventNode(sysDir string) string {
	for attempt := 0; attempt < nodeResolveAttempts; attempt++ {
		if name, err := eventNodeName(sysDir); err == nil {
			return filepath.Join(devInputDir, name)
		}
		time.Sleep(nodeResolvePause)
	}
	return ""
}

// eventNodeName scans an input device's sysfs directory for its eventN
// child entry.
func eventNodeName(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "event") {
			return e.Name(), nil
		}
	}
	return "", fmt.Errorf("no event node under %s", dir)
}

func relEvent(now time.Time, code uint16, value int32) inputEvent {
	return inputEvent{
		Sec:   now.Unix(),
		Usec:  int64(now.Nanosecond() / 1000),
		Type:  evRel,
		Code:  code,
		Value: value,
	}
}
