package evdev

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/okian/flick/internal/adapters/hook"
	. "github.com/smartystreets/goconvey/convey"
)

func wheelFrame(code uint16, value int32) []byte {
	b := encodeEvent(inputEvent{Type: evRel, Code: code, Value: value})
	return append(b, encodeEvent(inputEvent{Type: evSyn, Code: synReport})...)
}

func writeDevice(t *testing.T, path string, frames ...[]byte) {
	t.Helper()
	var b []byte
	for _, f := range frames {
		b = append(b, f...)
	}
	if err := os.WriteFile(path, b, 0600); err != nil {
		t.Fatal(err)
	}
}

func TestSourceMultiplex(t *testing.T) {
	Convey("Given a physical device and an injection echo device", t, func() {
		dir := t.TempDir()
		phys := filepath.Join(dir, "event3")
		echo := filepath.Join(dir, "event9")
		writeDevice(t, phys, wheelFrame(relWheel, 1))
		writeDevice(t, echo, wheelFrame(relHWheel, -2))

		src, err := NewSource(phys, echo)
		So(err, ShouldBeNil)
		defer src.Close()

		Convey("When the source reads both to end of input", func() {
			var mu sync.Mutex
			var got []hook.Raw
			runErr := src.Run(context.Background(), func(r hook.Raw) {
				mu.Lock()
				got = append(got, r)
				mu.Unlock()
			})

			Convey("Then frames from both devices are delivered", func() {
				So(runErr, ShouldBeNil)
				So(len(got), ShouldEqual, 2)
				var dx, dy float64
				for _, r := range got {
					dx += r.DX
					dy += r.DY
				}
				So(dy, ShouldEqual, 1)
				So(dx, ShouldEqual, -2)
			})
		})
	})
}

func TestSourceFraming(t *testing.T) {
	Convey("Given a device stream with split and empty frames", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "event1")
		writeDevice(t, path,
			// Two wheel steps before one report collapse into one delivery.
			encodeEvent(inputEvent{Type: evRel, Code: relWheel, Value: 1}),
			encodeEvent(inputEvent{Type: evRel, Code: relWheel, Value: 1}),
			encodeEvent(inputEvent{Type: evSyn, Code: synReport}),
			// A report without wheel movement delivers nothing.
			encodeEvent(inputEvent{Type: evSyn, Code: synReport}),
			wheelFrame(relWheel, -1),
		)

		src, err := NewSource(path)
		So(err, ShouldBeNil)
		defer src.Close()

		Convey("When the stream is consumed", func() {
			var got []hook.Raw
			runErr := src.Run(context.Background(), func(r hook.Raw) {
				got = append(got, r)
			})

			Convey("Then deliveries follow the SYN_REPORT boundaries", func() {
				So(runErr, ShouldBeNil)
				So(len(got), ShouldEqual, 2)
				So(got[0].DY, ShouldEqual, 2)
				So(got[1].DY, ShouldEqual, -1)
			})
		})
	})
}

func TestNewSourceValidation(t *testing.T) {
	Convey("Given source construction", t, func() {
		Convey("Then empty paths alone are rejected", func() {
			_, err := NewSource("", "")
			So(err, ShouldNotBeNil)
		})

		Convey("Then a missing device is rejected", func() {
			_, err := NewSource(filepath.Join(t.TempDir(), "nope"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestEventNodeName(t *testing.T) {
	Convey("Given a virtual device's sysfs directory", t, func() {
		dir := t.TempDir()

		Convey("When the eventN child exists among other entries", func() {
			So(os.Mkdir(filepath.Join(dir, "capabilities"), 0700), ShouldBeNil)
			So(os.Mkdir(filepath.Join(dir, "event7"), 0700), ShouldBeNil)

			name, err := eventNodeName(dir)

			Convey("Then it is resolved", func() {
				So(err, ShouldBeNil)
				So(name, ShouldEqual, "event7")
			})
		})

		Convey("When no eventN child exists", func() {
			_, err := eventNodeName(dir)

			Convey("Then resolution fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
