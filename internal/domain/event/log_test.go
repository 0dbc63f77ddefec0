package event_test

import (
	"testing"
	"time"

	"github.com/okian/flick/internal/domain/event"
	"github.com/okian/flick/internal/domain/vec"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogAppend(t *testing.T) {
	Convey("Given an event log with a one second window", t, func() {
		l := event.NewLog[int](event.WithWindow(time.Second))
		base := time.Now()

		Convey("When events arrive within the window", func() {
			l.Append(event.Event[int]{When: base, Delta: vec.New(0, 1), Origin: event.OriginUser})
			l.Append(event.Event[int]{When: base.Add(500 * time.Millisecond), Delta: vec.New(0, 2), Origin: event.OriginUser})

			Convey("Then all of them are retained in order", func() {
				So(l.Size(), ShouldEqual, 2)
				snap := l.Snapshot()
				So(snap[0].Delta, ShouldResemble, vec.New(0, 1))
				So(snap[1].Delta, ShouldResemble, vec.New(0, 2))
			})
		})

		Convey("When a new event makes older ones fall outside the window", func() {
			l.Append(event.Event[int]{When: base, Delta: vec.New(0, 1), Origin: event.OriginUser})
			l.Append(event.Event[int]{When: base.Add(500 * time.Millisecond), Delta: vec.New(0, 2), Origin: event.OriginUser})
			l.Append(event.Event[int]{When: base.Add(1500 * time.Millisecond), Delta: vec.New(0, 3), Origin: event.OriginUser})

			Convey("Then the stale events are pruned", func() {
				So(l.Size(), ShouldEqual, 2)
				snap := l.Snapshot()
				So(snap[0].Delta, ShouldResemble, vec.New(0, 2))
				So(snap[1].Delta, ShouldResemble, vec.New(0, 3))
			})
		})

		Convey("When a zero-delta event is appended", func() {
			l.Append(event.Event[int]{When: base, Delta: vec.New(0, 0), Origin: event.OriginUser})

			Convey("Then it is ignored", func() {
				So(l.Size(), ShouldEqual, 0)
			})
		})
	})
}

func TestLogRetentionCap(t *testing.T) {
	Convey("Given an event log capped at three events", t, func() {
		l := event.NewLog[int](event.WithWindow(time.Minute), event.WithMaxRetained(3))
		base := time.Now()

		Convey("When more events than the cap arrive inside the window", func() {
			for i := 1; i <= 5; i++ {
				l.Append(event.Event[int]{
					When:   base.Add(time.Duration(i) * time.Millisecond),
					Delta:  vec.New(0, i),
					Origin: event.OriginUser,
				})
			}

			Convey("Then only the newest events survive", func() {
				So(l.Size(), ShouldEqual, 3)
				snap := l.Snapshot()
				So(snap[0].Delta, ShouldResemble, vec.New(0, 3))
				So(snap[2].Delta, ShouldResemble, vec.New(0, 5))
			})
		})
	})
}
