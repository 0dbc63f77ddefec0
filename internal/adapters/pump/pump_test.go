package pump_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/flick/internal/adapters/hook"
	"github.com/okian/flick/internal/adapters/pump"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPumpDelivery(t *testing.T) {
	Convey("Given a pump and a single consumer", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		p := pump.New(pump.WithSize(8))
		out := p.Dequeue(ctx)

		Convey("When a delivery is enqueued", func() {
			r := hook.Raw{DX: 0, DY: 1, When: time.Now()}
			So(p.Enqueue(ctx, r), ShouldBeTrue)

			Convey("Then the consumer receives it", func() {
				select {
				case got := <-out:
					So(got.DY, ShouldEqual, 1)
				case <-time.After(time.Second):
					So("timed out waiting for delivery", ShouldBeEmpty)
				}
			})
		})

		Convey("When the pump is closed", func() {
			So(p.Close(), ShouldBeNil)

			Convey("Then further enqueues are dropped", func() {
				So(p.Enqueue(ctx, hook.Raw{DY: 1}), ShouldBeFalse)
				So(p.IsClosed(), ShouldBeTrue)
			})

			Convey("Then the dequeue channel drains and closes", func() {
				select {
				case _, ok := <-out:
					So(ok, ShouldBeFalse)
				case <-time.After(time.Second):
					So("timed out waiting for close", ShouldBeEmpty)
				}
			})

			Convey("Then closing again is a no-op", func() {
				So(p.Close(), ShouldBeNil)
			})
		})
	})
}

func TestPumpBackpressure(t *testing.T) {
	Convey("Given a pump of capacity one with no consumer", t, func() {
		ctx := context.Background()
		p := pump.New(pump.WithSize(1))

		Convey("When more deliveries arrive than fit", func() {
			first := p.Enqueue(ctx, hook.Raw{DY: 1})
			second := p.Enqueue(ctx, hook.Raw{DY: 2})

			Convey("Then the overflow is dropped instead of blocking", func() {
				So(first, ShouldBeTrue)
				So(second, ShouldBeFalse)
				So(p.Len(), ShouldEqual, 1)
			})
		})

		Convey("When the caller's context is cancelled while the pump is full", func() {
			So(p.Enqueue(ctx, hook.Raw{DY: 1}), ShouldBeTrue)
			done, cancel := context.WithCancel(context.Background())
			cancel()

			Convey("Then the delivery is dropped rather than waited on", func() {
				So(p.Enqueue(done, hook.Raw{DY: 2}), ShouldBeFalse)
			})
		})
	})
}
