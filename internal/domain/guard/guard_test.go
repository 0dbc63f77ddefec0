package guard_test

import (
	"testing"

	"github.com/okian/flick/internal/domain/event"
	"github.com/okian/flick/internal/domain/guard"
	"github.com/okian/flick/internal/domain/vec"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyWithoutOutstanding(t *testing.T) {
	Convey("Given a guard with nothing outstanding", t, func() {
		g := guard.New[int]()

		Convey("Then every delta is user input, no matter how often it repeats", func() {
			for i := 0; i < 5; i++ {
				So(g.Classify(vec.New(0, 1)), ShouldEqual, event.OriginUser)
			}
			So(g.Outstanding().IsZero(), ShouldBeTrue)
		})
	})
}

func TestClassifyEcho(t *testing.T) {
	Convey("Given a guard with a recorded injection", t, func() {
		g := guard.New[int]()
		So(g.RecordInjection(vec.New(0, 3)), ShouldBeTrue)

		Convey("When the matching echo arrives", func() {
			origin := g.Classify(vec.New(0, 3))

			Convey("Then it is classified as generated and fully consumed", func() {
				So(origin, ShouldEqual, event.OriginGenerated)
				So(g.Outstanding().IsZero(), ShouldBeTrue)
			})
		})

		Convey("When the echo arrives in pieces", func() {
			So(g.Classify(vec.New(0, 1)), ShouldEqual, event.OriginGenerated)
			So(g.Classify(vec.New(0, 2)), ShouldEqual, event.OriginGenerated)

			Convey("Then the outstanding amount drains to zero without drift", func() {
				So(g.Outstanding().IsZero(), ShouldBeTrue)
			})
		})

		Convey("When a delta moves against the outstanding direction", func() {
			origin := g.Classify(vec.New(0, -1))

			Convey("Then it is user input and the outstanding state is untouched", func() {
				So(origin, ShouldEqual, event.OriginUser)
				So(g.Outstanding(), ShouldResemble, vec.New(0, 3))
			})
		})

		Convey("When a delta moves on an axis with nothing outstanding", func() {
			origin := g.Classify(vec.New(1, 1))

			Convey("Then it is user input", func() {
				So(origin, ShouldEqual, event.OriginUser)
				So(g.Outstanding(), ShouldResemble, vec.New(0, 3))
			})
		})

		Convey("When the echo overshoots the outstanding amount", func() {
			origin := g.Classify(vec.New(0, 5))

			Convey("Then consumption snaps to zero instead of going negative", func() {
				So(origin, ShouldEqual, event.OriginGenerated)
				So(g.Outstanding().IsZero(), ShouldBeTrue)
			})
		})
	})
}

func TestClassifyDiscreteUnitStep(t *testing.T) {
	Convey("Given a discrete guard with a recorded injection", t, func() {
		g := guard.New[int](guard.WithDiscrete(true))
		So(g.RecordInjection(vec.New(0, 2)), ShouldBeTrue)

		Convey("Then axis-aligned unit steps in the right direction are echoes", func() {
			So(g.Classify(vec.New(0, 1)), ShouldEqual, event.OriginGenerated)
			So(g.Outstanding(), ShouldResemble, vec.New(0, 1))
		})

		Convey("Then a multi-step delta is user input even when the sign matches", func() {
			So(g.Classify(vec.New(0, 2)), ShouldEqual, event.OriginUser)
			So(g.Outstanding(), ShouldResemble, vec.New(0, 2))
		})

		Convey("Then a diagonal delta is user input", func() {
			g2 := guard.New[int](guard.WithDiscrete(true))
			So(g2.RecordInjection(vec.New(1, 1)), ShouldBeTrue)
			So(g2.Classify(vec.New(1, 1)), ShouldEqual, event.OriginUser)
		})
	})
}

func TestRecordInjection(t *testing.T) {
	Convey("Given a guard", t, func() {
		g := guard.New[int]()

		Convey("Then a zero injection is rejected", func() {
			So(g.RecordInjection(vec.New(0, 0)), ShouldBeFalse)
			So(g.Outstanding().IsZero(), ShouldBeTrue)
		})

		Convey("Then same-direction injections accumulate", func() {
			So(g.RecordInjection(vec.New(0, 1)), ShouldBeTrue)
			So(g.RecordInjection(vec.New(0, 1)), ShouldBeTrue)
			So(g.RecordInjection(vec.New(0, 1)), ShouldBeTrue)
			So(g.Outstanding(), ShouldResemble, vec.New(0, 3))
		})

		Convey("Then an opposing injection is suppressed while scroll is in flight", func() {
			So(g.RecordInjection(vec.New(0, 2)), ShouldBeTrue)
			So(g.RecordInjection(vec.New(0, -1)), ShouldBeFalse)
			So(g.Outstanding(), ShouldResemble, vec.New(0, 2))
		})

		Convey("Then once the echo drains, the opposite direction opens up again", func() {
			So(g.RecordInjection(vec.New(0, 2)), ShouldBeTrue)
			So(g.Classify(vec.New(0, 2)), ShouldEqual, event.OriginGenerated)
			So(g.RecordInjection(vec.New(0, -1)), ShouldBeTrue)
			So(g.Outstanding(), ShouldResemble, vec.New(0, -1))
		})
	})
}
