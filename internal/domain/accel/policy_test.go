package accel_test

import (
	"testing"

	"github.com/okian/flick/internal/domain/accel"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMultiplierFloor(t *testing.T) {
	Convey("Given an aggressive acceleration policy", t, func() {
		p := accel.New(accel.WithFactor(5), accel.WithExponent(2))

		Convey("Then at or below unit speed the multiplier is exactly 1", func() {
			So(p.Multiplier(0), ShouldEqual, 1.0)
			So(p.Multiplier(0.5), ShouldEqual, 1.0)
			So(p.Multiplier(1), ShouldEqual, 1.0)
		})

		Convey("Then above unit speed the exponential scheme applies", func() {
			So(p.Multiplier(2), ShouldAlmostEqual, 20.0)
			So(p.Multiplier(3), ShouldAlmostEqual, 45.0)
		})
	})
}

func TestMultiplierMonotonic(t *testing.T) {
	Convey("Given a policy with a non-negative exponent", t, func() {
		p := accel.New(accel.WithFactor(2), accel.WithExponent(1.5))

		Convey("Then the multiplier never decreases with speed", func() {
			prev := 0.0
			for v := 0.0; v <= 50; v += 0.5 {
				m := p.Multiplier(v)
				So(m, ShouldBeGreaterThanOrEqualTo, prev)
				prev = m
			}
		})
	})
}

func TestPolicyDefaults(t *testing.T) {
	Convey("Given a policy with no options", t, func() {
		p := accel.New()

		Convey("Then it is neutral at every speed", func() {
			So(p.Neutral(), ShouldBeTrue)
			So(p.Multiplier(100), ShouldEqual, 1.0)
		})
	})

	Convey("Given negative option values", t, func() {
		p := accel.New(accel.WithFactor(-3), accel.WithExponent(-1))

		Convey("Then they are rejected and the defaults survive", func() {
			So(p.Neutral(), ShouldBeTrue)
			So(p.Multiplier(10), ShouldEqual, 1.0)
		})
	})
}

func TestPolicyNeutral(t *testing.T) {
	Convey("Given various policy configurations", t, func() {
		Convey("Then a factor above 1 is not neutral", func() {
			So(accel.New(accel.WithFactor(1.1)).Neutral(), ShouldBeFalse)
		})

		Convey("Then a positive exponent is not neutral", func() {
			So(accel.New(accel.WithExponent(0.5)).Neutral(), ShouldBeFalse)
		})

		Convey("Then factor 1 with exponent 0 is neutral", func() {
			So(accel.New(accel.WithFactor(1), accel.WithExponent(0)).Neutral(), ShouldBeTrue)
		})
	})
}
