package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording engine metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() { RecordEventObserved("user") }, ShouldNotPanic)
				So(func() { RecordEventObserved("generated") }, ShouldNotPanic)
				So(func() { RecordInjection() }, ShouldNotPanic)
				So(func() { RecordInjectionSuppressed() }, ShouldNotPanic)
				So(func() { RecordInjectorError() }, ShouldNotPanic)
				So(func() { UpdateEventLogSize(12) }, ShouldNotPanic)
				So(func() { UpdateOutstanding(0, 3) }, ShouldNotPanic)
				So(func() { UpdateUserVelocity(42.5) }, ShouldNotPanic)
				So(func() { ObserveMultiplier(2.5) }, ShouldNotPanic)
				So(func() { RecordProcessingLatency(0.2) }, ShouldNotPanic)
			})
		})

		Convey("When recording pump metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() { UpdatePumpCapacity(1024) }, ShouldNotPanic)
				So(func() { UpdatePumpSize(3) }, ShouldNotPanic)
				So(func() { UpdatePumpUtilization(0.5) }, ShouldNotPanic)
				So(func() { RecordPumpEnqueue() }, ShouldNotPanic)
				So(func() { RecordPumpDequeue() }, ShouldNotPanic)
				So(func() { RecordPumpDrop() }, ShouldNotPanic)
				So(func() { UpdateDebugClients(1) }, ShouldNotPanic)
			})
		})
	})
}

func TestRegistryExposure(t *testing.T) {
	Convey("Given the global registry", t, func() {
		RecordInjection()

		Convey("When the registry is gathered", func() {
			families, err := GetRegistry().Gather()

			Convey("Then the engine metrics are registered", func() {
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["flick_engine_injections_total"], ShouldBeTrue)
				So(names["flick_pump_enqueue_total"], ShouldBeTrue)
				So(names["flick_debug_websocket_clients"], ShouldBeTrue)
			})
		})
	})
}
