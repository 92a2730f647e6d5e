package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

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
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording business metrics", func() {
			So(func() {
				RecordEvaluationSubmitted()
				RecordReportCreated()
				RecordDuplicateReport()
				RecordSubmissionClaimed()
				RecordSubmissionCompleted()
				RecordFormCreated()
				RecordFormUpgraded()
				RecordFormActivated()
				RecordScoringLatency(1.5)
			}, ShouldNotPanic)
		})

		Convey("When recording notification metrics", func() {
			So(func() {
				RecordNotificationEnqueued()
				RecordNotificationDropped()
				RecordNotificationSent()
				RecordNotificationError()
				UpdateQueueSize(10)
				UpdateQueueCapacity(100)
				UpdateQueueUtilization(0.1)
				UpdateWorkerCount(4)
				RecordWorkerLatency(2.0)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("evaluations", "POST", "201")
				RecordHTTPRequestDuration("evaluations", "POST", "201", 12.0)
				RecordErrorByComponent("api", "bad_request")
			}, ShouldNotPanic)
		})

		Convey("Then the registry should be available", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
