package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

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
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording pipeline metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					RecordPostProcessed()
					RecordPredictionExtracted()
					RecordRankingAccepted()
					RecordRankingRejected()
					RecordRoundRepaired()
					RecordDuplicateDropped()
					RecordPredictionScored()
					RecordPerfectRound()
					RecordSuspectLine("line")
					UpdateParticipantCount(8)
					UpdateAuthorCount(5)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestSummaryLines(t *testing.T) {
	Convey("Given a metrics manager with recorded values", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry))

		manager.postsProcessed.Inc()
		manager.postsProcessed.Inc()
		manager.suspectLines.WithLabelValues("partial_post").Inc()
		manager.participantCount.Set(8)

		Convey("When gathering summary lines", func() {
			lines, err := manager.SummaryLines()

			Convey("Then nonzero metrics appear sorted with their labels", func() {
				So(err, ShouldBeNil)
				So(lines, ShouldHaveLength, 3)
				So(lines[0], ShouldEqual, "schedina_pipeline_participant_count=8")
				So(lines[1], ShouldEqual, "schedina_pipeline_posts_processed_total=2")
				So(lines[2], ShouldStartWith, "schedina_pipeline_suspect_lines_total{reason=partial_post}")
			})

			Convey("Then zero-valued metrics are omitted", func() {
				So(err, ShouldBeNil)
				for _, line := range lines {
					So(strings.Contains(line, "rankings_accepted"), ShouldBeFalse)
				}
			})
		})
	})
}
