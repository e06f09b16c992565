// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shrimpsizemoose/examboard/internal/timeline"
)

var (
	ExamsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "examboard_exams",
			Help: "Number of scheduled exams by status",
		},
		[]string{"status"},
	)

	CurrentExamRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "examboard_current_exam_remaining_seconds",
			Help: "Seconds until the exam in progress ends, 0 when none is running",
		},
	)

	NextExamStartsIn = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "examboard_next_exam_starts_in_seconds",
			Help: "Seconds until the next exam starts, -1 when nothing is left",
		},
	)

	OverlappingExams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "examboard_overlapping_exams",
			Help: "Number of exams in progress at the same time when more than one is",
		},
	)

	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "examboard_ticks_total",
			Help: "Total number of timeline evaluations",
		},
	)

	ScheduleLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examboard_schedule_loads_total",
			Help: "Exam configuration loads by outcome",
		},
		[]string{"result"},
	)

	LastTickTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "examboard_last_tick_timestamp_seconds",
			Help: "Reference time of the last evaluation",
		},
	)
)

// Observe publishes one timeline evaluation.
func Observe(res timeline.Result, ref time.Time) {
	TicksTotal.Inc()
	LastTickTimestamp.Set(float64(ref.Unix()))

	for status, n := range timeline.Counts(res) {
		ExamsByStatus.WithLabelValues(status.String()).Set(float64(n))
	}

	if res.Current != nil {
		CurrentExamRemaining.Set(float64(timeline.Remaining(*res.Current, ref, timeline.ToEnd).Seconds))
	} else {
		CurrentExamRemaining.Set(0)
	}

	if res.Next != nil {
		NextExamStartsIn.Set(float64(timeline.Remaining(*res.Next, ref, timeline.ToStart).Seconds))
	} else {
		NextExamStartsIn.Set(-1)
	}

	OverlappingExams.Set(float64(len(res.Overlapping)))
}

// WriteTextfile dumps the default registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
