package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workout_planner_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workout_planner_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AssignmentsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workout_planner_assignments_created_total",
			Help: "Total number of workout plan assignments created",
		},
	)

	AssignmentsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workout_planner_assignments_completed_total",
			Help: "Total number of assignments marked completed",
		},
	)

	BMICalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workout_planner_bmi_calculations_total",
			Help: "Total number of BMI calculations",
		},
		[]string{"persisted"},
	)

	ExerciseFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workout_planner_exercise_fetches_total",
			Help: "Total number of exercise catalog fetches by source",
		},
		[]string{"source"}, // cache, upstream, fallback
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordAssignments(n int) {
	AssignmentsCreatedTotal.Add(float64(n))
}

func RecordAssignmentCompleted() {
	AssignmentsCompletedTotal.Inc()
}

func RecordBMICalculation(persisted bool) {
	label := "no"
	if persisted {
		label = "yes"
	}
	BMICalculationsTotal.WithLabelValues(label).Inc()
}

func RecordExerciseFetch(source string) {
	ExerciseFetchesTotal.WithLabelValues(source).Inc()
}
