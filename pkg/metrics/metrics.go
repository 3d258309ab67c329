package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Schedules generated (replacements included).
	ScheduleGenerationCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_generation_count",
			Help: "Total number of milestone schedules generated",
		},
	)

	// Milestones marked completed.
	MilestoneCompletedCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "milestone_completed_count",
			Help: "Total number of milestones marked completed",
		},
	)

	// Day-before reminders emitted by the sweeper.
	ReminderSentCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_sent_count",
			Help: "Total number of day-before reminders sent",
		},
	)

	// Sweep run duration in seconds.
	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reminder_sweep_duration_seconds",
			Help:    "Reminder sweep run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
	)
)

// RecordHTTPRequestDuration records one HTTP request observation.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementScheduleGeneration counts one schedule generation.
func IncrementScheduleGeneration() {
	ScheduleGenerationCount.Inc()
}

// IncrementMilestoneCompleted counts one milestone completion.
func IncrementMilestoneCompleted() {
	MilestoneCompletedCount.Inc()
}

// AddRemindersSent counts reminders emitted by one sweep run.
func AddRemindersSent(n int) {
	ReminderSentCount.Add(float64(n))
}

// RecordSweepDuration records one sweep run observation.
func RecordSweepDuration(duration time.Duration) {
	SweepDuration.Observe(duration.Seconds())
}
