package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	commandsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_ledger",
			Subsystem: "kafka_consumer",
			Name:      "commands_processed_total",
			Help:      "Total number of successfully applied status commands",
		},
	)

	commandsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "order_ledger",
			Subsystem: "kafka_consumer",
			Name:      "commands_failed_total",
			Help:      "Total number of status commands that could not be applied",
		},
		[]string{"reason"},
	)

	commandsDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_ledger",
			Subsystem: "kafka_consumer",
			Name:      "commands_dlq_total",
			Help:      "Total number of status commands written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_ledger",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	commandProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "order_ledger",
			Subsystem: "kafka_consumer",
			Name:      "command_processing_duration_seconds",
			Help:      "Histogram of status command processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	commandsInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "order_ledger",
			Subsystem: "kafka_consumer",
			Name:      "commands_in_progress",
			Help:      "Number of status commands currently being processed",
		},
	)
)

var (
	eventsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_ledger",
			Subsystem: "kafka_producer",
			Name:      "events_published_total",
			Help:      "Total number of status change events published",
		},
	)

	eventsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_ledger",
			Subsystem: "kafka_producer",
			Name:      "events_failed_total",
			Help:      "Total number of status change events that failed to publish",
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		commandsProcessed,
		commandsFailed,
		commandsDLQ,
		commitErrors,
		commandProcessingDuration,
		commandsInProgress,

		eventsPublished,
		eventsFailed,
	)
}
