// Package metrics exposes Prometheus counters for the availability server.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	availabilityQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "availability",
			Name:      "queries_total",
			Help:      "Count of availability queries by outcome.",
		},
		[]string{"outcome"},
	)

	earliestQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "availability",
			Name:      "earliest_queries_total",
			Help:      "Count of earliest-availability queries by outcome.",
		},
		[]string{"outcome"},
	)

	validationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "availability",
			Name:      "validation_failures_total",
			Help:      "Count of requests rejected by input validation.",
		},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "availability",
			Name:      "cache_lookups_total",
			Help:      "Count of result cache lookups by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(availabilityQueries, earliestQueries, validationFailures, cacheLookups)
	})
}

func IncAvailabilityQuery(outcome string) {
	availabilityQueries.WithLabelValues(outcome).Inc()
}

func IncEarliestQuery(outcome string) {
	earliestQueries.WithLabelValues(outcome).Inc()
}

func IncValidationFailure() {
	validationFailures.Inc()
}

func IncCacheLookup(result string) {
	cacheLookups.WithLabelValues(result).Inc()
}
