package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clinic",
		Subsystem: "dataaccess",
		Name:      "queries_total",
		Help:      "Data-access operations by backend, operation, table and outcome.",
	}, []string{"backend", "op", "table", "outcome"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clinic",
		Subsystem: "dataaccess",
		Name:      "query_duration_seconds",
		Help:      "Data-access operation latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"backend", "op"})
)

// ObserveQuery records one data-access operation.
func ObserveQuery(backend, op, table string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	queryTotal.WithLabelValues(backend, op, table, outcome).Inc()
	queryDuration.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
}
