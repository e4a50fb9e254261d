package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch metrics
var (
	FetchResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_results_total",
			Help: "Total number of fetch-if-absent calls by outcome.",
		},
		[]string{"status"},
	)

	DownloadedBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fetch_downloaded_bytes_total",
			Help: "Total number of bytes written to disk by successful downloads.",
		},
	)

	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fetch_duration_seconds",
			Help:    "Duration of fetch-if-absent calls by outcome.",
			Buckets: prometheus.ExponentialBuckets(0.005, 4, 8),
		},
		[]string{"status"},
	)

	LastPassTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fetch_last_pass_timestamp_seconds",
			Help: "Unix time at which the last manifest pass completed.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		FetchResultsTotal,
		DownloadedBytesTotal,
		FetchDuration,
		LastPassTimestamp,
	)
}

// ObserveFetch records the outcome of a single fetch.
func ObserveFetch(status string, size int, elapsed time.Duration) {
	FetchResultsTotal.WithLabelValues(status).Inc()
	FetchDuration.WithLabelValues(status).Observe(elapsed.Seconds())
	if size > 0 {
		DownloadedBytesTotal.Add(float64(size))
	}
}
