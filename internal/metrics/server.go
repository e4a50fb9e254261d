package metrics

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// NewHTTPServer creates an HTTP server that exposes Prometheus metrics at /metrics.
func NewHTTPServer(address string, port int) *http.Server {
	if port == 0 {
		port = 9090
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", address, port),
		Handler: mux,
	}
}

// Push sends the fetch metrics to a Prometheus Pushgateway, replacing the job's previous group.
func Push(gatewayURL, job string) error {
	if job == "" {
		job = "fetchonce"
	}
	return push.New(gatewayURL, job).
		Collector(FetchResultsTotal).
		Collector(DownloadedBytesTotal).
		Collector(FetchDuration).
		Collector(LastPassTimestamp).
		Grouping("instance", hostname()).
		Push()
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "unknown"
	}
	return name
}
