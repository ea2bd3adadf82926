package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyplan",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	scans = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyplan",
			Name:      "availability_scans_total",
			Help:      "Count of availability scans by outcome.",
		},
		[]string{"outcome"},
	)

	recordsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyplan",
			Name:      "records_skipped_total",
			Help:      "Count of malformed records skipped during scans.",
		},
		[]string{"kind"},
	)

	scanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "studyplan",
			Name:      "availability_scan_duration_seconds",
			Help:      "Duration of availability scans.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyplan",
			Name:      "cache_requests_total",
			Help:      "Count of availability cache lookups by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, scans, recordsSkipped, scanDuration, cacheHits)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncScan(outcome string) {
	scans.WithLabelValues(outcome).Inc()
}

func AddRecordsSkipped(kind string, n int) {
	recordsSkipped.WithLabelValues(kind).Add(float64(n))
}

func ObserveScanDuration(seconds float64) {
	scanDuration.Observe(seconds)
}

func IncCache(result string) {
	cacheHits.WithLabelValues(result).Inc()
}
