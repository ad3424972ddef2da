// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_resolutions_total",
			Help: "SEO and QR path resolutions by route and outcome",
		},
		[]string{"route", "outcome"},
	)
	resolveLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_resolve_latency_ms",
			Help:    "Latency of path resolution in milliseconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250, 1000, 3000},
		},
		[]string{"route"},
	)
	qrRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_qr_renders_total",
			Help: "QR images served by format and cache result",
		},
		[]string{"format", "cache"},
	)
	modelViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_model_views_total",
			Help: "Tracked model views",
		},
	)
	uploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_upload_size_bytes",
			Help:    "Size of uploaded model files",
			Buckets: prometheus.ExponentialBuckets(64<<10, 4, 8),
		},
	)
	backfillRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_backfill_rows_total",
			Help: "Rows touched by slug backfill by table and result",
		},
		[]string{"table", "result"},
	)
)

// RecordResolution counts one resolution and observes its latency.
func RecordResolution(route, outcome string, elapsed time.Duration) {
	resolutions.WithLabelValues(route, outcome).Inc()
	resolveLatency.WithLabelValues(route).Observe(float64(elapsed.Microseconds()) / 1000.0)
}

// RecordQRRender counts a served QR image. hit reports a cache hit.
func RecordQRRender(format string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	qrRenders.WithLabelValues(format, result).Inc()
}

func RecordView() {
	modelViews.Inc()
}

func RecordUpload(size int64) {
	uploadBytes.Observe(float64(size))
}

// RecordBackfill counts one backfilled row. result is "updated" or "error".
func RecordBackfill(table, result string) {
	backfillRows.WithLabelValues(table, result).Inc()
}
