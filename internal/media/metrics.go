package media

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fetchkit/internal/core"
)

// Prometheus metrics for the download pipeline
var (
	downloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetchkit_downloads_total",
			Help: "Total media downloads by strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)
	downloadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fetchkit_download_bytes",
			Help:    "Stored artifact size in bytes for completed downloads",
			Buckets: prometheus.ExponentialBuckets(64*1024, 4, 8),
		},
	)
)

// outcomeLabel maps an error to its metric label. Successful downloads are
// labeled "success" at the call site.
func outcomeLabel(err error) string {
	if kind := core.KindOf(err); kind != "" {
		return string(kind)
	}
	return "error"
}
