package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adcatalog_requests_total",
			Help: "Total API requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adcatalog_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// rankings built per entity kind and category
	RankingCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adcatalog_rankings_total",
			Help: "Total category rankings built",
		},
		[]string{"kind"},
	)

	// creatives served per slot
	CreativeServedCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adcatalog_creatives_served_total",
			Help: "Total creatives resolved for slots",
		},
		[]string{"slot"},
	)

	// placeholder responses per slot (no eligible creative)
	PlaceholderCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adcatalog_placeholders_total",
			Help: "Total placeholder (no creative) slot responses",
		},
		[]string{"slot"},
	)

	// popup dismissals recorded
	PopupDismissalCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "adcatalog_popup_dismissals_total",
			Help: "Total popup dismissals recorded",
		},
	)

	// catalog reload failures
	ReloadErrorCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "adcatalog_reload_errors_total",
			Help: "Total catalog reload failures",
		},
	)
)

func init() {
	// register all metrics
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		RankingCount,
		CreativeServedCount,
		PlaceholderCount,
		PopupDismissalCount,
		ReloadErrorCount,
	)
}
