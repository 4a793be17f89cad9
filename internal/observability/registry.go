package observability

import "time"

// MetricsRegistry provides an interface for recording application metrics
// This replaces direct access to global Prometheus metrics with dependency injection
type MetricsRegistry interface {
	// HTTP Request metrics
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)

	// Catalog metrics
	IncrementRankings(kind string)

	// Slot resolution metrics
	IncrementCreativesServed(slot string)
	IncrementPlaceholders(slot string)

	// Popup metrics
	IncrementPopupDismissals()

	// Reload metrics
	IncrementReloadErrors()
}

// PrometheusRegistry implements MetricsRegistry using the global Prometheus metrics
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementRankings(kind string) {
	RankingCount.WithLabelValues(kind).Inc()
}

func (r *PrometheusRegistry) IncrementCreativesServed(slot string) {
	CreativeServedCount.WithLabelValues(slot).Inc()
}

func (r *PrometheusRegistry) IncrementPlaceholders(slot string) {
	PlaceholderCount.WithLabelValues(slot).Inc()
}

func (r *PrometheusRegistry) IncrementPopupDismissals() {
	PopupDismissalCount.Inc()
}

func (r *PrometheusRegistry) IncrementReloadErrors() {
	ReloadErrorCount.Inc()
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementRequests(endpoint, method, status string)                    {}
func (r *NoOpRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
func (r *NoOpRegistry) IncrementRankings(kind string)                                        {}
func (r *NoOpRegistry) IncrementCreativesServed(slot string)                                 {}
func (r *NoOpRegistry) IncrementPlaceholders(slot string)                                    {}
func (r *NoOpRegistry) IncrementPopupDismissals()                                            {}
func (r *NoOpRegistry) IncrementReloadErrors()                                               {}
