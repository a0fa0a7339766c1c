package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Flow and outcome label values.
const (
	FlowCity        = "city"
	FlowGeolocation = "geolocation"

	EndpointWeather    = "weather"
	EndpointAirQuality = "air_quality"

	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds the Prometheus counters and histograms for weather queries.
type Metrics struct {
	Registry *prometheus.Registry

	Queries          *prometheus.CounterVec   // labels: flow={city,geolocation}, outcome={success,<error kind>}
	UpstreamRequests *prometheus.CounterVec   // labels: endpoint={weather,air_quality}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: endpoint={weather,air_quality}
}

// NewMetrics creates all query metrics and registers them with a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "korean_weather",
			Name:      "queries_total",
			Help:      "Weather queries by flow and terminal outcome.",
		}, []string{"flow", "outcome"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "korean_weather",
			Name:      "upstream_requests_total",
			Help:      "OpenWeatherMap requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "korean_weather",
			Name:      "upstream_duration_seconds",
			Help:      "OpenWeatherMap request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
	}

	m.Registry.MustRegister(
		m.Queries,
		m.UpstreamRequests,
		m.UpstreamDuration,
	)

	return m
}

// NewMetricsForTesting is NewMetrics under a name tests read more clearly.
// Each call has its own registry, so there are no "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return NewMetrics()
}
