package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"content-analytics-service/internal/analytics/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	QueriesTotal  *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
	QueryErrors   *prometheus.CounterVec
	BuildInfo     *prometheus.GaugeVec
}

// NewMetrics creates and registers the collectors on registry, plus the Go
// runtime and process collectors.
func NewMetrics(registry *prometheus.Registry, version string) *Metrics {
	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "content_analytics_queries_total",
				Help: "Total number of statistics queries",
			},
			[]string{"entity", "operation", "status"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "content_analytics_query_duration_seconds",
				Help:    "Statistics query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"entity", "operation"},
		),
		QueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "content_analytics_query_errors_total",
				Help: "Total number of failed statistics queries by error type",
			},
			[]string{"entity", "operation", "error_type"},
		),
		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "content_analytics_build_info",
				Help: "Build information",
			},
			[]string{"version"},
		),
	}

	m.registry = registry
	registry.MustRegister(
		m.QueriesTotal,
		m.QueryDuration,
		m.QueryErrors,
		m.BuildInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.BuildInfo.WithLabelValues(version).Set(1)

	return m
}

// ObserveQuery records one facade operation.
func (m *Metrics) ObserveQuery(entity, operation string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		m.QueryErrors.WithLabelValues(entity, operation, errorType(err)).Inc()
	}
	m.QueriesTotal.WithLabelValues(entity, operation, status).Inc()
	m.QueryDuration.WithLabelValues(entity, operation).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func errorType(err error) string {
	var sqe *domain.StoreQueryError
	switch {
	case errors.As(err, &sqe):
		return "store"
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrUnsupportedMode),
		errors.Is(err, domain.ErrInvalidLimit),
		errors.Is(err, domain.ErrUnknownMetric),
		errors.Is(err, domain.ErrUnsupportedSource):
		return "validation"
	case errors.Is(err, domain.ErrUnsupportedOperation):
		return "unsupported"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
