package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersCreated       prometheus.Counter
	UsersUpdated       prometheus.Counter
	UsersDeleted       prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "userdir_users_created_total",
			Help: "Total number of users created.",
		}),
		UsersUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "userdir_users_updated_total",
			Help: "Total number of user updates applied.",
		}),
		UsersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "userdir_users_deleted_total",
			Help: "Total number of users deleted.",
		}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "userdir_validation_failures_total",
			Help: "Validation rejections by field and reason.",
		}, []string{"field", "reason"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "userdir_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "userdir_user_cache_hits_total",
			Help: "User lookups served from the redis cache.",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "userdir_user_cache_misses_total",
			Help: "User lookups that fell through to the primary store.",
		}),
	}
}

// RecordValidationFailure increments the rejection counter for a field/reason pair.
func (m *Metrics) RecordValidationFailure(field, reason string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(field, reason).Inc()
}

// ObserveRequest records one request's latency.
func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, method, status).Observe(seconds)
}
