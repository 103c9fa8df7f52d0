package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the review and upload counters.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	reviewsTotal        *prometheus.CounterVec
	imageUploadsTotal   *prometheus.CounterVec
	imageUploadBytes    prometheus.Histogram
}

// New builds a private registry so that several instances (for example
// in tests) never collide on registration.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		reviewsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reviews_created_total",
				Help:      "Review submissions by outcome",
			},
			[]string{"result"},
		),
		imageUploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "image_uploads_total",
				Help:      "Image uploads by outcome",
			},
			[]string{"result"},
		),
		imageUploadBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "image_upload_bytes",
				Help:      "Size of stored review images",
				Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 6),
			},
		),
	}
}

func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	if path == "" {
		path = "unknown"
	}
	code := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func (m *Metrics) ReviewSubmitted(result string) {
	m.reviewsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ImageUploaded(result string, size int64) {
	m.imageUploadsTotal.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		m.imageUploadBytes.Observe(float64(size))
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
