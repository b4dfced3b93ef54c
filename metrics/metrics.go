package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics menampung semua collector aplikasi dalam satu registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	StoreOperations     *prometheus.CounterVec
	LoginAttempts       *prometheus.CounterVec
	ImageUploads        *prometheus.CounterVec
}

// New mendaftarkan metrics dengan prefix yang diberikan.
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		StoreOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_store_operations_total",
				Help: "Total number of store operations by outcome",
			},
			[]string{"store", "operation", "outcome"},
		),
		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_login_attempts_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
		ImageUploads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_image_uploads_total",
				Help: "Total number of image uploads by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordStoreOperation menaikkan counter operasi store.
func (m *Metrics) RecordStoreOperation(store, operation string, err error) {
	if m == nil {
		return
	}
	m.StoreOperations.WithLabelValues(store, operation, outcome(err)).Inc()
}

// RecordLogin menaikkan counter percobaan login.
func (m *Metrics) RecordLogin(err error) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(outcome(err)).Inc()
}

// RecordUpload menaikkan counter upload gambar.
func (m *Metrics) RecordUpload(err error) {
	if m == nil {
		return
	}
	m.ImageUploads.WithLabelValues(outcome(err)).Inc()
}

// Middleware mencatat jumlah dan durasi setiap request.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler mengekspos registry untuk di-scrape.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry dipakai oleh test.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
