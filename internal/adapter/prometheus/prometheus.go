package prometheus

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusAdapter implements ports.MetricsPort on the default
// prometheus registry, which the /metrics route exposes. Construct it
// once per process.
type PrometheusAdapter struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rowsLoaded      *prometheus.CounterVec
	rowsSkipped     *prometheus.CounterVec
	placeholders    *prometheus.CounterVec
}

func NewPrometheusAdapter() *PrometheusAdapter {
	a := &PrometheusAdapter{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleet_http_requests_total",
			Help: "Number of handled HTTP requests.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleet_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		rowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleet_rows_loaded_total",
			Help: "Rows accepted per feed during graph builds.",
		}, []string{"kind"}),
		rowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleet_rows_skipped_total",
			Help: "Rows dropped per feed during graph builds.",
		}, []string{"kind"}),
		placeholders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleet_placeholders_created_total",
			Help: "Placeholder entities fabricated while linking.",
		}, []string{"kind"}),
	}

	prometheus.MustRegister(
		a.requestsTotal,
		a.requestDuration,
		a.rowsLoaded,
		a.rowsSkipped,
		a.placeholders,
	)
	return a
}

func (a *PrometheusAdapter) RecordMetrics(c *gin.Context, start time.Time) {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	status := strconv.Itoa(c.Writer.Status())

	a.requestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	a.requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
}

func (a *PrometheusAdapter) RecordIngest(kind string, loaded, skipped, created int) {
	a.rowsLoaded.WithLabelValues(kind).Add(float64(loaded))
	a.rowsSkipped.WithLabelValues(kind).Add(float64(skipped))
	a.placeholders.WithLabelValues(kind).Add(float64(created))
}
