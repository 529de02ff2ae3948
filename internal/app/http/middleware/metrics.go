package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	webhookProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_webhook_processed_total",
			Help: "Payment gateway notifications by resulting transaction status",
		},
		[]string{"status"},
	)

	entitlementExtendedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "premium_entitlements_extended_total",
			Help: "Premium windows opened by successful payments",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(webhookProcessedTotal)
	prometheus.MustRegister(entitlementExtendedTotal)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func RecordWebhookProcessed(status string) {
	webhookProcessedTotal.WithLabelValues(status).Inc()
}

func RecordEntitlementExtended() {
	entitlementExtendedTotal.Inc()
}
