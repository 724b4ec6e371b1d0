package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	GeneratorRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_generation_runs_total",
			Help: "Daily order generation cycles by shift and result",
		},
		[]string{"shift", "result"},
	)

	OrdersGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_orders_generated_total",
			Help: "Daily order rows inserted by the generator",
		},
		[]string{"shift"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HttpRequestsTotal, HttpRequestDuration, GeneratorRuns, OrdersGenerated)
}

func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "undefined"
		}

		HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HttpRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
	}
}
