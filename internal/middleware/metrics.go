package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts cache errors by Redis command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronicle_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// ListingDuration records listing service latency by scope.
	ListingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chronicle_listing_duration_seconds",
		Help:    "Post listing latency in seconds by scope",
		Buckets: prometheus.DefBuckets,
	}, []string{"scope"})
)

// InitMetrics creates the Prometheus middleware for HTTP request metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler recording HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
