package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name, excluding cache misses.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "yatube_redis_errors_total",
	Help: "Total number of Redis command errors",
}, []string{"command"})

// FollowWrites counts follow/unfollow mutations by operation.
var FollowWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "yatube_follow_writes_total",
	Help: "Total number of follow edge mutations",
}, []string{"operation"})

// InitMetrics creates the Prometheus HTTP metrics middleware for the service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
