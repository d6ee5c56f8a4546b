package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnhub_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// AssociationsCreated counts stored teach/learn associations.
	AssociationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnhub_associations_created_total",
		Help: "Total number of user-skill associations created",
	}, []string{"kind"})

	// ChatUpstreamFailures counts chat proxy calls that did not yield a reply.
	ChatUpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnhub_chat_upstream_failures_total",
		Help: "Total number of failed calls to the generative-language upstream",
	}, []string{"reason"})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the process-wide Fiber Prometheus middleware.
// The collectors are registered once on the default registry.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware records request metrics, skipping the scrape endpoint itself.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		return p.Middleware(c)
	}
}
