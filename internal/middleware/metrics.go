package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis command errors.",
	}, []string{"command"})

	// MailSendFailures counts contact-form delivery failures.
	MailSendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_mail_send_failures_total",
		Help: "Total number of failed outbound contact emails.",
	})

	// MailSendTotal counts successful contact-form deliveries.
	MailSendTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_mail_send_total",
		Help: "Total number of outbound contact emails sent.",
	})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
