package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stocker-app/stocker-api/pkg/metrics"
)

// MetricsMiddleware registra contador y latencia por método, ruta y status.
// Usa c.Route().Path (la ruta registrada, con :id) para no explotar la
// cardinalidad con cada UUID.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		path := c.Route().Path
		method := c.Method()
		code := strconv.Itoa(status)

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
		return err
	}
}
