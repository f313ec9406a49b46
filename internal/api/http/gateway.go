package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"

	"github.com/spec-kit/commerce-mesh/internal/api/http/handlers"
	"github.com/spec-kit/commerce-mesh/internal/config"
)

// RegisterGatewayRoutes wires the edge gate and the reverse proxy. The
// gate runs before any forwarding; requests it rejects never reach a
// downstream service. Forwarded requests are passed unchanged — the
// gateway asserts nothing about identity to the services behind it.
func RegisterGatewayRoutes(app *fiber.App, health *handlers.HealthHandler, gate fiber.Handler, services config.ServicesConfig) {
	app.Get("/health/live", health.Live)
	app.Get("/health/metrics", health.Metrics)

	app.Use(gate)

	app.All("/api/v1/auth*", forward(services.AuthURL))
	app.All("/api/v1/users*", forward(services.UserURL))
	app.All("/api/v1/cards*", forward(services.UserURL))
	app.All("/api/v1/orders*", forward(services.OrderURL))
	app.All("/api/v1/items*", forward(services.OrderURL))
	app.All("/api/v1/payments*", forward(services.PaymentURL))
}

func forward(baseURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return proxy.Do(c, baseURL+c.OriginalURL())
	}
}
