package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-mesh/internal/api/http/handlers"
	"github.com/spec-kit/commerce-mesh/internal/auth"
)

// registerCommon wires the probes and the downstream trust chain shared
// by every service: internal filter first, then the bearer filter.
func registerCommon(app *fiber.App, health *handlers.HealthHandler, m *auth.Middleware) {
	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)
	app.Get("/health/metrics", health.Metrics)

	app.Use(m.InternalTrust(), m.Authenticate())
}

// RegisterAuthRoutes wires the auth-service endpoints. Login, register
// and refresh are registered before the trust chain: refresh carries
// the refresh token in the body, and a stale access bearer on the same
// request must not block the exchange.
func RegisterAuthRoutes(app *fiber.App, health *handlers.HealthHandler, m *auth.Middleware, h *handlers.AuthHandler) {
	group := app.Group("/api/v1/auth")
	group.Post("/login", h.Login)
	group.Post("/register", h.Register)
	group.Post("/refresh", h.Refresh)

	registerCommon(app, health, m)

	group.Post("/validate", auth.RequireAuthenticated(), h.Validate)
}

// RegisterUserRoutes wires the user-service endpoints. Profile creation
// and deletion are reserved for inter-service callers.
func RegisterUserRoutes(app *fiber.App, health *handlers.HealthHandler, m *auth.Middleware, h *handlers.UsersHandler, cards *handlers.CardsHandler) {
	registerCommon(app, health, m)

	group := app.Group("/api/v1/users")
	group.Post("/", auth.RequireService(), h.Create)
	group.Delete("/:id", auth.RequireService(), h.Delete)
	group.Get("/", auth.RequireAuthenticated(), h.List)
	group.Get("/:id", auth.RequireAuthenticated(), h.Get)
	group.Put("/:id", auth.RequireAuthenticated(), h.Update)

	cardGroup := app.Group("/api/v1/cards", auth.RequireAuthenticated())
	cardGroup.Post("/", cards.Create)
	cardGroup.Get("/", cards.ListByUser)
	cardGroup.Get("/:id", cards.Get)
	cardGroup.Put("/:id", cards.Update)
	cardGroup.Delete("/:id", cards.Delete)
}

// RegisterOrderRoutes wires the order-service endpoints.
func RegisterOrderRoutes(app *fiber.App, health *handlers.HealthHandler, m *auth.Middleware, h *handlers.OrdersHandler, items *handlers.ItemsHandler) {
	registerCommon(app, health, m)

	group := app.Group("/api/v1/orders", auth.RequireAuthenticated())
	group.Post("/", h.Create)
	group.Get("/", h.ListByUser)
	group.Get("/:id", h.Get)

	app.Get("/api/v1/items", auth.RequireAuthenticated(), items.List)
}

// RegisterPaymentRoutes wires the payment-service endpoints.
func RegisterPaymentRoutes(app *fiber.App, health *handlers.HealthHandler, m *auth.Middleware, h *handlers.PaymentsHandler) {
	registerCommon(app, health, m)

	group := app.Group("/api/v1/payments", auth.RequireAuthenticated())
	group.Get("/", h.ListByUser)
	group.Get("/order/:id", h.GetByOrder)
}
