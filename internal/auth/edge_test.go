package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/commerce-mesh/pkg/util"
)

func newEdgeApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})

	open := []string{"/api/v1/auth/login", "/api/v1/auth/register", "/api/v1/auth/refresh"}
	app.Use(EdgeGate(newTestManager(), open, nil))

	app.Post("/api/v1/auth/login", func(c *fiber.Ctx) error {
		return c.SendString("login")
	})
	app.Post("/api/v1/auth/refresh", func(c *fiber.Ctx) error {
		return c.SendString("refresh")
	})
	app.Get("/api/v1/orders", func(c *fiber.Ctx) error {
		return c.SendString("orders")
	})
	return app
}

func TestEdgeGate_OpenEndpointNeedsNoToken(t *testing.T) {
	app := newEdgeApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEdgeGate_RefreshOpenDespiteExpiredBearer(t *testing.T) {
	app := newEdgeApp(t)

	timeNow = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	pair, err := newTestManager().Issue(testIdentity)
	timeNow = time.Now
	require.NoError(t, err)

	// a client holding only a stale access token must still reach the
	// refresh exchange through the gate
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEdgeGate_MissingTokenRejected(t *testing.T) {
	app := newEdgeApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEdgeGate_MalformedHeaderRejected(t *testing.T) {
	app := newEdgeApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEdgeGate_ValidTokenForwarded(t *testing.T) {
	app := newEdgeApp(t)

	pair, err := newTestManager().Issue(testIdentity)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEdgeGate_InvalidTokenRejected(t *testing.T) {
	app := newEdgeApp(t)

	forged, err := NewTokenManager("attacker-secret", time.Minute, time.Hour).Issue(testIdentity)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+forged.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
