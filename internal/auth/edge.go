package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/commerce-mesh/pkg/util"
)

// EdgeGate is the gateway's bearer check. It is a gate, not an
// enrichment step: requests outside the open allow-list must carry a
// valid token or are rejected with 401, and valid requests are
// forwarded unchanged. No identity header is injected; each downstream
// service re-verifies on its own.
func EdgeGate(tokens *TokenManager, openEndpoints []string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, prefix := range openEndpoints {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			if logger != nil {
				logger.Warn("missing or malformed authorization header", zap.String("path", path))
			}
			return apperrors.NewUnauthorized("missing authorization header")
		}

		if !tokens.Validate(token) {
			if logger != nil {
				logger.Warn("edge token validation failed", zap.String("path", path))
			}
			return apperrors.NewUnauthorized("invalid token")
		}

		return c.Next()
	}
}
