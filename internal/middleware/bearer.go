package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fitsync/fitsync/internal/auth"
)

// BearerAuth validates the Authorization header and stores the subject id in
// request locals. Missing token yields 401, failed verification 403; the check
// always completes before any profile read/write handler runs.
func BearerAuth(tokens *auth.Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "Access token required")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		subjectID, err := tokens.Verify(tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusForbidden, "Invalid token")
		}
		c.Locals("user_id", subjectID)
		return c.Next()
	}
}
