package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fitsync/fitsync/internal/account"
)

// RegisterProfileRoutes wires the bearer-protected profile endpoints.
func RegisterProfileRoutes(r fiber.Router, h *account.Handler, bearer fiber.Handler) {
	group := r.Group("/profile", bearer)
	group.Get("", h.GetProfile)
	group.Put("", h.UpdateProfile)
}
