package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bitvault/bitvault/internal/identity"
)

// RegisterIdentityRoutes wires user registration.
func RegisterIdentityRoutes(r fiber.Router, h *identity.Handler, rateLimit fiber.Handler) {
	r.Post("/users", rateLimit, h.Register)
}
