package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const adminKeyHeader = "X-Admin-Key"

// AdminKey guards operator-only endpoints. The configured key is hashed once
// at wiring time so the plaintext never sits next to request handling, and
// presented keys are checked with bcrypt's constant-time comparison.
func AdminKey(key string) (fiber.Handler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return func(c *fiber.Ctx) error {
		presented := c.Get(adminKeyHeader)
		if presented == "" {
			return fiber.NewError(http.StatusForbidden, "admin key required")
		}
		if bcrypt.CompareHashAndPassword(hash, []byte(presented)) != nil {
			return fiber.NewError(http.StatusForbidden, "admin key rejected")
		}
		return c.Next()
	}, nil
}
