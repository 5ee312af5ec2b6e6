package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

const dependencyProbeTimeout = 2 * time.Second

// RegisterHealthRoutes adds a readiness endpoint reporting the state of the
// ledger store and the quote/idempotency cache.
func RegisterHealthRoutes(app *fiber.App, d Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), dependencyProbeTimeout)
		defer cancel()

		checks := fiber.Map{}
		healthy := true

		ledgerStore := "ok"
		if d.DB != nil {
			if err := d.DB.Ping(ctx); err != nil {
				ledgerStore = err.Error()
				healthy = false
			}
		}
		checks["ledger_store"] = ledgerStore

		cache := "ok"
		if d.Cache != nil {
			if err := d.Cache.Ping(ctx).Err(); err != nil {
				cache = err.Error()
				healthy = false
			}
		}
		checks["cache"] = cache

		status := http.StatusOK
		state := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		return c.Status(status).JSON(fiber.Map{
			"status":    state,
			"checks":    checks,
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
}
