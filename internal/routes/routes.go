package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/bitvault/bitvault/internal/authz"
	"github.com/bitvault/bitvault/internal/config"
	"github.com/bitvault/bitvault/internal/identity"
	"github.com/bitvault/bitvault/internal/ledger"
	"github.com/bitvault/bitvault/internal/middleware"
	"github.com/bitvault/bitvault/internal/notification"
	"github.com/bitvault/bitvault/internal/pricing"
	"github.com/bitvault/bitvault/internal/transfer"
	"github.com/bitvault/bitvault/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes. Components are
// constructed once here and passed down explicitly; there is no ambient
// global state.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var users identity.Repository
	var store ledger.Store
	if d.DB != nil {
		users = identity.NewPostgresRepository(d.DB)
		store = ledger.NewPostgresStore(d.DB)
	} else {
		users = identity.NewMemoryRepository()
		store = ledger.NewInMemory()
	}

	var oracle pricing.Oracle = pricing.NewBinanceOracle(d.Cfg.PriceSymbol)
	if d.Cache != nil {
		oracle = pricing.NewCached(oracle, d.Cache, d.Cfg.PriceCacheTTL, d.Logger)
	}

	gate := authz.NewService(users)
	identitySvc := identity.NewService(users)
	walletSvc := wallet.NewService(users, gate, store, oracle, d.Logger)
	notifier := notification.NewLoggerNotifier(d.Logger)
	transferSvc := transfer.NewService(gate, store, users, notifier)

	identityHandler := identity.NewHandler(identitySvc)
	walletHandler := wallet.NewHandler(walletSvc)
	transferHandler := transfer.NewHandler(transferSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	rateLimiter := middleware.RegisterRateLimit(d.Cache, 5)
	RegisterIdentityRoutes(api, identityHandler, rateLimiter)
	RegisterWalletRoutes(api, walletHandler)
	RegisterTransactionRoutes(api, transferHandler)

	adminGate, err := middleware.AdminKey(d.Cfg.AdminAPIKey)
	if err != nil {
		return err
	}
	RegisterStatisticsRoutes(api, transferHandler, adminGate)

	return nil
}
