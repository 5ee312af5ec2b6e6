package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bitvault/bitvault/internal/transfer"
)

// RegisterTransactionRoutes wires transfer and journal endpoints.
func RegisterTransactionRoutes(r fiber.Router, h *transfer.Handler) {
	r.Post("/transactions", h.Make)
	r.Get("/users/:userId/transactions", h.ByUser)
	r.Get("/wallets/:walletId/transactions", h.ByWallet)
}

// RegisterStatisticsRoutes wires the operator statistics endpoint behind the
// admin key gate.
func RegisterStatisticsRoutes(r fiber.Router, h *transfer.Handler, adminGate fiber.Handler) {
	r.Get("/statistics", adminGate, h.Stats)
}
