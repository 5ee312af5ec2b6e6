package transfer

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/bitvault/bitvault/internal/httpx"
	"github.com/bitvault/bitvault/internal/ledger"
)

// Handler exposes transfer and journal HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a transfer handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transferRequest struct {
	UserID       int64           `json:"user_id"`
	FromWalletID int64           `json:"from_wallet_id"`
	ToWalletID   int64           `json:"to_wallet_id"`
	Amount       decimal.Decimal `json:"amount"`
}

type transactionResponse struct {
	TransactionID     int64           `json:"transaction_id"`
	FromWalletID      int64           `json:"from_wallet_id"`
	ToWalletID        int64           `json:"to_wallet_id"`
	AmountTransferred decimal.Decimal `json:"amount_transferred"`
	LostAmount        decimal.Decimal `json:"lost_amount"`
}

// Make processes a wallet-to-wallet transfer.
func (h *Handler) Make(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	var record ledger.Transaction
	err := httpx.RetryOnce(func() error {
		var err error
		record, err = h.service.Transfer(c.UserContext(), req.UserID, req.FromWalletID, req.ToWalletID, req.Amount)
		return err
	})
	if err != nil {
		return httpx.Error(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"transaction_id": record.ID})
}

// ByUser lists every transaction touching the user's wallets.
func (h *Handler) ByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "user id must be numeric")
	}
	var records []ledger.Transaction
	err = httpx.RetryOnce(func() error {
		var err error
		records, err = h.service.ByUser(c.UserContext(), userID)
		return err
	})
	if err != nil {
		return httpx.Error(err)
	}
	return c.Status(http.StatusOK).JSON(toResponses(records))
}

// ByWallet lists a wallet's transactions for its owner.
func (h *Handler) ByWallet(c *fiber.Ctx) error {
	walletID, err := strconv.ParseInt(c.Params("walletId"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "wallet id must be numeric")
	}
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "user_id must be numeric")
	}
	var records []ledger.Transaction
	err = httpx.RetryOnce(func() error {
		var err error
		records, err = h.service.ByWallet(c.UserContext(), userID, walletID)
		return err
	})
	if err != nil {
		return httpx.Error(err)
	}
	return c.Status(http.StatusOK).JSON(toResponses(records))
}

// Stats reports platform-wide journal aggregates.
func (h *Handler) Stats(c *fiber.Ctx) error {
	var stats Statistics
	err := httpx.RetryOnce(func() error {
		var err error
		stats, err = h.service.Stats(c.UserContext())
		return err
	})
	if err != nil {
		return httpx.Error(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"transactions":    stats.Transactions,
		"platform_profit": stats.PlatformProfit,
	})
}

func toResponses(records []ledger.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(records))
	for _, t := range records {
		out = append(out, transactionResponse{
			TransactionID:     t.ID,
			FromWalletID:      t.FromWalletID,
			ToWalletID:        t.ToWalletID,
			AmountTransferred: t.AmountTransferred,
			LostAmount:        t.LostAmount,
		})
	}
	return out
}
