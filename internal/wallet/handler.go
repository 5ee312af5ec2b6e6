package wallet

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/bitvault/bitvault/internal/httpx"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	UserID         int64           `json:"user_id"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type infoResponse struct {
	WalletID   int64            `json:"wallet_id"`
	BalanceBTC decimal.Decimal  `json:"balance_btc"`
	BalanceUSD *decimal.Decimal `json:"balance_usd"`
}

// Create provisions a wallet in one of the user's free slots.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	var info Info
	err := httpx.RetryOnce(func() error {
		var err error
		info, err = h.service.Create(c.UserContext(), req.UserID, req.InitialBalance)
		return err
	})
	if err != nil {
		return httpx.Error(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(info))
}

// Get returns wallet info with a best-effort USD valuation.
func (h *Handler) Get(c *fiber.Ctx) error {
	walletID, err := strconv.ParseInt(c.Params("walletId"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "wallet id must be numeric")
	}
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "user_id must be numeric")
	}
	var info Info
	err = httpx.RetryOnce(func() error {
		var err error
		info, err = h.service.Get(c.UserContext(), userID, walletID)
		return err
	})
	if err != nil {
		return httpx.Error(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(info))
}

func toResponse(info Info) infoResponse {
	return infoResponse{WalletID: info.WalletID, BalanceBTC: info.BalanceBTC, BalanceUSD: info.BalanceUSD}
}
