package wallet

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitvault/bitvault/internal/apperr"
	"github.com/bitvault/bitvault/internal/authz"
	"github.com/bitvault/bitvault/internal/identity"
	"github.com/bitvault/bitvault/internal/ledger"
	"github.com/bitvault/bitvault/internal/pricing"
)

const valuationTimeout = 3 * time.Second

// Service exposes wallet operations backed by the ledger. Valuation is
// separable from every balance mutation: the oracle is consulted only when
// building a response, never on the transfer path.
type Service struct {
	users  identity.Repository
	gate   *authz.Service
	ledger ledger.Ledger
	oracle pricing.Oracle
	logger *slog.Logger
}

// NewService builds a wallet service instance.
func NewService(users identity.Repository, gate *authz.Service, led ledger.Ledger, oracle pricing.Oracle, logger *slog.Logger) *Service {
	return &Service{users: users, gate: gate, ledger: led, oracle: oracle, logger: logger}
}

// Create allocates a wallet slot for the user and creates the balance row.
// Slot errors from the identity store propagate unchanged, notably
// ResourceExhausted when the user already owns three wallets.
func (s *Service) Create(ctx context.Context, userID int64, initialBalance decimal.Decimal) (Info, error) {
	if initialBalance.IsNegative() {
		return Info{}, apperr.Invalid("initial balance %s must not be negative", initialBalance)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return Info{}, err
	}
	if len(user.Slots()) == identity.SlotCount {
		return Info{}, apperr.Exhausted("user %d has no wallet slots left", userID)
	}

	w, err := s.ledger.CreateWallet(ctx, userID, initialBalance)
	if err != nil {
		return Info{}, err
	}
	if err := s.users.AllocateSlot(ctx, userID, w.ID); err != nil {
		return Info{}, err
	}

	return Info{WalletID: w.ID, BalanceBTC: w.Balance, BalanceUSD: s.valuate(ctx, w.Balance)}, nil
}

// Get returns wallet info for an owner. Callers that do not own the wallet
// are rejected with an Unauthorized error.
func (s *Service) Get(ctx context.Context, userID, walletID int64) (Info, error) {
	allowed, err := s.gate.MayActOnWallet(ctx, userID, walletID)
	if err != nil {
		return Info{}, err
	}
	if !allowed {
		return Info{}, apperr.Unauthorized("user %d does not have access to wallet %d", userID, walletID)
	}

	w, err := s.ledger.Wallet(ctx, walletID)
	if err != nil {
		return Info{}, err
	}
	return Info{WalletID: w.ID, BalanceBTC: w.Balance, BalanceUSD: s.valuate(ctx, w.Balance)}, nil
}

// Balance returns the raw ledger balance for the wallet.
func (s *Service) Balance(ctx context.Context, walletID int64) (decimal.Decimal, error) {
	w, err := s.ledger.Wallet(ctx, walletID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return w.Balance, nil
}

// valuate converts a balance to USD, returning nil when the oracle fails.
func (s *Service) valuate(ctx context.Context, balance decimal.Decimal) *decimal.Decimal {
	ctx, cancel := context.WithTimeout(ctx, valuationTimeout)
	defer cancel()
	price, err := s.oracle.SpotPrice(ctx)
	if err != nil {
		s.logger.Warn("valuation unavailable", "error", err)
		return nil
	}
	usd := balance.Mul(price)
	return &usd
}
