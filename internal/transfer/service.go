// Package transfer orchestrates balance transfers: authorization, the atomic
// ledger posting, and journal queries over the recorded history.
package transfer

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bitvault/bitvault/internal/apperr"
	"github.com/bitvault/bitvault/internal/authz"
	"github.com/bitvault/bitvault/internal/identity"
	"github.com/bitvault/bitvault/internal/ledger"
	"github.com/bitvault/bitvault/internal/notification"
)

// Service wires the authorization gate, the ledger and the journal.
type Service struct {
	gate     *authz.Service
	store    ledger.Store
	users    identity.Repository
	notifier notification.Notifier
}

// NewService constructs a transfer service.
func NewService(gate *authz.Service, store ledger.Store, users identity.Repository, notifier notification.Notifier) *Service {
	return &Service{gate: gate, store: store, users: users, notifier: notifier}
}

// Statistics aggregates the whole journal for platform reporting.
type Statistics struct {
	Transactions   int
	PlatformProfit decimal.Decimal
}

// Transfer moves amount between two wallets on behalf of userID. The caller
// must own the source wallet; ownership of the destination is not required.
func (s *Service) Transfer(ctx context.Context, userID, fromID, toID int64, amount decimal.Decimal) (ledger.Transaction, error) {
	allowed, err := s.gate.MayActOnWallet(ctx, userID, fromID)
	if err != nil {
		return ledger.Transaction{}, err
	}
	if !allowed {
		return ledger.Transaction{}, apperr.Unauthorized("user %d may not transfer from wallet %d", userID, fromID)
	}

	record, err := s.store.Transfer(ctx, fromID, toID, amount)
	if err != nil {
		return ledger.Transaction{}, err
	}

	if s.notifier != nil {
		if to, werr := s.store.Wallet(ctx, toID); werr == nil {
			_ = s.notifier.Send(ctx, notification.Message{
				Kind:        notification.KindTransferReceived,
				Destination: fmt.Sprintf("user:%d", to.UserID),
				Body:        fmt.Sprintf("Wallet %d received %s from wallet %d", toID, amount, fromID),
			})
		}
	}

	return record, nil
}

// ByUser unions the transactions touching any of the user's wallets. A user
// with zero wallets is indistinguishable from an absent user for this query
// and yields NotFound.
func (s *Service) ByUser(ctx context.Context, userID int64) ([]ledger.Transaction, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	slots := user.Slots()
	if len(slots) == 0 {
		return nil, apperr.NotFound("user %d has no wallets", userID)
	}
	return s.store.ByWallets(ctx, slots)
}

// ByWallet lists a wallet's transactions for its owner.
func (s *Service) ByWallet(ctx context.Context, userID, walletID int64) ([]ledger.Transaction, error) {
	allowed, err := s.gate.MayActOnWallet(ctx, userID, walletID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.Unauthorized("user %d does not have access to wallet %d", userID, walletID)
	}
	return s.store.ByWallet(ctx, walletID)
}

// Stats scans the full journal and sums the recorded fees.
func (s *Service) Stats(ctx context.Context) (Statistics, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return Statistics{}, err
	}
	profit := decimal.Zero
	for _, t := range all {
		profit = profit.Add(t.LostAmount)
	}
	return Statistics{Transactions: len(all), PlatformProfit: profit}, nil
}
