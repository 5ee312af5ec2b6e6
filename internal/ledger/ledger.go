// Package ledger holds wallet balances and the append-only transaction
// journal. Transfer is the single mutation path: validation, fee assessment,
// dual balance update and journal append happen as one atomic unit.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// FeeRate is the fixed 1.5% applied to cross-owner transfer amounts. The fee
// is recorded in the journal as lost_amount but never debited from either
// balance: the recipient receives the full amount.
var FeeRate = decimal.RequireFromString("0.015")

// Wallet holds a balance owned by exactly one user, fixed at creation.
type Wallet struct {
	ID      int64
	UserID  int64
	Balance decimal.Decimal
}

// Transaction is an immutable journal entry for a completed transfer.
type Transaction struct {
	ID                int64
	FromWalletID      int64
	ToWalletID        int64
	AmountTransferred decimal.Decimal
	LostAmount        decimal.Decimal
}

// Ledger is the contract implemented by wallet storage backends.
type Ledger interface {
	// CreateWallet inserts a wallet row with the given non-negative
	// initial balance and returns it.
	CreateWallet(ctx context.Context, userID int64, initialBalance decimal.Decimal) (Wallet, error)
	// Wallet fetches a wallet, NotFound when absent.
	Wallet(ctx context.Context, id int64) (Wallet, error)
	// Transfer moves amount between two wallets, records the journal
	// entry and returns it. Either all three effects land or none do.
	Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (Transaction, error)
}

// Journal exposes read access to the transaction history.
type Journal interface {
	// ByWallet lists transactions where the wallet is source or
	// destination, in insertion order. Empty slice when there are none.
	ByWallet(ctx context.Context, walletID int64) ([]Transaction, error)
	// ByWallets unions transactions touching any of the given wallets,
	// in insertion order without duplicates.
	ByWallets(ctx context.Context, walletIDs []int64) ([]Transaction, error)
	// All scans the full journal, used for aggregate statistics.
	All(ctx context.Context) ([]Transaction, error)
}

// Store combines balance mutation and journal reads; both backends satisfy it.
type Store interface {
	Ledger
	Journal
}
