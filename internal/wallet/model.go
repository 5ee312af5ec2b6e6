package wallet

import "github.com/shopspring/decimal"

// Info is the caller-facing view of a wallet: the on-ledger balance plus a
// best-effort fiat valuation. BalanceUSD is nil when the price oracle is
// unavailable.
type Info struct {
	WalletID   int64
	BalanceBTC decimal.Decimal
	BalanceUSD *decimal.Decimal
}
