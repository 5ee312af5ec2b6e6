// Package pricing supplies the spot BTC price in the reference fiat unit.
// The oracle is display-only: any failure means "valuation unavailable" and
// must never surface as a ledger error.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// Oracle returns the current unit price of the tracked currency.
type Oracle interface {
	SpotPrice(ctx context.Context) (decimal.Decimal, error)
}

// Static always returns a fixed price. Useful for tests and local runs
// without network access.
type Static struct {
	Price decimal.Decimal
}

// SpotPrice returns the configured price.
func (s Static) SpotPrice(_ context.Context) (decimal.Decimal, error) {
	return s.Price, nil
}
