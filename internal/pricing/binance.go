package pricing

import (
	"context"
	"fmt"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

// BinanceOracle fetches the spot price from the public Binance ticker.
// No API credentials are needed for price lookups.
type BinanceOracle struct {
	client *binance.Client
	symbol string
}

// NewBinanceOracle builds an oracle for the given trading symbol, e.g. BTCUSDT.
func NewBinanceOracle(symbol string) *BinanceOracle {
	return &BinanceOracle{client: binance.NewClient("", ""), symbol: symbol}
}

// SpotPrice returns the latest listed price for the configured symbol.
func (o *BinanceOracle) SpotPrice(ctx context.Context) (decimal.Decimal, error) {
	prices, err := o.client.NewListPricesService().Symbol(o.symbol).Do(ctx)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("list prices for %s: %w", o.symbol, err)
	}
	if len(prices) == 0 {
		return decimal.Decimal{}, fmt.Errorf("binance returned no prices for %s", o.symbol)
	}
	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse price %q: %w", prices[0].Price, err)
	}
	return price, nil
}
