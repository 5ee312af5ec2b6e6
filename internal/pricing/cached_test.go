package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/bitvault/bitvault/internal/logging"
)

type countingOracle struct {
	calls int
	price decimal.Decimal
	err   error
}

func (o *countingOracle) SpotPrice(context.Context) (decimal.Decimal, error) {
	o.calls++
	return o.price, o.err
}

func setupCache(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return client, func() {
		client.Close()
		mr.Close()
	}
}

func TestCachedHitsUpstreamOnce(t *testing.T) {
	cache, cleanup := setupCache(t)
	defer cleanup()

	upstream := &countingOracle{price: decimal.RequireFromString("50000")}
	oracle := NewCached(upstream, cache, time.Minute, logging.Discard())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		price, err := oracle.SpotPrice(ctx)
		if err != nil {
			t.Fatalf("spot price: %v", err)
		}
		if !price.Equal(upstream.price) {
			t.Fatalf("expected %s, got %s", upstream.price, price)
		}
	}
	if upstream.calls != 1 {
		t.Fatalf("expected a single upstream call, got %d", upstream.calls)
	}
}

func TestCachedPropagatesUpstreamFailure(t *testing.T) {
	cache, cleanup := setupCache(t)
	defer cleanup()

	upstream := &countingOracle{err: errors.New("ticker down")}
	oracle := NewCached(upstream, cache, time.Minute, logging.Discard())

	if _, err := oracle.SpotPrice(context.Background()); err == nil {
		t.Fatalf("expected upstream failure to propagate")
	}
}

func TestStaticOracle(t *testing.T) {
	price := decimal.RequireFromString("42")
	got, err := Static{Price: price}.SpotPrice(context.Background())
	if err != nil {
		t.Fatalf("static oracle: %v", err)
	}
	if !got.Equal(price) {
		t.Fatalf("expected %s, got %s", price, got)
	}
}
