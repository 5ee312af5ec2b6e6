package pricing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const cacheKey = "pricing:spot:v1"

// Cached decorates an Oracle with a Redis-backed quote cache so a slow or
// flapping upstream is consulted at most once per TTL.
type Cached struct {
	next   Oracle
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps next with a cache.
func NewCached(next Oracle, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{next: next, cache: cache, ttl: ttl, logger: logger}
}

// SpotPrice returns the cached quote when fresh, otherwise asks the upstream
// oracle and stores the result. Cache faults fall through to the upstream.
func (c *Cached) SpotPrice(ctx context.Context) (decimal.Decimal, error) {
	cached, err := c.cache.Get(ctx, cacheKey).Result()
	if err == nil {
		price, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			return price, nil
		}
		c.logger.Warn("discarding malformed cached price", "value", cached, "error", parseErr)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("price cache lookup failed", "error", err)
	}

	price, err := c.next.SpotPrice(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if err := c.cache.Set(ctx, cacheKey, price.String(), c.ttl).Err(); err != nil {
		c.logger.Warn("price cache store failed", "error", err)
	}
	return price, nil
}
