package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	keyPrefix = "auction:highbid:"
	keyTTL    = 10 * time.Minute
)

// HighBid is an advisory cache of the current high bid per item, used to
// reject obviously losing bids before opening a database transaction. It is
// never authoritative: the engine re-checks inside the transaction, so a
// stale or unavailable cache affects latency only, not correctness.
type HighBid struct {
	client *redis.Client
}

// NewHighBid returns nil when addr is empty; all methods are nil-safe so the
// cache can be disabled by configuration.
func NewHighBid(addr string) *HighBid {
	if addr == "" {
		return nil
	}

	return &HighBid{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *HighBid) Get(ctx context.Context, itemId string) (decimal.Decimal, bool) {
	if c == nil {
		return decimal.Zero, false
	}

	val, err := c.client.Get(ctx, keyPrefix+itemId).Result()
	if err != nil {
		// redis.Nil and transport errors alike are treated as a miss
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false
	}

	return amount, true
}

func (c *HighBid) Set(ctx context.Context, itemId string, amount decimal.Decimal) {
	if c == nil {
		return
	}

	// best effort; a failed write just means the next bid misses the cache
	_ = c.client.Set(ctx, keyPrefix+itemId, amount.String(), keyTTL).Err()
}

func (c *HighBid) Forget(ctx context.Context, itemId string) {
	if c == nil {
		return
	}

	_ = c.client.Del(ctx, keyPrefix+itemId).Err()
}

func (c *HighBid) Close() error {
	if c == nil {
		return nil
	}

	return c.client.Close()
}
