package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OrderSnapshot is the cached view served to the payment confirmation page.
// The page polls aggressively while waiting for the webhook, so snapshots
// keep hot orders off the database.
type OrderSnapshot struct {
	OrderID       string    `json:"orderId"`
	Status        string    `json:"status"`
	Amount        int64     `json:"amount"`
	Quantity      int       `json:"quantity"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	PaidAt        *string   `json:"paidAt,omitempty"`
	ExpiredAt     *string   `json:"expiredAt,omitempty"`
	EventTitle    string    `json:"eventTitle"`
	CategoryName  string    `json:"categoryName"`
	Tickets       []string  `json:"tickets,omitempty"`
	CachedAt      time.Time `json:"cachedAt"`
}

// OrderCache provides short-lived order snapshot caching. A snapshot is
// always invalidated when the reconciliation pipeline moves the status, so
// the TTL only bounds staleness for rows nothing is writing to.
type OrderCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewOrderCache creates an OrderCache with a 5 second default TTL.
func NewOrderCache(redis *RedisClient) *OrderCache {
	return &OrderCache{redis: redis, ttl: 5 * time.Second}
}

func (c *OrderCache) key(orderID string) string {
	return fmt.Sprintf("order:snapshot:%s", orderID)
}

// Get retrieves a cached snapshot, returning redis.Nil-wrapped misses as
// (nil, nil).
func (c *OrderCache) Get(ctx context.Context, orderID string) (*OrderSnapshot, error) {
	raw, err := c.redis.Get(ctx, c.key(orderID))
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap OrderSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order snapshot: %w", err)
	}
	return &snap, nil
}

// Set stores a snapshot.
func (c *OrderCache) Set(ctx context.Context, snap *OrderSnapshot) error {
	snap.CachedAt = time.Now()
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal order snapshot: %w", err)
	}
	return c.redis.Set(ctx, c.key(snap.OrderID), string(raw), c.ttl)
}

// Invalidate drops the snapshot for an order. Called after every applied
// status transition.
func (c *OrderCache) Invalidate(ctx context.Context, orderID string) error {
	return c.redis.Delete(ctx, c.key(orderID))
}
