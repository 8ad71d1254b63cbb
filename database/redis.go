package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// CheckoutIdempotencyStore maps checkout idempotency keys to the order they
// produced, so a retried checkout never duplicates an order.
type CheckoutIdempotencyStore struct {
	client *redis.Client
}

func NewCheckoutIdempotencyStore(addr string) *CheckoutIdempotencyStore {
	return &CheckoutIdempotencyStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (s *CheckoutIdempotencyStore) key(k string) string {
	return "idem:checkout:" + k
}

func (s *CheckoutIdempotencyStore) GetOrderID(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *CheckoutIdempotencyStore) SetOrderID(ctx context.Context, key, orderID string) error {
	return s.client.Set(ctx, s.key(key), orderID, idempotencyTTL).Err()
}
