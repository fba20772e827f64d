package rediscart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sorveteria-api/internal/domain"
)

// keyCart is the fixed storage key pattern: cart:{cart_id} -> serialized cart.
const keyCart = "cart:%s"

// NewClient creates a Redis client for the cart store.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// Store persists carts as JSON under a fixed per-cart key with an idle TTL.
// Every Save refreshes the TTL, so only abandoned carts expire.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Load hydrates a cart from storage. A missing key maps to domain.ErrNotFound.
func (s *Store) Load(ctx context.Context, cartID string) (*domain.Cart, error) {
	raw, err := s.rdb.Get(ctx, fmt.Sprintf(keyCart, cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("cart not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var c domain.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return &c, nil
}

// Save writes the serialized cart back and refreshes its TTL.
func (s *Store) Save(ctx context.Context, c *domain.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.rdb.Set(ctx, fmt.Sprintf(keyCart, c.CartID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Delete removes the cart key entirely.
func (s *Store) Delete(ctx context.Context, cartID string) error {
	return s.rdb.Del(ctx, fmt.Sprintf(keyCart, cartID)).Err()
}
