package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type sessionBackend interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

// SessionStore persists carts in Redis keyed by user ID. Each save
// refreshes the TTL, so an active cart never expires mid-session.
type SessionStore struct {
	backend sessionBackend
	ttl     time.Duration
}

// NewSessionStore builds a Redis-backed cart store.
func NewSessionStore(backend sessionBackend, ttl time.Duration) (*SessionStore, error) {
	if backend == nil {
		return nil, fmt.Errorf("redis backend required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &SessionStore{backend: backend, ttl: ttl}, nil
}

// Load returns the cart for the user, or a fresh empty cart when none
// is stored or the previous one expired.
func (s *SessionStore) Load(ctx context.Context, userID string) (*Cart, error) {
	raw, err := s.backend.Get(ctx, s.backend.CartKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return New(), nil
		}
		return nil, err
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []Item{}
	}
	return &cart, nil
}

// Save stores the cart and refreshes its TTL.
func (s *SessionStore) Save(ctx context.Context, userID string, cart *Cart) error {
	if cart == nil {
		return fmt.Errorf("cart required")
	}
	cart.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return s.backend.Set(ctx, s.backend.CartKey(userID), string(payload), s.ttl)
}

// Clear drops the stored cart entirely.
func (s *SessionStore) Clear(ctx context.Context, userID string) error {
	return s.backend.Del(ctx, s.backend.CartKey(userID))
}
