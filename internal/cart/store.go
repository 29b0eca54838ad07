package cart

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/cache"
)

const lockStripes = 64

// Store persists carts in a cache.Store with a sliding expiry.
// Update serializes writers of the same cart within this process.
type Store struct {
	cache cache.Store
	ttl   time.Duration
	now   func() time.Time
	locks [lockStripes]sync.Mutex
}

func NewStore(c cache.Store, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl, now: time.Now}
}

// Load returns the cart for id, or an empty cart when none is stored
func (s *Store) Load(ctx context.Context, id string) (*Cart, error) {
	var c Cart
	err := s.cache.Get(ctx, cacheKey(id), &c)
	if errors.Is(err, cache.ErrCacheMiss) {
		return New(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", id, err)
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	c.ID = id
	return &c, nil
}

// Update loads the cart, applies fn and saves the result while holding the
// cart's lock. Nothing is saved when fn fails.
func (s *Store) Update(ctx context.Context, id string, fn func(*Cart) error) (*Cart, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%lockStripes]
}

// Save stores the cart and refreshes its expiry
func (s *Store) Save(ctx context.Context, c *Cart) error {
	c.UpdatedAt = s.now().UTC()
	if err := s.cache.Set(ctx, cacheKey(c.ID), c, s.ttl); err != nil {
		return fmt.Errorf("save cart %s: %w", c.ID, err)
	}
	return nil
}

// Delete removes the stored cart
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
		return fmt.Errorf("delete cart %s: %w", id, err)
	}
	return nil
}

func cacheKey(id string) string {
	return fmt.Sprintf("cart:%s", id)
}
