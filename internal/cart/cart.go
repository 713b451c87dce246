// Package cart holds the shopping cart aggregate: an ordered set of product
// lines with derived totals, persisted as a whole to a Store after every
// mutation.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// Observer receives a snapshot after every successful mutation.
type Observer func(model.CartSnapshot)

// Cart is the aggregate for one shopper's cart. It is safe for concurrent use.
type Cart struct {
	mu     sync.Mutex
	key    string
	store  Store
	lines  []model.CartLine
	logger zerolog.Logger

	observers  map[int]Observer
	nextHandle int
}

// Load restores the cart stored under key. A missing key or a malformed
// snapshot yields an empty cart. Any other store failure is returned, since
// persisting over the unread snapshot would lose it.
func Load(ctx context.Context, store Store, key string, logger zerolog.Logger) (*Cart, error) {
	c := &Cart{
		key:       key,
		store:     store,
		lines:     []model.CartLine{},
		logger:    logger.With().Str("component", "cart").Str("cart_key", key).Logger(),
		observers: make(map[int]Observer),
	}

	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c, nil
		}
		c.logger.Error().Err(err).Msg("failed to read cart snapshot")
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	lines, err := decodeLines(data)
	if err != nil {
		c.logger.Warn().Err(err).Msg("discarding malformed cart snapshot")
		return c, nil
	}

	c.lines = lines
	c.logger.Debug().Int("line_count", len(lines)).Msg("cart restored")
	return c, nil
}

// Key returns the store key this cart persists under.
func (c *Cart) Key() string {
	return c.key
}

// AddItem adds one unit of p. A product that is not available is rejected
// with model.ErrProductUnavailable and the cart is left unchanged.
func (c *Cart) AddItem(ctx context.Context, p model.Product) error {
	if !p.IsAvailable {
		c.logger.Debug().Str("product_id", p.ID).Msg("rejected unavailable product")
		return model.ErrProductUnavailable
	}

	return c.mutate(ctx, func() bool {
		if i := c.indexOf(p.ID); i >= 0 {
			c.lines[i].Quantity++
			return true
		}
		c.lines = append(c.lines, model.CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Category:  p.Category,
			ImageURL:  p.ImageURL,
			UnitPrice: p.Price,
			Quantity:  1,
		})
		return true
	})
}

// RemoveItem deletes the line for productID. Removing an absent product is a
// no-op.
func (c *Cart) RemoveItem(ctx context.Context, productID string) error {
	return c.mutate(ctx, func() bool {
		i := c.indexOf(productID)
		if i < 0 {
			return false
		}
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return true
	})
}

// UpdateQuantity adds delta to the line's quantity, clamping at 1. It never
// removes a line; use RemoveItem for that.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, delta int) error {
	return c.mutate(ctx, func() bool {
		i := c.indexOf(productID)
		if i < 0 {
			return false
		}
		c.lines[i].Quantity = max(1, c.lines[i].Quantity+delta)
		return true
	})
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	return c.mutate(ctx, func() bool {
		c.lines = []model.CartLine{}
		return true
	})
}

// TotalPrice returns the sum of unit price × quantity over all lines.
func (c *Cart) TotalPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalPrice(c.lines)
}

// TotalItems returns the sum of quantities over all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalItems(c.lines)
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Snapshot returns a copy of the cart with its totals.
func (c *Cart) Snapshot() model.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to be called after every mutation and returns a
// function that removes it.
func (c *Cart) Subscribe(fn Observer) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	handle := c.nextHandle
	c.nextHandle++
	c.observers[handle] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, handle)
	}
}

// mutate runs change under the lock and, when it reports a change, persists
// the full snapshot and notifies observers outside the lock. A failed write is
// returned but the in-memory change stands.
func (c *Cart) mutate(ctx context.Context, change func() bool) error {
	c.mu.Lock()
	if !change() {
		c.mu.Unlock()
		return nil
	}

	snap := c.snapshotLocked()
	err := c.persistLocked(ctx)

	observers := make([]Observer, 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
	return err
}

func (c *Cart) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(c.lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		c.logger.Error().Err(err).Msg("failed to persist cart")
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func (c *Cart) snapshotLocked() model.CartSnapshot {
	lines := make([]model.CartLine, len(c.lines))
	copy(lines, c.lines)
	return model.CartSnapshot{
		Lines:      lines,
		TotalPrice: totalPrice(lines),
		TotalItems: totalItems(lines),
	}
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func totalPrice(lines []model.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

func totalItems(lines []model.CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// decodeLines parses a persisted lines array. Snapshots with a blank product
// id, a quantity below 1, a negative price or a repeated product are rejected
// as a whole.
func decodeLines(data []byte) ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		if l.ProductID == "" {
			return nil, fmt.Errorf("line %d: missing product id", i)
		}
		if l.Quantity < 1 {
			return nil, fmt.Errorf("line %d: quantity %d below 1", i, l.Quantity)
		}
		if l.UnitPrice < 0 {
			return nil, fmt.Errorf("line %d: negative price", i)
		}
		if _, dup := seen[l.ProductID]; dup {
			return nil, fmt.Errorf("line %d: duplicate product %s", i, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
	}

	if lines == nil {
		lines = []model.CartLine{}
	}
	return lines, nil
}
