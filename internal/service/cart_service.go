package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/cart"
	"storefront/internal/metrics"
	"storefront/internal/model"
	"storefront/internal/promo"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

const cartKeyPrefix = "cart:"

// CartKey returns the store key a session's cart lives under.
func CartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

// cartService implements CartService. Each call restores the cart from the
// store, so any instance can serve any session; calls for the same session
// within one process are serialised.
type cartService struct {
	store       cart.Store
	productRepo repository.ProductRepository
	metrics     *metrics.Metrics
	locks       *SessionLocks
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCartService creates a new cart service.
func NewCartService(
	store cart.Store,
	locks *SessionLocks,
	productRepo repository.ProductRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		store:       store,
		productRepo: productRepo,
		metrics:     m,
		locks:       locks,
		logger:      logger.With().Str("service", "cart").Logger(),
		now:         time.Now,
	}
}

// Get returns the session's cart.
func (s *cartService) Get(ctx context.Context, sessionID string) (model.CartSnapshot, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	c, err := cart.Load(ctx, s.store, CartKey(sessionID), s.logger)
	if err != nil {
		return model.CartSnapshot{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return c.Snapshot(), nil
}

// AddItem adds one unit of the product priced at its current effective price.
func (s *cartService) AddItem(ctx context.Context, sessionID, productID string) (model.CartSnapshot, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to get product")
		return model.CartSnapshot{}, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Str("product_id", productID).Msg("product not found")
		s.metrics.ObserveCartMutation("add", model.ErrProductNotFound)
		return model.CartSnapshot{}, model.ErrProductNotFound
	}

	priced := promo.Reprice(*product, s.now())
	return s.mutate(ctx, sessionID, "add", func(c *cart.Cart) error {
		return c.AddItem(ctx, priced)
	})
}

// RemoveItem deletes a product's line.
func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID string) (model.CartSnapshot, error) {
	return s.mutate(ctx, sessionID, "remove", func(c *cart.Cart) error {
		return c.RemoveItem(ctx, productID)
	})
}

// UpdateQuantity changes a line's quantity by delta.
func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, productID string, delta int) (model.CartSnapshot, error) {
	return s.mutate(ctx, sessionID, "update_quantity", func(c *cart.Cart) error {
		return c.UpdateQuantity(ctx, productID, delta)
	})
}

// Clear empties the session's cart.
func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	_, err := s.mutate(ctx, sessionID, "clear", func(c *cart.Cart) error {
		return c.Clear(ctx)
	})
	return err
}

func (s *cartService) mutate(ctx context.Context, sessionID, op string, change func(*cart.Cart) error) (model.CartSnapshot, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	c, err := cart.Load(ctx, s.store, CartKey(sessionID), s.logger)
	if err != nil {
		s.metrics.ObserveCartMutation(op, err)
		return model.CartSnapshot{}, fmt.Errorf("failed to load cart: %w", err)
	}

	unsubscribe := c.Subscribe(func(snap model.CartSnapshot) {
		s.logger.Debug().
			Str("operation", op).
			Int("line_count", len(snap.Lines)).
			Int("total_items", snap.TotalItems).
			Int64("total_price", snap.TotalPrice).
			Msg("cart changed")
	})
	defer unsubscribe()

	err = change(c)
	s.metrics.ObserveCartMutation(op, err)
	if err != nil {
		if _, ok := model.AsDomainError(err); ok {
			return c.Snapshot(), err
		}
		s.logger.Error().Err(err).Str("operation", op).Msg("cart mutation failed")
		return c.Snapshot(), fmt.Errorf("failed to %s cart item: %w", op, err)
	}

	return c.Snapshot(), nil
}

// SessionLocks hands out one mutex per session and forgets it once nobody
// holds or waits on it. Services that touch the same carts share one.
type SessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewSessionLocks creates an empty lock table.
func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *SessionLocks) lock(sessionID string) (unlock func()) {
	l.mu.Lock()
	sl, ok := l.locks[sessionID]
	if !ok {
		sl = &sessionLock{}
		l.locks[sessionID] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()

	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}
