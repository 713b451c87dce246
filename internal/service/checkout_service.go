package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/internal/cart"
	"storefront/internal/metrics"
	"storefront/internal/model"
	"storefront/internal/promo"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	store       cart.Store
	locks       *SessionLocks
	orderRepo   repository.OrderRepository
	voucherRepo repository.VoucherRepository
	metrics     *metrics.Metrics
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCheckoutService creates a new checkout service. locks must be the table
// shared with the cart service so checkout and cart edits do not interleave.
func NewCheckoutService(
	store cart.Store,
	locks *SessionLocks,
	orderRepo repository.OrderRepository,
	voucherRepo repository.VoucherRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		store:       store,
		locks:       locks,
		orderRepo:   orderRepo,
		voucherRepo: voucherRepo,
		metrics:     m,
		logger:      logger.With().Str("service", "checkout").Logger(),
		now:         time.Now,
	}
}

// Checkout records the cart as an order and empties it.
func (s *checkoutService) Checkout(ctx context.Context, sessionID, userID, voucherCode string) (*model.CheckoutSummary, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	c, err := cart.Load(ctx, s.store, CartKey(sessionID), s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	snap := c.Snapshot()
	if len(snap.Lines) == 0 {
		return nil, model.ErrCartEmpty
	}

	now := s.now()
	code := strings.TrimSpace(voucherCode)

	var discount int64
	if code != "" {
		v, err := s.voucherRepo.GetByUser(ctx, userID)
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get voucher")
			return nil, fmt.Errorf("failed to get voucher: %w", err)
		}

		discount, err = promo.ValidateVoucher(v, code, now)
		s.metrics.ObserveVoucherCheck(err)
		if err != nil {
			s.logger.Warn().
				Str("user_id", userID).
				Err(err).
				Msg("voucher rejected at checkout")
			return nil, err
		}
		code = v.Code
	}

	order := &model.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Subtotal:  snap.TotalPrice,
		Discount:  min(discount, snap.TotalPrice),
		Total:     promo.ApplyDiscount(snap.TotalPrice, discount),
		CreatedAt: now,
	}
	if code != "" {
		order.VoucherCode = &code
	}

	items := make([]model.OrderItem, len(snap.Lines))
	for i, l := range snap.Lines {
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}

	if err := s.record(ctx, order, items); err != nil {
		return nil, err
	}

	if err := c.Clear(ctx); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("order recorded but cart not cleared")
	}

	s.metrics.ObserveCheckout(order.Total)
	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID).
		Int("item_count", len(items)).
		Int64("total", order.Total).
		Msg("checkout completed")

	summary := &model.CheckoutSummary{
		OrderID:     order.ID,
		Lines:       snap.Lines,
		TotalItems:  snap.TotalItems,
		Subtotal:    order.Subtotal,
		VoucherCode: code,
		Discount:    order.Discount,
		Total:       order.Total,
	}
	summary.Message = OrderMessage(summary)
	return summary, nil
}

// record writes the order and its items in one transaction.
func (s *checkoutService) record(ctx context.Context, order *model.Order, items []model.OrderItem) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// OrderMessage renders a summary as the plain-text order the shopper sends
// to the shop.
func OrderMessage(sum *model.CheckoutSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order %s\n\n", sum.OrderID)
	for i, l := range sum.Lines {
		fmt.Fprintf(&b, "%d. %s x%d @ %s = %s\n", i+1, l.Name, l.Quantity, FormatRupiah(l.UnitPrice), FormatRupiah(l.Subtotal()))
	}

	fmt.Fprintf(&b, "\nItems: %d\n", sum.TotalItems)
	fmt.Fprintf(&b, "Subtotal: %s\n", FormatRupiah(sum.Subtotal))
	if sum.VoucherCode != "" {
		fmt.Fprintf(&b, "Voucher %s: -%s\n", sum.VoucherCode, FormatRupiah(sum.Discount))
	}
	fmt.Fprintf(&b, "Total: %s", FormatRupiah(sum.Total))

	return b.String()
}

// FormatRupiah formats an amount with dot thousand separators, e.g. Rp 15.000.
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	return sign + "Rp " + b.String()
}
