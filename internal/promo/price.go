// Package promo derives effective prices from percentage promos and decides
// whether a personal voucher can be redeemed. Every function takes the
// evaluation time explicitly and has no side effects.
package promo

import (
	"time"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// Status describes where a product sits relative to its promo window.
type Status string

const (
	StatusNone      Status = "none"
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusEnded     Status = "ended"
)

var hundred = decimal.NewFromInt(100)

// EffectivePrice returns the price charged at now for a product with the
// given base price and promo. The discounted price is rounded to the nearest
// whole unit, half away from zero. Both window bounds are inclusive.
func EffectivePrice(basePrice int64, discountPercent int, activeFrom, activeUntil *time.Time, now time.Time) int64 {
	if discountPercent == 0 || activeFrom == nil || activeUntil == nil {
		return basePrice
	}
	if now.Before(*activeFrom) || now.After(*activeUntil) {
		return basePrice
	}
	return Discounted(basePrice, discountPercent)
}

// Discounted applies discountPercent to basePrice unconditionally.
func Discounted(basePrice int64, discountPercent int) int64 {
	factor := hundred.Sub(decimal.NewFromInt(int64(discountPercent))).Div(hundred)
	return decimal.NewFromInt(basePrice).Mul(factor).Round(0).IntPart()
}

// WindowStatus reports the promo state of a window at now.
func WindowStatus(discountPercent int, activeFrom, activeUntil *time.Time, now time.Time) Status {
	switch {
	case discountPercent == 0 || activeFrom == nil || activeUntil == nil:
		return StatusNone
	case now.Before(*activeFrom):
		return StatusScheduled
	case now.After(*activeUntil):
		return StatusEnded
	default:
		return StatusActive
	}
}

// ProductStatus is WindowStatus over a product's promo fields.
func ProductStatus(p model.Product, now time.Time) Status {
	return WindowStatus(p.DiscountPercent, p.PromoStart, p.PromoEnd, now)
}

// Reprice returns p with Price recomputed from OriginalPrice and its promo.
func Reprice(p model.Product, now time.Time) model.Product {
	p.Price = EffectivePrice(p.OriginalPrice, p.DiscountPercent, p.PromoStart, p.PromoEnd, now)
	return p
}

// ValidateWindow checks manager input for a promo. The percent must be in
// [0, 100) and the window, when given, must have both bounds in order.
func ValidateWindow(discountPercent int, activeFrom, activeUntil *time.Time) error {
	if discountPercent < 0 || discountPercent >= 100 {
		return model.ErrInvalidPromo
	}
	if (activeFrom == nil) != (activeUntil == nil) {
		return model.ErrInvalidPromo
	}
	if activeFrom != nil && activeUntil.Before(*activeFrom) {
		return model.ErrInvalidPromo
	}
	return nil
}
