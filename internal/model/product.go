package model

import "time"

// Product represents an item in the storefront catalogue.
//
// Price is a denormalised copy of the effective price written when a promo is
// set. Readers recompute it from OriginalPrice, DiscountPercent and the promo
// window rather than trusting it.
type Product struct {
	ID              string     `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Category        string     `json:"category" db:"category"`
	ImageURL        string     `json:"imageUrl,omitempty" db:"image_url"`
	Price           int64      `json:"price" db:"price"`
	OriginalPrice   int64      `json:"originalPrice" db:"original_price"`
	DiscountPercent int        `json:"discountPercent" db:"discount_percent"`
	PromoStart      *time.Time `json:"promoStart,omitempty" db:"promo_start"`
	PromoEnd        *time.Time `json:"promoEnd,omitempty" db:"promo_end"`
	IsAvailable     bool       `json:"isAvailable" db:"is_available"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
}

// CreateProductRequest is the admin payload for adding a catalogue entry.
type CreateProductRequest struct {
	ID          string `json:"id" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=255"`
	Category    string `json:"category" validate:"required,max=100"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
	Price       int64  `json:"price" validate:"gte=0"`
	IsAvailable bool   `json:"isAvailable"`
}

// SetPromoRequest is the manager payload for a global percentage promo.
type SetPromoRequest struct {
	DiscountPercent int       `json:"discountPercent" validate:"gte=0,lt=100"`
	PromoStart      time.Time `json:"promoStart" validate:"required"`
	PromoEnd        time.Time `json:"promoEnd" validate:"required,gtefield=PromoStart"`
}

// AvailabilityRequest toggles whether a product can be added to a cart.
type AvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}
