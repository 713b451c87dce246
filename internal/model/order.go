package model

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a checked-out cart.
type Order struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	VoucherCode *string   `json:"voucherCode,omitempty" db:"voucher_code"`
	Subtotal    int64     `json:"subtotal" db:"subtotal"`
	Discount    int64     `json:"discount" db:"discount"`
	Total       int64     `json:"total" db:"total"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	UnitPrice int64     `json:"unitPrice" db:"unit_price"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// CheckoutRequest is the payload for POST /api/checkout.
type CheckoutRequest struct {
	VoucherCode string `json:"voucherCode,omitempty"`
}

// CheckoutSummary is returned after a successful checkout.
type CheckoutSummary struct {
	OrderID     uuid.UUID  `json:"orderId"`
	Lines       []CartLine `json:"lines"`
	TotalItems  int        `json:"totalItems"`
	Subtotal    int64      `json:"subtotal"`
	VoucherCode string     `json:"voucherCode,omitempty"`
	Discount    int64      `json:"discount"`
	Total       int64      `json:"total"`
	Message     string     `json:"message"`
}

// ProductSales aggregates sold units and revenue for one product.
type ProductSales struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Units     int    `json:"units"`
	Revenue   int64  `json:"revenue"`
}

// SalesReportRequest is the manager payload for a CSV sales export.
type SalesReportRequest struct {
	Since time.Time `json:"since" validate:"required"`
}

// ReportResponse names where an exported report was written.
type ReportResponse struct {
	Location string `json:"location"`
	Rows     int    `json:"rows"`
}
