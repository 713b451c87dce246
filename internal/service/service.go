package service

import (
	"context"
	"time"

	"storefront/internal/model"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// GetAll retrieves products with pagination. Prices reflect the promo
	// window at the time of the call.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create adds a product to the catalogue.
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)

	// SetPromo applies a global percentage promo to a product.
	SetPromo(ctx context.Context, id string, req *model.SetPromoRequest) (*model.Product, error)

	// ClearPromo removes any promo from a product.
	ClearPromo(ctx context.Context, id string) (*model.Product, error)

	// SetAvailability toggles whether a product can be added to carts.
	SetAvailability(ctx context.Context, id string, available bool) (*model.Product, error)
}

// CartService defines operations on the cart of one session.
type CartService interface {
	// Get returns the session's cart.
	Get(ctx context.Context, sessionID string) (model.CartSnapshot, error)

	// AddItem adds one unit of a product at its current effective price.
	AddItem(ctx context.Context, sessionID, productID string) (model.CartSnapshot, error)

	// RemoveItem deletes a product's line.
	RemoveItem(ctx context.Context, sessionID, productID string) (model.CartSnapshot, error)

	// UpdateQuantity changes a line's quantity by delta, never below one.
	UpdateQuantity(ctx context.Context, sessionID, productID string, delta int) (model.CartSnapshot, error)

	// Clear empties the session's cart.
	Clear(ctx context.Context, sessionID string) error
}

// VoucherService defines operations for personal vouchers.
type VoucherService interface {
	// Issue stores a new voucher for a user, replacing the current one.
	Issue(ctx context.Context, req *model.IssueVoucherRequest) (*model.Voucher, error)

	// SetActive flips a user's voucher on or off.
	SetActive(ctx context.Context, userID string, active bool) (*model.Voucher, error)

	// Delete removes a user's voucher.
	Delete(ctx context.Context, userID string) error

	// Check validates code against the user's voucher and returns it.
	Check(ctx context.Context, userID, code string) (*model.VoucherCheckResponse, error)

	// List returns every stored voucher.
	List(ctx context.Context) ([]model.Voucher, error)
}

// CheckoutService turns a session's cart into an order.
type CheckoutService interface {
	// Checkout records the session's cart as an order for userID, applying
	// voucherCode when given, and empties the cart.
	Checkout(ctx context.Context, sessionID, userID, voucherCode string) (*model.CheckoutSummary, error)
}

// ReportService produces manager exports.
type ReportService interface {
	// ExportSales writes a sales CSV covering orders since the given time.
	ExportSales(ctx context.Context, since time.Time) (*model.ReportResponse, error)
}
