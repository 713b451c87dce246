package repository

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// UpdatePromo stores a promo window together with the cached price it
	// yields. Passing a zero percent and nil bounds clears the promo.
	UpdatePromo(ctx context.Context, id string, discountPercent int, start, end *time.Time, cachedPrice int64) error

	// SetAvailability toggles whether the product can be added to carts.
	SetAvailability(ctx context.Context, id string, available bool) error
}

// VoucherRepository stores the current personal voucher of each user.
type VoucherRepository interface {
	// Upsert stores v as the user's current voucher, replacing any previous one.
	Upsert(ctx context.Context, v *model.Voucher) error

	// GetByUser returns the user's current voucher, or nil when none is set.
	GetByUser(ctx context.Context, userID string) (*model.Voucher, error)

	// SetActive flips the voucher's active flag.
	SetActive(ctx context.Context, userID string, active bool) error

	// Delete removes the user's voucher.
	Delete(ctx context.Context, userID string) error

	// ListAll returns every stored voucher, newest first.
	ListAll(ctx context.Context) ([]model.Voucher, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// SalesByProduct sums units and revenue per product for orders created at
	// or after since.
	SalesByProduct(ctx context.Context, since time.Time) ([]model.ProductSales, error)
}
