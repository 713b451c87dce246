package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, name, category, image_url, price, original_price,
	discount_percent, promo_start, promo_end, is_available, created_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.ImageURL,
		&p.Price,
		&p.OriginalPrice,
		&p.DiscountPercent,
		&p.PromoStart,
		&p.PromoEnd,
		&p.IsAvailable,
		&p.CreatedAt,
	)
	return p, err
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetAll retrieves all products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2`

	return r.queryProducts(ctx, query, limit, offset)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1)
		ORDER BY name`

	return r.queryProducts(ctx, query, ids)
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (id, name, category, image_url, price, original_price,
			discount_percent, promo_start, promo_end, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Category, p.ImageURL, p.Price, p.OriginalPrice,
		p.DiscountPercent, p.PromoStart, p.PromoEnd, p.IsAvailable, p.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// UpdatePromo stores a promo window together with the cached price it yields.
func (r *productRepository) UpdatePromo(ctx context.Context, id string, discountPercent int, start, end *time.Time, cachedPrice int64) error {
	query := `
		UPDATE products
		SET discount_percent = $2, promo_start = $3, promo_end = $4, price = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, discountPercent, start, end, cachedPrice)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to update promo")
		return fmt.Errorf("failed to update promo: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().
		Str("product_id", id).
		Int("discount_percent", discountPercent).
		Int64("cached_price", cachedPrice).
		Msg("promo updated")

	return nil
}

// SetAvailability toggles whether the product can be added to carts.
func (r *productRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET is_available = $2 WHERE id = $1`, id, available)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to update availability")
		return fmt.Errorf("failed to update availability: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}
