package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/promo"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
		now:         time.Now,
	}
}

// GetAll retrieves products with pagination.
func (s *productService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	now := s.now()
	for i := range products {
		products[i] = promo.Reprice(products[i], now)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	repriced := promo.Reprice(*product, s.now())
	return &repriced, nil
}

// Create adds a product. The cached price starts at the original price.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	product := &model.Product{
		ID:            req.ID,
		Name:          req.Name,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		Price:         req.Price,
		OriginalPrice: req.Price,
		IsAvailable:   req.IsAvailable,
		CreatedAt:     s.now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ID).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", product.ID).Msg("product created")
	return product, nil
}

// SetPromo applies a promo window and stores the price it yields right now.
func (s *productService) SetPromo(ctx context.Context, id string, req *model.SetPromoRequest) (*model.Product, error) {
	start, end := req.PromoStart, req.PromoEnd
	if err := promo.ValidateWindow(req.DiscountPercent, &start, &end); err != nil {
		s.logger.Warn().
			Str("product_id", id).
			Int("discount_percent", req.DiscountPercent).
			Msg("rejected promo window")
		return nil, err
	}

	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cached := promo.EffectivePrice(product.OriginalPrice, req.DiscountPercent, &start, &end, now)
	if err := s.productRepo.UpdatePromo(ctx, id, req.DiscountPercent, &start, &end, cached); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update promo")
		return nil, wrapUnlessDomain(err, "failed to update promo")
	}

	product.DiscountPercent = req.DiscountPercent
	product.PromoStart = &start
	product.PromoEnd = &end
	product.Price = cached

	s.logger.Info().
		Str("product_id", id).
		Int("discount_percent", req.DiscountPercent).
		Time("promo_start", start).
		Time("promo_end", end).
		Str("status", string(promo.ProductStatus(*product, now))).
		Msg("promo set")

	return product, nil
}

// ClearPromo removes the product's promo and resets its cached price.
func (s *productService) ClearPromo(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.UpdatePromo(ctx, id, 0, nil, nil, product.OriginalPrice); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to clear promo")
		return nil, wrapUnlessDomain(err, "failed to clear promo")
	}

	product.DiscountPercent = 0
	product.PromoStart = nil
	product.PromoEnd = nil
	product.Price = product.OriginalPrice

	s.logger.Info().Str("product_id", id).Msg("promo cleared")
	return product, nil
}

// SetAvailability toggles whether the product can be added to carts.
func (s *productService) SetAvailability(ctx context.Context, id string, available bool) (*model.Product, error) {
	if err := s.productRepo.SetAvailability(ctx, id, available); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("failed to set availability")
		return nil, wrapUnlessDomain(err, "failed to set availability")
	}

	s.logger.Info().Str("product_id", id).Bool("is_available", available).Msg("availability changed")
	return s.GetByID(ctx, id)
}

func (s *productService) load(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// wrapUnlessDomain passes domain errors through untouched so handlers can map
// them, and wraps anything else with msg.
func wrapUnlessDomain(err error, msg string) error {
	if _, ok := model.AsDomainError(err); ok {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
