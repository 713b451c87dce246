package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/promo"
	"storefront/internal/report"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// reportService implements ReportService.
type reportService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	sink        report.Sink
	logger      zerolog.Logger
	now         func() time.Time
}

// NewReportService creates a new report service writing to sink.
func NewReportService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	sink report.Sink,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		sink:        sink,
		logger:      logger.With().Str("service", "report").Logger(),
		now:         time.Now,
	}
}

// ExportSales writes units and revenue per product since the given time,
// alongside each product's price and promo status right now.
func (s *reportService) ExportSales(ctx context.Context, since time.Time) (*model.ReportResponse, error) {
	sales, err := s.orderRepo.SalesByProduct(ctx, since)
	if err != nil {
		s.logger.Error().Err(err).Time("since", since).Msg("failed to aggregate sales")
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	ids := make([]string, len(sales))
	for i, row := range sales {
		ids[i] = row.ProductID
	}

	products := map[string]model.Product{}
	if len(ids) > 0 {
		found, err := s.productRepo.GetByIDs(ctx, ids)
		if err != nil {
			s.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to get products for report")
			return nil, fmt.Errorf("failed to get products: %w", err)
		}
		for _, p := range found {
			products[p.ID] = p
		}
	}

	now := s.now()
	rows := make([]report.SalesRow, len(sales))
	for i, sale := range sales {
		row := report.SalesRow{
			ProductID:   sale.ProductID,
			Name:        sale.Name,
			Units:       sale.Units,
			Revenue:     sale.Revenue,
			PromoStatus: string(promo.StatusNone),
		}
		if p, ok := products[sale.ProductID]; ok {
			row.Name = p.Name
			row.CurrentPrice = promo.Reprice(p, now).Price
			row.PromoStatus = string(promo.ProductStatus(p, now))
		}
		rows[i] = row
	}

	data, err := report.EncodeSales(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sales report: %w", err)
	}

	location, err := s.sink.Write(ctx, report.SalesFileName(now), data)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to write sales report")
		return nil, fmt.Errorf("failed to write sales report: %w", err)
	}

	s.logger.Info().
		Str("location", location).
		Int("rows", len(rows)).
		Time("since", since).
		Msg("sales report exported")

	return &model.ReportResponse{Location: location, Rows: len(rows)}, nil
}
