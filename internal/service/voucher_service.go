package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/metrics"
	"storefront/internal/model"
	"storefront/internal/promo"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// voucherService implements VoucherService.
type voucherService struct {
	voucherRepo repository.VoucherRepository
	metrics     *metrics.Metrics
	logger      zerolog.Logger
	now         func() time.Time
}

// NewVoucherService creates a new voucher service.
func NewVoucherService(voucherRepo repository.VoucherRepository, m *metrics.Metrics, logger zerolog.Logger) VoucherService {
	return &voucherService{
		voucherRepo: voucherRepo,
		metrics:     m,
		logger:      logger.With().Str("service", "voucher").Logger(),
		now:         time.Now,
	}
}

// Issue stores a new active voucher as the user's current one.
func (s *voucherService) Issue(ctx context.Context, req *model.IssueVoucherRequest) (*model.Voucher, error) {
	v := &model.Voucher{
		ID:         uuid.New(),
		UserID:     req.UserID,
		Code:       strings.ToUpper(strings.TrimSpace(req.Code)),
		Discount:   req.Discount,
		ValidUntil: req.ValidUntil,
		IsActive:   true,
		Message:    req.Message,
		CreatedAt:  s.now(),
	}

	if err := s.voucherRepo.Upsert(ctx, v); err != nil {
		s.logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to issue voucher")
		return nil, fmt.Errorf("failed to issue voucher: %w", err)
	}

	s.logger.Info().
		Str("user_id", v.UserID).
		Str("voucher_id", v.ID.String()).
		Int64("discount", v.Discount).
		Time("valid_until", v.ValidUntil).
		Msg("voucher issued")

	return v, nil
}

// SetActive flips the user's voucher on or off.
func (s *voucherService) SetActive(ctx context.Context, userID string, active bool) (*model.Voucher, error) {
	if err := s.voucherRepo.SetActive(ctx, userID, active); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to change voucher state")
		return nil, wrapUnlessDomain(err, "failed to change voucher state")
	}

	v, err := s.voucherRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}
	if v == nil {
		return nil, model.ErrVoucherNotFound
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("state", string(promo.StateOf(v, s.now()))).
		Msg("voucher state changed")

	return v, nil
}

// Delete removes the user's voucher.
func (s *voucherService) Delete(ctx context.Context, userID string) error {
	if err := s.voucherRepo.Delete(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to delete voucher")
		return wrapUnlessDomain(err, "failed to delete voucher")
	}

	s.logger.Info().Str("user_id", userID).Msg("voucher deleted")
	return nil
}

// Check validates code against the user's current voucher. The voucher is
// not consumed.
func (s *voucherService) Check(ctx context.Context, userID, code string) (*model.VoucherCheckResponse, error) {
	v, err := s.voucherRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get voucher")
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}

	discount, err := promo.ValidateVoucher(v, code, s.now())
	s.metrics.ObserveVoucherCheck(err)
	if err != nil {
		s.logger.Debug().Err(err).Str("user_id", userID).Msg("voucher rejected")
		return nil, err
	}

	return &model.VoucherCheckResponse{
		Code:     v.Code,
		Discount: discount,
		Message:  v.Message,
	}, nil
}

// List returns every stored voucher.
func (s *voucherService) List(ctx context.Context) ([]model.Voucher, error) {
	vouchers, err := s.voucherRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list vouchers")
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}
