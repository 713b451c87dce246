package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const voucherColumns = `id, user_id, code, discount, valid_until, is_active, message, created_at`

// voucherRepository implements VoucherRepository using PostgreSQL.
type voucherRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVoucherRepository creates a new PostgreSQL-backed voucher repository.
func NewVoucherRepository(pool *pgxpool.Pool, logger zerolog.Logger) VoucherRepository {
	return &voucherRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "voucher").Logger(),
	}
}

func scanVoucher(row pgx.Row) (model.Voucher, error) {
	var v model.Voucher
	err := row.Scan(&v.ID, &v.UserID, &v.Code, &v.Discount, &v.ValidUntil, &v.IsActive, &v.Message, &v.CreatedAt)
	return v, err
}

// Upsert stores v as the user's current voucher.
func (r *voucherRepository) Upsert(ctx context.Context, v *model.Voucher) error {
	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET id = EXCLUDED.id,
			code = EXCLUDED.code,
			discount = EXCLUDED.discount,
			valid_until = EXCLUDED.valid_until,
			is_active = EXCLUDED.is_active,
			message = EXCLUDED.message,
			created_at = EXCLUDED.created_at
	`

	_, err := r.pool.Exec(ctx, query,
		v.ID, v.UserID, v.Code, v.Discount, v.ValidUntil, v.IsActive, v.Message, v.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", v.UserID).Msg("failed to upsert voucher")
		return fmt.Errorf("failed to upsert voucher: %w", err)
	}

	return nil
}

// GetByUser returns the user's current voucher, or nil when none is set.
func (r *voucherRepository) GetByUser(ctx context.Context, userID string) (*model.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE user_id = $1`

	v, err := scanVoucher(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query voucher")
		return nil, fmt.Errorf("failed to query voucher: %w", err)
	}

	return &v, nil
}

// SetActive flips the voucher's active flag.
func (r *voucherRepository) SetActive(ctx context.Context, userID string, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE vouchers SET is_active = $2 WHERE user_id = $1`, userID, active)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to update voucher")
		return fmt.Errorf("failed to update voucher: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrVoucherNotFound
	}

	return nil
}

// Delete removes the user's voucher.
func (r *voucherRepository) Delete(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vouchers WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to delete voucher")
		return fmt.Errorf("failed to delete voucher: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrVoucherNotFound
	}

	return nil
}

// ListAll returns every stored voucher, newest first.
func (r *voucherRepository) ListAll(ctx context.Context) ([]model.Voucher, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+voucherColumns+` FROM vouchers ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query vouchers")
		return nil, fmt.Errorf("failed to query vouchers: %w", err)
	}
	defer rows.Close()

	vouchers := []model.Voucher{}
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vouchers: %w", err)
	}

	return vouchers, nil
}
