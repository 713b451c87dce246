package promo

import (
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVoucher(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-time.Minute)

	tests := []struct {
		name      string
		voucher   *model.Voucher
		code      string
		expectErr error
		expected  int64
	}{
		{
			name:      "no voucher",
			voucher:   nil,
			code:      "HEMAT10",
			expectErr: model.ErrNoActiveVoucher,
		},
		{
			name:      "empty code on voucher",
			voucher:   &model.Voucher{Code: "", Discount: 10000, ValidUntil: future, IsActive: true},
			code:      "HEMAT10",
			expectErr: model.ErrNoActiveVoucher,
		},
		{
			name:      "code mismatch",
			voucher:   &model.Voucher{Code: "HEMAT10", Discount: 10000, ValidUntil: future, IsActive: true},
			code:      "HEMAT20",
			expectErr: model.ErrVoucherCodeMismatch,
		},
		{
			name:      "mismatch reported before inactive and expired",
			voucher:   &model.Voucher{Code: "HEMAT10", Discount: 10000, ValidUntil: past, IsActive: false},
			code:      "nope",
			expectErr: model.ErrVoucherCodeMismatch,
		},
		{
			name:      "inactive with future expiry",
			voucher:   &model.Voucher{Code: "X", Discount: 5000, ValidUntil: future, IsActive: false},
			code:      "X",
			expectErr: model.ErrVoucherInactive,
		},
		{
			name:      "inactive reported before expired",
			voucher:   &model.Voucher{Code: "X", Discount: 5000, ValidUntil: past, IsActive: false},
			code:      "X",
			expectErr: model.ErrVoucherInactive,
		},
		{
			name:      "expired",
			voucher:   &model.Voucher{Code: "X", Discount: 5000, ValidUntil: past, IsActive: true},
			code:      "X",
			expectErr: model.ErrVoucherExpired,
		},
		{
			name:     "valid at exact expiry",
			voucher:  &model.Voucher{Code: "X", Discount: 5000, ValidUntil: now, IsActive: true},
			code:     "X",
			expected: 5000,
		},
		{
			name:     "case insensitive",
			voucher:  &model.Voucher{Code: "HeMaT10", Discount: 10000, ValidUntil: future, IsActive: true},
			code:     " hemat10 ",
			expected: 10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, err := ValidateVoucher(tt.voucher, tt.code, now)

			if tt.expectErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectErr, err)
				assert.Zero(t, discount)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, discount)
			}
		})
	}
}

func TestValidateVoucher_Repeatable(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	v := &model.Voucher{Code: "LOYAL", Discount: 2500, ValidUntil: now.Add(time.Hour), IsActive: true}

	for i := 0; i < 3; i++ {
		discount, err := ValidateVoucher(v, "loyal", now)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), discount)
	}
}

func TestStateOf(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, VoucherUnset, StateOf(nil, now))
	assert.Equal(t, VoucherUnset, StateOf(&model.Voucher{}, now))
	assert.Equal(t, VoucherDeactivated, StateOf(&model.Voucher{Code: "A", ValidUntil: now.Add(-time.Hour)}, now))
	assert.Equal(t, VoucherExpired, StateOf(&model.Voucher{Code: "A", IsActive: true, ValidUntil: now.Add(-time.Hour)}, now))
	assert.Equal(t, VoucherActive, StateOf(&model.Voucher{Code: "A", IsActive: true, ValidUntil: now.Add(time.Hour)}, now))
}

func TestApplyDiscount(t *testing.T) {
	assert.Equal(t, int64(7000), ApplyDiscount(10000, 3000))
	assert.Equal(t, int64(0), ApplyDiscount(10000, 10000))
	assert.Equal(t, int64(0), ApplyDiscount(10000, 25000))
	assert.Equal(t, int64(10000), ApplyDiscount(10000, 0))
}
