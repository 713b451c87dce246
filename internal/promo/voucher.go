package promo

import (
	"strings"
	"time"

	"storefront/internal/model"
)

// VoucherState is the derived redemption state of a personal voucher.
type VoucherState string

const (
	VoucherUnset       VoucherState = "unset"
	VoucherActive      VoucherState = "active"
	VoucherExpired     VoucherState = "expired"
	VoucherDeactivated VoucherState = "deactivated"
)

// ValidateVoucher decides whether enteredCode redeems v at now and returns
// the flat discount when it does. Checks run in a fixed order so the reported
// reason is deterministic: missing voucher, code mismatch, inactive, expired.
//
// Redemption does not consume the voucher.
func ValidateVoucher(v *model.Voucher, enteredCode string, now time.Time) (int64, error) {
	if v == nil || strings.TrimSpace(v.Code) == "" {
		return 0, model.ErrNoActiveVoucher
	}
	if !strings.EqualFold(strings.TrimSpace(enteredCode), strings.TrimSpace(v.Code)) {
		return 0, model.ErrVoucherCodeMismatch
	}
	if !v.IsActive {
		return 0, model.ErrVoucherInactive
	}
	if now.After(v.ValidUntil) {
		return 0, model.ErrVoucherExpired
	}
	return v.Discount, nil
}

// StateOf reports the voucher's state at now. Expiry is never stored.
func StateOf(v *model.Voucher, now time.Time) VoucherState {
	switch {
	case v == nil || strings.TrimSpace(v.Code) == "":
		return VoucherUnset
	case !v.IsActive:
		return VoucherDeactivated
	case now.After(v.ValidUntil):
		return VoucherExpired
	default:
		return VoucherActive
	}
}

// ApplyDiscount subtracts a flat discount from subtotal, never going below zero.
func ApplyDiscount(subtotal, discount int64) int64 {
	if discount >= subtotal {
		return 0
	}
	return subtotal - discount
}
