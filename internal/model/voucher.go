package model

import (
	"time"

	"github.com/google/uuid"
)

// Voucher is a flat-amount personal discount issued by a manager to one user.
// A user holds at most one current voucher.
type Voucher struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	Code       string    `json:"code" db:"code"`
	Discount   int64     `json:"discount" db:"discount"`
	ValidUntil time.Time `json:"validUntil" db:"valid_until"`
	IsActive   bool      `json:"isActive" db:"is_active"`
	Message    string    `json:"message,omitempty" db:"message"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// IssueVoucherRequest is the manager payload for issuing a personal voucher.
type IssueVoucherRequest struct {
	UserID     string    `json:"userId" validate:"required"`
	Code       string    `json:"code" validate:"required,alphanum,min=3,max=32"`
	Discount   int64     `json:"discount" validate:"gt=0"`
	ValidUntil time.Time `json:"validUntil" validate:"required"`
	Message    string    `json:"message" validate:"max=500"`
}

// VoucherActiveRequest toggles a voucher's active flag.
type VoucherActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// CheckVoucherRequest is the payload for POST /api/vouchers/check.
type CheckVoucherRequest struct {
	Code string `json:"code" validate:"required"`
}

// VoucherCheckResponse reports a successful voucher check.
type VoucherCheckResponse struct {
	Code     string `json:"code"`
	Discount int64  `json:"discount"`
	Message  string `json:"message,omitempty"`
}
