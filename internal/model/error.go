package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeValidation          = "VALIDATION_FAILED"
	ErrCodeMissingSession      = "MISSING_SESSION"
	ErrCodeMissingUser         = "MISSING_USER"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeProductUnavailable  = "PRODUCT_UNAVAILABLE"
	ErrCodeCartEmpty           = "CART_EMPTY"
	ErrCodeInvalidPromo        = "INVALID_PROMO"
	ErrCodeNoActiveVoucher     = "NO_ACTIVE_VOUCHER"
	ErrCodeVoucherCodeMismatch = "VOUCHER_CODE_MISMATCH"
	ErrCodeVoucherInactive     = "VOUCHER_INACTIVE"
	ErrCodeVoucherExpired      = "VOUCHER_EXPIRED"
	ErrCodeVoucherNotFound     = "VOUCHER_NOT_FOUND"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// AsDomainError unwraps err to a *DomainError if it carries one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrProductUnavailable  = NewDomainError(ErrCodeProductUnavailable, "Product is currently unavailable")
	ErrCartEmpty           = NewDomainError(ErrCodeCartEmpty, "Cart is empty")
	ErrInvalidPromo        = NewDomainError(ErrCodeInvalidPromo, "Promo needs a discount between 0 and 99 and a start no later than its end")
	ErrNoActiveVoucher     = NewDomainError(ErrCodeNoActiveVoucher, "No active voucher for this user")
	ErrVoucherCodeMismatch = NewDomainError(ErrCodeVoucherCodeMismatch, "Voucher code does not match")
	ErrVoucherInactive     = NewDomainError(ErrCodeVoucherInactive, "Voucher has been deactivated")
	ErrVoucherExpired      = NewDomainError(ErrCodeVoucherExpired, "Voucher has expired")
	ErrVoucherNotFound     = NewDomainError(ErrCodeVoucherNotFound, "Voucher not found")
)
