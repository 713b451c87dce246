package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles shopper requests that need both a session and a
// user: checkout and voucher checks.
type CheckoutHandler struct {
	checkout service.CheckoutService
	vouchers service.VoucherService
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkout service.CheckoutService, vouchers service.VoucherService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		vouchers: vouchers,
		logger:   logger.With().Str("handler", "checkout").Logger(),
	}
}

// Checkout handles POST /api/checkout requests. The body is optional.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, false)
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingSession, "session id is required", h.logger)
		return
	}

	user, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeMissingUser, "user id is required", h.logger)
		return
	}

	var req model.CheckoutRequest
	if r.ContentLength != 0 {
		if !decode(w, r, &req, h.logger) {
			return
		}
	}

	summary, err := h.checkout.Checkout(r.Context(), session, user, req.VoucherCode)
	if err != nil {
		writeServiceError(w, err, "failed to check out", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, summary, h.logger)
}

// CheckVoucher handles POST /api/vouchers/check requests.
func (h *CheckoutHandler) CheckVoucher(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeMissingUser, "user id is required", h.logger)
		return
	}

	var req model.CheckVoucherRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	resp, err := h.vouchers.Check(r.Context(), user, req.Code)
	if err != nil {
		writeServiceError(w, err, "failed to check voucher", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp, h.logger)
}
