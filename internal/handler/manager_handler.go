package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ManagerHandler handles manager voucher and report requests.
type ManagerHandler struct {
	vouchers service.VoucherService
	reports  service.ReportService
	logger   zerolog.Logger
}

// NewManagerHandler creates a new manager handler.
func NewManagerHandler(vouchers service.VoucherService, reports service.ReportService, logger zerolog.Logger) *ManagerHandler {
	return &ManagerHandler{
		vouchers: vouchers,
		reports:  reports,
		logger:   logger.With().Str("handler", "manager").Logger(),
	}
}

// IssueVoucher handles POST /api/manager/vouchers requests.
func (h *ManagerHandler) IssueVoucher(w http.ResponseWriter, r *http.Request) {
	var req model.IssueVoucherRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	v, err := h.vouchers.Issue(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to issue voucher", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, v, h.logger)
}

// ListVouchers handles GET /api/manager/vouchers requests.
func (h *ManagerHandler) ListVouchers(w http.ResponseWriter, r *http.Request) {
	vouchers, err := h.vouchers.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list vouchers", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, vouchers, h.logger)
}

// SetVoucherActive handles PATCH /api/manager/vouchers/{userId} requests.
func (h *ManagerHandler) SetVoucherActive(w http.ResponseWriter, r *http.Request) {
	var req model.VoucherActiveRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	v, err := h.vouchers.SetActive(r.Context(), r.PathValue("userId"), *req.IsActive)
	if err != nil {
		writeServiceError(w, err, "failed to update voucher", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, v, h.logger)
}

// DeleteVoucher handles DELETE /api/manager/vouchers/{userId} requests.
func (h *ManagerHandler) DeleteVoucher(w http.ResponseWriter, r *http.Request) {
	if err := h.vouchers.Delete(r.Context(), r.PathValue("userId")); err != nil {
		writeServiceError(w, err, "failed to delete voucher", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportSales handles POST /api/manager/reports/sales requests.
func (h *ManagerHandler) ExportSales(w http.ResponseWriter, r *http.Request) {
	var req model.SalesReportRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	resp, err := h.reports.ExportSales(r.Context(), req.Since)
	if err != nil {
		writeServiceError(w, err, "failed to export sales report", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp, h.logger)
}
