package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalogue HTTP requests, including the admin
// endpoints that change it.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests with pagination.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	limit := 10 // default
	if limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0 // default
	if offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid offset parameter", h.logger)
			return
		}
	}

	products, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products, h.logger)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// Create handles POST /api/admin/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to create product", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product, h.logger)
}

// SetAvailability handles PATCH /api/admin/products/{id}/availability requests.
func (h *ProductHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req model.AvailabilityRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	product, err := h.service.SetAvailability(r.Context(), r.PathValue("id"), *req.IsAvailable)
	if err != nil {
		writeServiceError(w, err, "failed to update availability", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// SetPromo handles PUT /api/manager/products/{id}/promo requests.
func (h *ProductHandler) SetPromo(w http.ResponseWriter, r *http.Request) {
	var req model.SetPromoRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	product, err := h.service.SetPromo(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		writeServiceError(w, err, "failed to set promo", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// ClearPromo handles DELETE /api/manager/products/{id}/promo requests.
func (h *ProductHandler) ClearPromo(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.ClearPromo(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "failed to clear promo", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}
