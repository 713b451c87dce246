package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart HTTP requests. The cart is addressed by the
// X-Session-ID header; a new session id is issued when it is absent.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	snap, err := h.service.Get(r.Context(), session)
	if err != nil {
		writeServiceError(w, err, "failed to load cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, snap, h.logger)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req model.AddItemRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	snap, err := h.service.AddItem(r.Context(), session, req.ProductID)
	if err != nil {
		writeServiceError(w, err, "failed to add item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, snap, h.logger)
}

// UpdateQuantity handles PATCH /api/cart/items/{id} requests.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req model.UpdateQuantityRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	snap, err := h.service.UpdateQuantity(r.Context(), session, r.PathValue("id"), req.Delta)
	if err != nil {
		writeServiceError(w, err, "failed to update quantity", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, snap, h.logger)
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	snap, err := h.service.RemoveItem(r.Context(), session, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "failed to remove item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, snap, h.logger)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.service.Clear(r.Context(), session); err != nil {
		writeServiceError(w, err, "failed to clear cart", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := sessionID(w, r, true)
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingSession, "invalid session id", h.logger)
	}
	return id, ok
}
