package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/metrics"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers the router dispatches to.
type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Manager  *handler.ManagerHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, m *metrics.Metrics, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("GET /metrics", m.Handler())

	// Catalogue
	mux.HandleFunc("GET /api/products", h.Product.GetAll)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)

	// Cart, addressed by X-Session-ID
	mux.HandleFunc("GET /api/cart", h.Cart.Get)
	mux.HandleFunc("DELETE /api/cart", h.Cart.Clear)
	mux.HandleFunc("POST /api/cart/items", h.Cart.AddItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", h.Cart.UpdateQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.Cart.RemoveItem)

	// Shopper actions that need X-User-ID
	mux.HandleFunc("POST /api/checkout", h.Checkout.Checkout)
	mux.HandleFunc("POST /api/vouchers/check", h.Checkout.CheckVoucher)

	// Manager tooling
	manager := middleware.RequireRole(logger, middleware.RoleManager, middleware.RoleAdmin)
	mux.Handle("PUT /api/manager/products/{id}/promo", manager(http.HandlerFunc(h.Product.SetPromo)))
	mux.Handle("DELETE /api/manager/products/{id}/promo", manager(http.HandlerFunc(h.Product.ClearPromo)))
	mux.Handle("POST /api/manager/vouchers", manager(http.HandlerFunc(h.Manager.IssueVoucher)))
	mux.Handle("GET /api/manager/vouchers", manager(http.HandlerFunc(h.Manager.ListVouchers)))
	mux.Handle("PATCH /api/manager/vouchers/{userId}", manager(http.HandlerFunc(h.Manager.SetVoucherActive)))
	mux.Handle("DELETE /api/manager/vouchers/{userId}", manager(http.HandlerFunc(h.Manager.DeleteVoucher)))
	mux.Handle("POST /api/manager/reports/sales", manager(http.HandlerFunc(h.Manager.ExportSales)))

	// Admin catalogue maintenance
	admin := middleware.RequireRole(logger, middleware.RoleAdmin)
	mux.Handle("POST /api/admin/products", admin(http.HandlerFunc(h.Product.Create)))
	mux.Handle("PATCH /api/admin/products/{id}/availability", admin(http.HandlerFunc(h.Product.SetAvailability)))

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Metrics(m)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
