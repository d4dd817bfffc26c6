package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Currency *handler.CurrencyHandler
	Admin    *handler.AdminHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// sessions backs the login and admin checks.
func New(h Handlers, sessions middleware.SessionSource, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	requireSession := middleware.RequireSession(sessions, logger)
	requireAdmin := middleware.RequireAdmin(sessions, logger)

	user := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, requireSession(fn))
	}
	admin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, requireAdmin(fn))
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Authentication
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("GET /api/auth/session", h.Auth.Session)

	// Catalogue and filter
	mux.HandleFunc("GET /api/categories", h.Product.Categories)
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)
	mux.HandleFunc("GET /api/filter", h.Product.Filter)
	mux.HandleFunc("PUT /api/filter", h.Product.SetFilter)

	// Currency
	mux.HandleFunc("GET /api/currencies", h.Currency.List)
	mux.HandleFunc("GET /api/currency", h.Currency.Get)
	mux.HandleFunc("PUT /api/currency", h.Currency.Set)

	// Cart and orders of the logged-in user
	user("GET /api/cart", h.Cart.Get)
	user("DELETE /api/cart", h.Cart.Clear)
	user("POST /api/cart/items", h.Cart.AddItem)
	user("PUT /api/cart/items/{id}", h.Cart.UpdateItem)
	user("DELETE /api/cart/items/{id}", h.Cart.RemoveItem)
	user("POST /api/checkout", h.Order.Checkout)
	user("GET /api/orders", h.Order.List)
	user("GET /api/orders/{id}", h.Order.GetByID)

	// Administration
	admin("POST /api/admin/products", h.Admin.CreateProduct)
	admin("PUT /api/admin/products/{id}", h.Admin.UpdateProduct)
	admin("DELETE /api/admin/products/{id}", h.Admin.DeleteProduct)
	admin("GET /api/admin/orders", h.Admin.Orders)
	admin("PUT /api/admin/orders/{username}/{id}/status", h.Admin.UpdateOrderStatus)
	admin("GET /api/admin/stats", h.Admin.Stats)
	admin("GET /api/admin/users", h.Admin.Users)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
