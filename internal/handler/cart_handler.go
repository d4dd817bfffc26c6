package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart HTTP requests for the logged-in user.
type CartHandler struct {
	commerce service.CommerceService
	currency service.CurrencyService
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(commerce service.CommerceService, currency service.CurrencyService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		commerce: commerce,
		currency: currency,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

func (h *CartHandler) writeCart(w http.ResponseWriter, username model.Username) {
	writeJSON(w, http.StatusOK, newCartView(h.commerce.Cart(username), h.currency.Currency()))
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUser(w, r, h.logger)
	if !ok {
		return
	}
	h.writeCart(w, username)
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

// AddItem handles POST /api/cart/items requests. The product is looked up in
// the catalogue and its current snapshot is added.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUser(w, r, h.logger)
	if !ok {
		return
	}

	var req addItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "productId is required", h.logger)
		return
	}

	product, err := h.commerce.Product(req.ProductID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.commerce.AddToCart(r.Context(), username, *product); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	h.writeCart(w, username)
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

// UpdateItem handles PUT /api/cart/items/{id} requests. A quantity below one
// removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUser(w, r, h.logger)
	if !ok {
		return
	}

	var req updateItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "quantity is required", h.logger)
		return
	}

	if err := h.commerce.UpdateQuantity(r.Context(), username, r.PathValue("id"), *req.Quantity); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	h.writeCart(w, username)
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUser(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.commerce.RemoveFromCart(r.Context(), username, r.PathValue("id")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	h.writeCart(w, username)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUser(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.commerce.ClearCart(r.Context(), username); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	h.writeCart(w, username)
}
