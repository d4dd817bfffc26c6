package handler

import (
	"net/http"
	"strings"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles checkout and order history HTTP requests.
type OrderHandler struct {
	commerce service.CommerceService
	checkout service.CheckoutService
	currency service.CurrencyService
	logger   zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(
	commerce service.CommerceService,
	checkout service.CheckoutService,
	currency service.CurrencyService,
	logger zerolog.Logger,
) *OrderHandler {
	return &OrderHandler{
		commerce: commerce,
		checkout: checkout,
		currency: currency,
		logger:   logger.With().Str("handler", "order").Logger(),
	}
}

// validateShipping checks the checkout form fields. Phone is optional.
func validateShipping(details model.ShippingDetails) string {
	switch {
	case strings.TrimSpace(details.Email) == "":
		return "email is required"
	case !strings.Contains(details.Email, "@"):
		return "email is invalid"
	case strings.TrimSpace(details.Name) == "":
		return "name is required"
	case strings.TrimSpace(details.Address) == "":
		return "address is required"
	}
	return ""
}

// Checkout handles POST /api/checkout requests. The request blocks for the
// simulated processing delay.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUser(w, r, h.logger)
	if !ok {
		return
	}

	var details model.ShippingDetails
	if !decodeJSON(w, r, &details, h.logger) {
		return
	}
	if msg := validateShipping(details); msg != "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, msg, h.logger)
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), username, details)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, newOrderView(*order, h.currency.Currency()))
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUser(w, r, h.logger)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, newOrderViews(h.commerce.Orders(username), h.currency.Currency()))
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUser(w, r, h.logger)
	if !ok {
		return
	}

	order, err := h.commerce.Order(username, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newOrderView(*order, h.currency.Currency()))
}
