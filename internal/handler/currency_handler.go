package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CurrencyHandler handles display currency HTTP requests.
type CurrencyHandler struct {
	currency service.CurrencyService
	logger   zerolog.Logger
}

// NewCurrencyHandler creates a new currency handler.
func NewCurrencyHandler(currency service.CurrencyService, logger zerolog.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		currency: currency,
		logger:   logger.With().Str("handler", "currency").Logger(),
	}
}

// List handles GET /api/currencies requests.
func (h *CurrencyHandler) List(w http.ResponseWriter, r *http.Request) {
	selected := h.currency.Currency().Code

	currencies := h.currency.Currencies()
	views := make([]currencyView, len(currencies))
	for i, c := range currencies {
		views[i] = currencyView{Currency: c, Selected: c.Code == selected}
	}

	writeJSON(w, http.StatusOK, views)
}

// Get handles GET /api/currency requests.
func (h *CurrencyHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.currency.Currency())
}

type setCurrencyRequest struct {
	Code string `json:"code"`
}

// Set handles PUT /api/currency requests. Unknown codes select the base
// currency.
func (h *CurrencyHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setCurrencyRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "code is required", h.logger)
		return
	}

	if err := h.currency.SetCurrency(r.Context(), req.Code); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.currency.Currency())
}
