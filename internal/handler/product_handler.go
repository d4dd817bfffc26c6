package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalogue and filter HTTP requests.
type ProductHandler struct {
	commerce service.CommerceService
	currency service.CurrencyService
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(commerce service.CommerceService, currency service.CurrencyService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		commerce: commerce,
		currency: currency,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// Categories handles GET /api/categories requests.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.commerce.Categories())
}

// List handles GET /api/products requests. It returns the filtered in-stock
// listing, optionally sorted with ?sort= and narrowed with ?featured=true.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sortKey := model.SortKey(query.Get("sort"))
	switch sortKey {
	case "", model.SortByName, model.SortByPriceLow, model.SortByPriceHigh:
	default:
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "sort must be name, price-low or price-high", h.logger)
		return
	}

	featuredOnly := false
	if raw := query.Get("featured"); raw != "" {
		var err error
		featuredOnly, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid featured parameter", h.logger)
			return
		}
	}

	products := h.commerce.FilteredProducts()
	if featuredOnly {
		featured := products[:0]
		for _, p := range products {
			if p.Featured {
				featured = append(featured, p)
			}
		}
		products = featured
	}

	writeJSON(w, http.StatusOK, newProductViews(model.SortProducts(products, sortKey), h.currency.Currency()))
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.commerce.Product(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newProductView(*product, h.currency.Currency()))
}

type filterRequest struct {
	SearchQuery      *string `json:"searchQuery"`
	SelectedCategory *string `json:"selectedCategory"`
}

// Filter handles GET /api/filter requests.
func (h *ProductHandler) Filter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.commerce.Filter())
}

// SetFilter handles PUT /api/filter requests. Omitted fields keep their value.
func (h *ProductHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if req.SearchQuery != nil {
		h.commerce.SetSearchQuery(*req.SearchQuery)
	}
	if req.SelectedCategory != nil {
		h.commerce.SetSelectedCategory(*req.SelectedCategory)
	}

	writeJSON(w, http.StatusOK, h.commerce.Filter())
}
