package handler

import (
	"net/http"
	"strings"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdminHandler handles catalogue management and store-wide order views.
// Routes are expected behind middleware.RequireAdmin.
type AdminHandler struct {
	commerce service.CommerceService
	auth     service.AuthService
	currency service.CurrencyService
	logger   zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	commerce service.CommerceService,
	auth service.AuthService,
	currency service.CurrencyService,
	logger zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		commerce: commerce,
		auth:     auth,
		currency: currency,
		logger:   logger.With().Str("handler", "admin").Logger(),
	}
}

func (h *AdminHandler) validCategory(id string) bool {
	for _, c := range h.commerce.Categories() {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (h *AdminHandler) validateProduct(p model.Product) (string, string) {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return model.ErrCodeMissingField, "id is required"
	case strings.TrimSpace(p.Name) == "":
		return model.ErrCodeMissingField, "name is required"
	case p.Price <= 0:
		return model.ErrCodeInvalidParameter, "price must be positive"
	case !h.validCategory(p.Category):
		return model.ErrCodeInvalidParameter, "category is unknown"
	}
	return "", ""
}

// CreateProduct handles POST /api/admin/products requests. Products are in
// stock unless the body says otherwise; a missing id is generated.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	product := model.Product{InStock: true}
	if !decodeJSON(w, r, &product, h.logger) {
		return
	}
	if strings.TrimSpace(product.ID) == "" {
		product.ID = uuid.NewString()
	}
	if code, msg := h.validateProduct(product); code != "" {
		writeError(w, http.StatusBadRequest, code, msg, h.logger)
		return
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}

	if err := h.commerce.AddProduct(r.Context(), product); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, newProductView(product, h.currency.Currency()))
}

// UpdateProduct handles PUT /api/admin/products/{id} requests with a partial
// product body.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch model.ProductPatch
	if !decodeJSON(w, r, &patch, h.logger) {
		return
	}

	current, err := h.commerce.Product(id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	patch.Apply(current)
	if code, msg := h.validateProduct(*current); code != "" {
		writeError(w, http.StatusBadRequest, code, msg, h.logger)
		return
	}

	if err := h.commerce.UpdateProduct(r.Context(), id, patch); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	updated, err := h.commerce.Product(id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newProductView(*updated, h.currency.Currency()))
}

// DeleteProduct handles DELETE /api/admin/products/{id} requests.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := h.commerce.Product(id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.commerce.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Orders handles GET /api/admin/orders requests.
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	c := h.currency.Currency()

	all := h.commerce.AllOrders()
	views := make([]userOrderView, len(all))
	for i, o := range all {
		views[i] = userOrderView{Username: o.Username, orderView: newOrderView(o.Order, c)}
	}

	writeJSON(w, http.StatusOK, views)
}

type updateStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// UpdateOrderStatus handles PUT /api/admin/orders/{username}/{id}/status requests.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	username := model.Username(r.PathValue("username"))
	id := r.PathValue("id")

	var req updateStatusRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if err := h.commerce.UpdateOrderStatus(r.Context(), username, id, req.Status); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	order, err := h.commerce.Order(username, id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newOrderView(*order, h.currency.Currency()))
}

// Stats handles GET /api/admin/stats requests.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.commerce.Stats()
	writeJSON(w, http.StatusOK, statsView{
		StoreStats:     stats,
		DisplayRevenue: service.FormatAmount(stats.Revenue, h.currency.Currency()),
	})
}

// Users handles GET /api/admin/users requests.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.auth.Users())
}
