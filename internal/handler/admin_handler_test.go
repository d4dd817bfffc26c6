package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminHandler_CreateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Valid product",
			body:           map[string]any{"id": "7", "name": "Recipe Cards", "price": 499, "category": "cards"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Duplicate ID",
			body:           map[string]any{"id": "1", "name": "Copy", "price": 10, "category": "cards"},
			expectedStatus: http.StatusConflict,
			expectedCode:   model.ErrCodeProductExists,
		},
		{
			name:           "Missing name",
			body:           map[string]any{"id": "7", "price": 10, "category": "cards"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeMissingField,
		},
		{
			name:           "Zero price",
			body:           map[string]any{"id": "7", "name": "Free", "price": 0, "category": "cards"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidParameter,
		},
		{
			name:           "Unknown category",
			body:           map[string]any{"id": "7", "name": "Mug", "price": 10, "category": "mugs"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			h := NewAdminHandler(f.commerce, f.auth, f.currency, zerolog.Nop())

			w := httptest.NewRecorder()
			h.CreateProduct(w, newRequest(t, http.MethodPost, "/api/admin/products", tt.body, "admin", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeBody[model.ErrorResponse](t, w).Error)
				assert.Len(t, f.commerce.Products(), 6)
				return
			}

			created := decodeBody[productView](t, w)
			assert.True(t, created.InStock)
			assert.Equal(t, []string{}, created.Tags)
			assert.Equal(t, "₹499", created.DisplayPrice)
			assert.Len(t, f.commerce.Products(), 7)
		})
	}
}

func TestAdminHandler_CreateProductGeneratesID(t *testing.T) {
	f := newFixture(t)
	h := NewAdminHandler(f.commerce, f.auth, f.currency, zerolog.Nop())

	w := httptest.NewRecorder()
	h.CreateProduct(w, newRequest(t, http.MethodPost, "/api/admin/products",
		map[string]any{"name": "Chore Chart", "price": 299, "category": "educational", "tags": []string{"kids"}}, "admin", nil))

	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody[productView](t, w)
	require.NotEmpty(t, created.ID)

	stored, err := f.commerce.Product(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chore Chart", stored.Name)
	assert.Equal(t, []string{"kids"}, stored.Tags)
}

func TestAdminHandler_UpdateAndDeleteProduct(t *testing.T) {
	f := newFixture(t)
	h := NewAdminHandler(f.commerce, f.auth, f.currency, zerolog.Nop())
	path := map[string]string{"id": "2"}

	w := httptest.NewRecorder()
	h.UpdateProduct(w, newRequest(t, http.MethodPut, "/api/admin/products/2", map[string]any{"price": 749, "inStock": false}, "admin", path))
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody[productView](t, w)
	assert.Equal(t, 749.0, updated.Price)
	assert.False(t, updated.InStock)
	assert.Equal(t, "Golden Butterfly Sticker Set", updated.Name)

	w = httptest.NewRecorder()
	h.UpdateProduct(w, newRequest(t, http.MethodPut, "/api/admin/products/2", map[string]any{"price": -1}, "admin", path))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	p, err := f.commerce.Product("2")
	require.NoError(t, err)
	assert.Equal(t, 749.0, p.Price)

	w = httptest.NewRecorder()
	h.UpdateProduct(w, newRequest(t, http.MethodPut, "/api/admin/products/99", map[string]any{"price": 5}, "admin", map[string]string{"id": "99"}))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.DeleteProduct(w, newRequest(t, http.MethodDelete, "/api/admin/products/2", nil, "admin", path))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, f.commerce.Products(), 5)

	w = httptest.NewRecorder()
	h.DeleteProduct(w, newRequest(t, http.MethodDelete, "/api/admin/products/2", nil, "admin", path))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminHandler_OrdersAndStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := NewAdminHandler(f.commerce, f.auth, f.currency, zerolog.Nop())

	require.NoError(t, f.commerce.AddOrder(ctx, "alice", model.Order{ID: "A1", Date: "2024-01-01", Total: 999, Status: model.OrderStatusProcessing}))
	require.NoError(t, f.commerce.AddOrder(ctx, "bob", model.Order{ID: "B1", Date: "2024-02-01", Total: 1999, Status: model.OrderStatusDelivered}))

	w := httptest.NewRecorder()
	h.Orders(w, newRequest(t, http.MethodGet, "/api/admin/orders", nil, "admin", nil))
	require.Equal(t, http.StatusOK, w.Code)
	orders := decodeBody[[]userOrderView](t, w)
	require.Len(t, orders, 2)
	assert.Equal(t, model.Username("bob"), orders[0].Username)
	assert.Equal(t, "B1", orders[0].ID)
	assert.Equal(t, "₹1999", orders[0].DisplayTotal)

	w = httptest.NewRecorder()
	h.UpdateOrderStatus(w, newRequest(t, http.MethodPut, "/api/admin/orders/alice/A1/status",
		updateStatusRequest{Status: model.OrderStatusShipped}, "admin",
		map[string]string{"username": "alice", "id": "A1"}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.OrderStatusShipped, decodeBody[orderView](t, w).Status)

	w = httptest.NewRecorder()
	h.UpdateOrderStatus(w, newRequest(t, http.MethodPut, "/api/admin/orders/alice/A1/status",
		updateStatusRequest{Status: "lost"}, "admin",
		map[string]string{"username": "alice", "id": "A1"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.UpdateOrderStatus(w, newRequest(t, http.MethodPut, "/api/admin/orders/bob/A1/status",
		updateStatusRequest{Status: model.OrderStatusShipped}, "admin",
		map[string]string{"username": "bob", "id": "A1"}))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.Stats(w, newRequest(t, http.MethodGet, "/api/admin/stats", nil, "admin", nil))
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeBody[statsView](t, w)
	assert.Equal(t, 2, stats.Orders)
	assert.Equal(t, 2998.0, stats.Revenue)
	assert.Equal(t, "₹2998", stats.DisplayRevenue)
	assert.Equal(t, 0, stats.ProcessingCount)
	assert.Equal(t, 1, stats.DeliveredCount)
	assert.Equal(t, 3, stats.Featured)

	w = httptest.NewRecorder()
	h.Users(w, newRequest(t, http.MethodGet, "/api/admin/users", nil, "admin", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []model.UserInfo{{Username: "admin", IsAdmin: true}}, decodeBody[[]model.UserInfo](t, w))
}
