package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLinesTotal(t *testing.T) {
	lines := []CartLine{
		{Product: Product{ID: "1", Price: 999}, Quantity: 1},
		{Product: Product{ID: "2", Price: 0.1}, Quantity: 3},
	}

	assert.True(t, decimal.RequireFromString("999.3").Equal(LinesTotal(lines)))
	assert.Equal(t, 4, LinesCount(lines))
	assert.True(t, LinesTotal(nil).IsZero())
	assert.Equal(t, 0, LinesCount(nil))
}

func TestCartLine_Subtotal(t *testing.T) {
	line := CartLine{Product: Product{Price: 699}, Quantity: 2}
	assert.Equal(t, "1398", line.Subtotal().String())
}

func TestOrder_Clone(t *testing.T) {
	order := Order{
		ID:    "ORD-1",
		Items: []CartLine{{Product: Product{ID: "1", Tags: []string{"a"}}, Quantity: 2}},
	}

	c := order.Clone()
	c.Items[0].Quantity = 9
	c.Items[0].Tags[0] = "changed"

	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "a", order.Items[0].Tags[0])
	assert.Equal(t, 2, order.ItemsCount())
	assert.Nil(t, CloneLines(nil))
	assert.Nil(t, CloneOrders(nil))
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("lost").Valid())
	assert.False(t, OrderStatus("").Valid())
}
