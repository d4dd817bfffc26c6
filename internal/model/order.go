package model

import "github.com/shopspring/decimal"

// Username identifies the owner of a cart and an order history.
type Username string

// CartLine is a product snapshot plus the quantity in the cart.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price × quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CloneLines deep-copies a slice of cart lines.
func CloneLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		out[i] = CartLine{Product: l.Product.Clone(), Quantity: l.Quantity}
	}
	return out
}

// LinesTotal sums price × quantity over the lines.
func LinesTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// LinesCount sums the quantities of the lines.
func LinesCount(lines []CartLine) int {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// ShippingDetails are the contact fields captured at checkout.
type ShippingDetails struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Order is a frozen copy of a cart. Total is fixed at creation time.
type Order struct {
	ID     string      `json:"id"`
	Date   string      `json:"date"`
	Items  []CartLine  `json:"items"`
	Total  float64     `json:"total"`
	Status OrderStatus `json:"status"`
	ShippingDetails
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	o.Items = CloneLines(o.Items)
	return o
}

// ItemsCount sums the item quantities of the order.
func (o Order) ItemsCount() int {
	return LinesCount(o.Items)
}

// UserOrder is an order tagged with its owner, used by the admin view.
type UserOrder struct {
	Username Username `json:"username"`
	Order
}

// CloneOrders deep-copies a slice of orders.
func CloneOrders(orders []Order) []Order {
	if orders == nil {
		return nil
	}
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}

// StoreStats summarises the catalogue and all order histories.
type StoreStats struct {
	Products        int     `json:"products"`
	Featured        int     `json:"featured"`
	InStock         int     `json:"inStock"`
	Orders          int     `json:"orders"`
	Revenue         float64 `json:"revenue"`
	ProcessingCount int     `json:"processingCount"`
	DeliveredCount  int     `json:"deliveredCount"`
}
