package events

import (
	"context"
	"time"

	"storefront/internal/model"
)

// Publisher announces placed orders to interested parties. Publishing is
// best-effort: callers log failures and carry on.
type Publisher interface {
	// PublishOrderPlaced announces an order committed at checkout.
	PublishOrderPlaced(ctx context.Context, username model.Username, order model.Order) error

	// Close releases the underlying connection.
	Close() error
}

// OrderPlacedEvent is the JSON payload of an order notification.
type OrderPlacedEvent struct {
	OrderID    string    `json:"orderId"`
	Username   string    `json:"username"`
	Total      float64   `json:"total"`
	ItemsCount int       `json:"itemsCount"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	PlacedAt   time.Time `json:"placedAt"`
}

// NewOrderPlacedEvent builds the payload for an order.
func NewOrderPlacedEvent(username model.Username, order model.Order, now time.Time) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:    order.ID,
		Username:   string(username),
		Total:      order.Total,
		ItemsCount: order.ItemsCount(),
		Date:       order.Date,
		Status:     string(order.Status),
		PlacedAt:   now.UTC(),
	}
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that discards every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishOrderPlaced(context.Context, model.Username, model.Order) error {
	return nil
}

func (nopPublisher) Close() error {
	return nil
}
