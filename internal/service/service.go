package service

import (
	"context"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// Filter is the process-wide catalogue listing filter.
type Filter struct {
	SearchQuery      string `json:"searchQuery"`
	SelectedCategory string `json:"selectedCategory"`
}

// CommerceService owns the catalogue, every user's cart and order history,
// and the listing filter. It does not read session state; callers pass the
// acting username.
type CommerceService interface {
	// Products returns the whole catalogue in insertion order.
	Products() []model.Product

	// Product returns a single product by ID.
	Product(id string) (*model.Product, error)

	// Categories returns the fixed category list.
	Categories() []model.Category

	// AddProduct appends a product to the catalogue.
	AddProduct(ctx context.Context, product model.Product) error

	// UpdateProduct merges patch into the matching product. Unknown IDs are ignored.
	UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) error

	// DeleteProduct removes the matching product. Carts and orders keep their snapshots.
	DeleteProduct(ctx context.Context, id string) error

	SetSearchQuery(query string)
	SetSelectedCategory(category string)
	Filter() Filter

	// FilteredProducts returns in-stock products matching the current filter.
	FilteredProducts() []model.Product

	Cart(username model.Username) []model.CartLine
	AddToCart(ctx context.Context, username model.Username, product model.Product) error
	RemoveFromCart(ctx context.Context, username model.Username, productID string) error
	UpdateQuantity(ctx context.Context, username model.Username, productID string, quantity int) error
	ClearCart(ctx context.Context, username model.Username) error
	CartTotal(username model.Username) float64
	CartItemsCount(username model.Username) int

	// AddOrder prepends an already built order to the user's history.
	AddOrder(ctx context.Context, username model.Username, order model.Order) error

	// Orders returns the user's history, most recent first.
	Orders(username model.Username) []model.Order

	// Order returns one order of the user's history.
	Order(username model.Username, id string) (*model.Order, error)

	// Checkout turns the user's cart into an order and empties the cart in
	// one committed state transition.
	Checkout(ctx context.Context, username model.Username, details model.ShippingDetails) (*model.Order, error)

	// UpdateOrderStatus overwrites the status of an order.
	UpdateOrderStatus(ctx context.Context, username model.Username, id string, status model.OrderStatus) error

	// AllOrders flattens every user's orders, newest first.
	AllOrders() []model.UserOrder

	// Stats summarises the catalogue and all orders.
	Stats() model.StoreStats
}

// AuthService holds registered users and the current session.
type AuthService interface {
	// Login establishes a session when the credentials match a user.
	Login(ctx context.Context, username, password string) error

	// Register creates a non-admin user and logs it in.
	Register(ctx context.Context, username, password string) error

	// Logout clears the session.
	Logout(ctx context.Context) error

	// Session returns the current session.
	Session() model.Session

	// Users lists registered users without their password hashes.
	Users() []model.UserInfo
}

// CurrencyService converts and formats base-currency amounts for display.
type CurrencyService interface {
	SetCurrency(ctx context.Context, code string) error
	Currency() model.Currency
	Currencies() []model.Currency
	ExchangeRate() float64

	// Convert returns amount, given in the base currency, in the selected
	// currency without rounding.
	Convert(amount float64) decimal.Decimal

	// FormatPrice converts amount from the base currency and renders it
	// with the selected currency's symbol and precision.
	FormatPrice(amount float64) string

	// FetchLiveRates refreshes rates from the external source. Failures
	// are logged and leave the current rates in place.
	FetchLiveRates(ctx context.Context)
}

// CheckoutService runs the checkout flow around CommerceService.Checkout.
type CheckoutService interface {
	// PlaceOrder simulates payment processing, commits the order and
	// announces it.
	PlaceOrder(ctx context.Context, username model.Username, details model.ShippingDetails) (*model.Order, error)
}
