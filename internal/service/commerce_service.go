package service

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// commerceState is the persisted part of the commerce store. The catalogue
// and the filter are rebuilt on every start.
type commerceState struct {
	Carts  map[model.Username][]model.CartLine `json:"carts"`
	Orders map[model.Username][]model.Order    `json:"orders"`
}

// copyOnWrite copies the maps only. Mutators must replace a user's slice
// rather than edit it in place.
func (s commerceState) copyOnWrite() commerceState {
	return commerceState{
		Carts:  maps.Clone(s.Carts),
		Orders: maps.Clone(s.Orders),
	}
}

// commerceService implements CommerceService.
type commerceService struct {
	mu         sync.RWMutex
	products   []model.Product
	categories []model.Category
	filter     Filter
	state      commerceState

	repo   repository.StateRepository
	logger zerolog.Logger

	now        func() time.Time
	newOrderID func(time.Time) string
}

// NewCommerceService builds the store from the given catalogue and restores
// carts and orders from repo.
func NewCommerceService(
	ctx context.Context,
	repo repository.StateRepository,
	catalog []model.Product,
	categories []model.Category,
	logger zerolog.Logger,
) (CommerceService, error) {
	s := &commerceService{
		products:   cloneProducts(catalog),
		categories: slices.Clone(categories),
		repo:       repo,
		logger:     logger.With().Str("service", "commerce").Logger(),
		now:        time.Now,
		newOrderID: generateOrderID,
	}

	var state commerceState
	found, err := repo.Load(ctx, repository.KeyCommerce, &state)
	if err != nil {
		return nil, fmt.Errorf("failed to load commerce state: %w", err)
	}
	if state.Carts == nil {
		state.Carts = make(map[model.Username][]model.CartLine)
	}
	if state.Orders == nil {
		state.Orders = make(map[model.Username][]model.Order)
	}
	s.state = state

	s.logger.Info().
		Bool("restored", found).
		Int("products", len(s.products)).
		Int("carts", len(state.Carts)).
		Int("order_histories", len(state.Orders)).
		Msg("commerce store ready")

	return s, nil
}

func generateOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

func cloneProducts(products []model.Product) []model.Product {
	out := make([]model.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

// commit applies fn to a copy of the persisted state, saves it and only then
// makes it current. fn reports whether anything changed.
func (s *commerceService) commit(ctx context.Context, fn func(next *commerceState) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.copyOnWrite()
	changed, err := fn(&next)
	if err != nil || !changed {
		return err
	}

	if err := s.repo.Save(ctx, repository.KeyCommerce, next); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist commerce state")
		return fmt.Errorf("failed to save commerce state: %w", err)
	}

	s.state = next
	return nil
}

func (s *commerceService) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneProducts(s.products)
}

func (s *commerceService) Product(id string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.productIndex(id)
	if idx < 0 {
		return nil, model.ErrProductNotFound
	}
	p := s.products[idx].Clone()
	return &p, nil
}

func (s *commerceService) productIndex(id string) int {
	return slices.IndexFunc(s.products, func(p model.Product) bool { return p.ID == id })
}

func (s *commerceService) Categories() []model.Category {
	return slices.Clone(s.categories)
}

func (s *commerceService) AddProduct(_ context.Context, product model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.productIndex(product.ID) >= 0 {
		return model.ErrProductExists
	}
	s.products = append(s.products, product.Clone())

	s.logger.Info().Str("product_id", product.ID).Msg("product added")
	return nil
}

func (s *commerceService) UpdateProduct(_ context.Context, id string, patch model.ProductPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.productIndex(id)
	if idx < 0 {
		s.logger.Debug().Str("product_id", id).Msg("update of unknown product ignored")
		return nil
	}
	patch.Apply(&s.products[idx])

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return nil
}

func (s *commerceService) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.products)
	s.products = slices.DeleteFunc(s.products, func(p model.Product) bool { return p.ID == id })
	if len(s.products) < before {
		s.logger.Info().Str("product_id", id).Msg("product deleted")
	}
	return nil
}

func (s *commerceService) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SearchQuery = query
}

func (s *commerceService) SetSelectedCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SelectedCategory = category
}

func (s *commerceService) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *commerceService) FilteredProducts() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.TrimSpace(s.filter.SearchQuery)
	category := s.filter.SelectedCategory

	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if !p.InStock {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if !p.Matches(query) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

func (s *commerceService) Cart(username model.Username) []model.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := model.CloneLines(s.state.Carts[username])
	if lines == nil {
		lines = []model.CartLine{}
	}
	return lines
}

func (s *commerceService) AddToCart(ctx context.Context, username model.Username, product model.Product) error {
	return s.commit(ctx, func(next *commerceState) (bool, error) {
		lines := model.CloneLines(next.Carts[username])
		idx := slices.IndexFunc(lines, func(l model.CartLine) bool { return l.ID == product.ID })
		if idx >= 0 {
			lines[idx].Quantity++
		} else {
			lines = append(lines, model.CartLine{Product: product.Clone(), Quantity: 1})
		}
		next.Carts[username] = lines

		s.logger.Debug().
			Str("username", string(username)).
			Str("product_id", product.ID).
			Msg("added to cart")
		return true, nil
	})
}

func (s *commerceService) RemoveFromCart(ctx context.Context, username model.Username, productID string) error {
	return s.commit(ctx, func(next *commerceState) (bool, error) {
		current := next.Carts[username]
		if !slices.ContainsFunc(current, func(l model.CartLine) bool { return l.ID == productID }) {
			return false, nil
		}

		lines := slices.DeleteFunc(model.CloneLines(current), func(l model.CartLine) bool { return l.ID == productID })
		if len(lines) == 0 {
			delete(next.Carts, username)
		} else {
			next.Carts[username] = lines
		}
		return true, nil
	})
}

// UpdateQuantity sets the quantity of an existing line. Quantities below one
// remove the line.
func (s *commerceService) UpdateQuantity(ctx context.Context, username model.Username, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, username, productID)
	}

	return s.commit(ctx, func(next *commerceState) (bool, error) {
		lines := model.CloneLines(next.Carts[username])
		idx := slices.IndexFunc(lines, func(l model.CartLine) bool { return l.ID == productID })
		if idx < 0 || lines[idx].Quantity == quantity {
			return false, nil
		}
		lines[idx].Quantity = quantity
		next.Carts[username] = lines
		return true, nil
	})
}

func (s *commerceService) ClearCart(ctx context.Context, username model.Username) error {
	return s.commit(ctx, func(next *commerceState) (bool, error) {
		if _, ok := next.Carts[username]; !ok {
			return false, nil
		}
		delete(next.Carts, username)
		return true, nil
	})
}

func (s *commerceService) CartTotal(username model.Username) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.LinesTotal(s.state.Carts[username]).InexactFloat64()
}

func (s *commerceService) CartItemsCount(username model.Username) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.LinesCount(s.state.Carts[username])
}

func (s *commerceService) AddOrder(ctx context.Context, username model.Username, order model.Order) error {
	return s.commit(ctx, func(next *commerceState) (bool, error) {
		next.Orders[username] = prependOrder(next.Orders[username], order.Clone())
		return true, nil
	})
}

func prependOrder(orders []model.Order, order model.Order) []model.Order {
	out := make([]model.Order, 0, len(orders)+1)
	out = append(out, order)
	return append(out, orders...)
}

func (s *commerceService) Orders(username model.Username) []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := model.CloneOrders(s.state.Orders[username])
	if orders == nil {
		orders = []model.Order{}
	}
	return orders
}

func (s *commerceService) Order(username model.Username, id string) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.state.Orders[username] {
		if o.ID == id {
			order := o.Clone()
			return &order, nil
		}
	}
	return nil, model.ErrOrderNotFound
}

func (s *commerceService) Checkout(ctx context.Context, username model.Username, details model.ShippingDetails) (*model.Order, error) {
	var placed model.Order

	err := s.commit(ctx, func(next *commerceState) (bool, error) {
		lines := next.Carts[username]
		if len(lines) == 0 {
			return false, model.ErrEmptyCart
		}

		now := s.now()
		placed = model.Order{
			ID:              s.newOrderID(now),
			Date:            now.UTC().Format(time.DateOnly),
			Items:           model.CloneLines(lines),
			Total:           model.LinesTotal(lines).InexactFloat64(),
			Status:          model.OrderStatusProcessing,
			ShippingDetails: details,
		}

		next.Orders[username] = prependOrder(next.Orders[username], placed.Clone())
		delete(next.Carts, username)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", string(username)).
		Str("order_id", placed.ID).
		Float64("total", placed.Total).
		Int("items", placed.ItemsCount()).
		Msg("order placed")

	return &placed, nil
}

func (s *commerceService) UpdateOrderStatus(ctx context.Context, username model.Username, id string, status model.OrderStatus) error {
	if !status.Valid() {
		return model.ErrInvalidStatus
	}

	return s.commit(ctx, func(next *commerceState) (bool, error) {
		orders := model.CloneOrders(next.Orders[username])
		idx := slices.IndexFunc(orders, func(o model.Order) bool { return o.ID == id })
		if idx < 0 {
			return false, model.ErrOrderNotFound
		}
		if orders[idx].Status == status {
			return false, nil
		}
		orders[idx].Status = status
		next.Orders[username] = orders

		s.logger.Info().
			Str("username", string(username)).
			Str("order_id", id).
			Str("status", string(status)).
			Msg("order status updated")
		return true, nil
	})
}

func (s *commerceService) AllOrders() []model.UserOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	usernames := slices.Sorted(maps.Keys(s.state.Orders))

	var all []model.UserOrder
	for _, username := range usernames {
		for _, o := range s.state.Orders[username] {
			all = append(all, model.UserOrder{Username: username, Order: o.Clone()})
		}
	}

	// Dates are YYYY-MM-DD so lexical order is chronological.
	slices.SortStableFunc(all, func(a, b model.UserOrder) int {
		return cmp.Compare(b.Date, a.Date)
	})

	if all == nil {
		all = []model.UserOrder{}
	}
	return all
}

func (s *commerceService) Stats() model.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats model.StoreStats
	stats.Products = len(s.products)
	for _, p := range s.products {
		if p.Featured {
			stats.Featured++
		}
		if p.InStock {
			stats.InStock++
		}
	}

	revenue := decimal.Zero
	for _, orders := range s.state.Orders {
		for _, o := range orders {
			stats.Orders++
			revenue = revenue.Add(decimal.NewFromFloat(o.Total))
			switch o.Status {
			case model.OrderStatusProcessing:
				stats.ProcessingCount++
			case model.OrderStatusDelivered:
				stats.DeliveredCount++
			}
		}
	}
	stats.Revenue = revenue.InexactFloat64()

	return stats
}
