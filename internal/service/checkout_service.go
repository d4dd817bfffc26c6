package service

import (
	"context"
	"sync"
	"time"

	"storefront/internal/events"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	commerce  CommerceService
	publisher events.Publisher
	delay     time.Duration
	logger    zerolog.Logger

	mu       sync.Mutex
	inFlight map[model.Username]struct{}
}

// NewCheckoutService creates the checkout flow. delay simulates payment
// processing before the order is committed.
func NewCheckoutService(commerce CommerceService, publisher events.Publisher, delay time.Duration, logger zerolog.Logger) CheckoutService {
	return &checkoutService{
		commerce:  commerce,
		publisher: publisher,
		delay:     delay,
		logger:    logger.With().Str("service", "checkout").Logger(),
		inFlight:  make(map[model.Username]struct{}),
	}
}

func (s *checkoutService) PlaceOrder(ctx context.Context, username model.Username, details model.ShippingDetails) (*model.Order, error) {
	if s.commerce.CartItemsCount(username) == 0 {
		return nil, model.ErrEmptyCart
	}

	if !s.acquire(username) {
		s.logger.Warn().Str("username", string(username)).Msg("checkout already in progress")
		return nil, model.ErrCheckoutInProgress
	}
	defer s.release(username)

	if err := s.wait(ctx); err != nil {
		s.logger.Info().Str("username", string(username)).Err(err).Msg("checkout abandoned")
		return nil, err
	}

	order, err := s.commerce.Checkout(ctx, username, details)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishOrderPlaced(context.WithoutCancel(ctx), username, *order); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish order placed event")
	}

	return order, nil
}

func (s *checkoutService) acquire(username model.Username) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[username]; busy {
		return false
	}
	s.inFlight[username] = struct{}{}
	return true
}

func (s *checkoutService) release(username model.Username) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, username)
}

func (s *checkoutService) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
