package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"storefront/internal/model"
	"storefront/internal/rates"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type currencyState struct {
	SelectedCurrency string `json:"selectedCurrency"`
}

// currencyService implements CurrencyService.
type currencyService struct {
	mu         sync.RWMutex
	currencies []model.Currency
	base       string
	selected   string

	fetcher rates.Fetcher
	repo    repository.StateRepository
	logger  zerolog.Logger
}

// NewCurrencyService restores the selected currency from repo. base must be
// one of currencies and is the unit every price is stored in.
func NewCurrencyService(
	ctx context.Context,
	repo repository.StateRepository,
	fetcher rates.Fetcher,
	currencies []model.Currency,
	base string,
	logger zerolog.Logger,
) (CurrencyService, error) {
	s := &currencyService{
		currencies: slices.Clone(currencies),
		base:       base,
		selected:   base,
		fetcher:    fetcher,
		repo:       repo,
		logger:     logger.With().Str("service", "currency").Logger(),
	}

	if s.indexOf(base) < 0 {
		return nil, fmt.Errorf("base currency %q is not supported", base)
	}

	var state currencyState
	if _, err := repo.Load(ctx, repository.KeyCurrency, &state); err != nil {
		return nil, fmt.Errorf("failed to load currency state: %w", err)
	}
	if state.SelectedCurrency != "" {
		if s.indexOf(state.SelectedCurrency) >= 0 {
			s.selected = state.SelectedCurrency
		} else {
			s.logger.Warn().Str("currency", state.SelectedCurrency).Msg("stored currency is unknown, using base")
		}
	}

	s.logger.Info().Str("base", base).Str("selected", s.selected).Msg("currency service ready")
	return s, nil
}

func (s *currencyService) indexOf(code string) int {
	return slices.IndexFunc(s.currencies, func(c model.Currency) bool { return c.Code == code })
}

// SetCurrency selects code for display. Unknown codes fall back to the base
// currency.
func (s *currencyService) SetCurrency(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(code) < 0 {
		s.logger.Warn().Str("currency", code).Msg("unknown currency, using base")
		code = s.base
	}

	if err := s.repo.Save(ctx, repository.KeyCurrency, currencyState{SelectedCurrency: code}); err != nil {
		return fmt.Errorf("failed to save currency state: %w", err)
	}
	s.selected = code
	return nil
}

func (s *currencyService) Currency() model.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current()
}

func (s *currencyService) current() model.Currency {
	if idx := s.indexOf(s.selected); idx >= 0 {
		return s.currencies[idx]
	}
	return s.currencies[s.indexOf(s.base)]
}

func (s *currencyService) Currencies() []model.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.currencies)
}

func (s *currencyService) ExchangeRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current().ExchangeRate
}

func (s *currencyService) Convert(amount float64) decimal.Decimal {
	return convert(amount, s.ExchangeRate())
}

func (s *currencyService) FormatPrice(amount float64) string {
	return FormatAmount(amount, s.Currency())
}

// FormatAmount converts a base-currency amount into c and renders it with
// c's symbol, rounding half away from zero to c.Decimals places.
func FormatAmount(amount float64, c model.Currency) string {
	return c.Symbol + convert(amount, c.ExchangeRate).StringFixed(c.Decimals)
}

func convert(amount, rate float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate))
}

func (s *currencyService) FetchLiveRates(ctx context.Context) {
	live, err := s.fetcher.Fetch(ctx, s.base)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to fetch live exchange rates, keeping current rates")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for i := range s.currencies {
		c := &s.currencies[i]
		if c.Code == s.base {
			continue
		}
		rate, ok := live[c.Code]
		if !ok || rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
			continue
		}
		c.ExchangeRate = rate
		updated++
	}

	s.logger.Info().Int("updated", updated).Msg("exchange rates refreshed")
}

// RefreshRates fetches live rates once and then every interval until ctx is
// done. A zero interval fetches once. Each fetch is bounded by timeout.
func RefreshRates(ctx context.Context, svc CurrencyService, timeout, interval time.Duration) {
	fetch := func() {
		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		svc.FetchLiveRates(fetchCtx)
	}

	fetch()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fetch()
		}
	}
}
