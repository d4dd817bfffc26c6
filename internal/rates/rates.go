package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Fetcher retrieves exchange rates relative to a base currency.
type Fetcher interface {
	// Fetch returns a mapping from currency code to the number of units of
	// that currency per one unit of base.
	Fetch(ctx context.Context, base string) (map[string]float64, error)
}

// latestResponse is the payload of the rate source's "latest" endpoint.
type latestResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// httpFetcher implements Fetcher against an exchangerate.host style API.
type httpFetcher struct {
	client   *http.Client
	endpoint string
	logger   zerolog.Logger
}

// NewHTTPFetcher creates a fetcher that issues GET <endpoint>?base=<code>.
func NewHTTPFetcher(endpoint string, timeout time.Duration, logger zerolog.Logger) Fetcher {
	return &httpFetcher{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		logger:   logger.With().Str("component", "rates-fetcher").Logger(),
	}
}

// Fetch requests the latest rates for base.
func (f *httpFetcher) Fetch(ctx context.Context, base string) (map[string]float64, error) {
	u, err := url.Parse(f.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid rates endpoint %q: %w", f.endpoint, err)
	}
	q := u.Query()
	q.Set("base", base)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("rates source returned status %d", resp.StatusCode)
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}

	if payload.Rates == nil {
		return nil, fmt.Errorf("rates response has no rates")
	}

	f.logger.Debug().
		Str("base", base).
		Int("count", len(payload.Rates)).
		Msg("fetched exchange rates")

	return payload.Rates, nil
}
