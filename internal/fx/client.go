// Package fx fetches live foreign-exchange rates used once to seed a
// room's rate table at game start. The provider is best effort: callers
// fall back to a fixed table on any error.
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/example/currency-wars/internal/game"
)

const (
	defaultBaseURL = "https://api.exchangerate-api.com/v4/latest"
	defaultTimeout = 5 * time.Second

	// The gold rate is not sourced externally; the provider only quotes
	// currencies.
	defaultGoldRate = 3200
)

// Client queries the exchange-rate provider for the domestic base.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	goldRate   float64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the provider endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithTimeout bounds the whole fetch.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithGoldRate overrides the fixed gold rate.
func WithGoldRate(rate float64) ClientOption {
	return func(c *Client) { c.goldRate = rate }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a provider client with a bounded-timeout transport.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:   slog.Default(),
		goldRate: defaultGoldRate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ratesDocument is the provider's response for a base currency: the
// value of one base unit in each quoted currency.
type ratesDocument struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// SeedRates fetches current rates quoted against the domestic currency,
// inverts them to domestic-per-unit and rounds to 2 decimals. Gold uses
// the fixed rate. Implements game.RateSource.
func (c *Client) SeedRates(ctx context.Context) (map[game.Currency]float64, error) {
	url := c.baseURL + "/TRY"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var doc ratesDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode rate document: %w", err)
	}

	usd, eur, gbp := doc.Rates["USD"], doc.Rates["EUR"], doc.Rates["GBP"]
	if usd <= 0 || eur <= 0 || gbp <= 0 {
		return nil, fmt.Errorf("rate document missing quotes: usd=%v eur=%v gbp=%v", usd, eur, gbp)
	}

	rates := map[game.Currency]float64{
		game.TRY:  1,
		game.USD:  invert(usd),
		game.EUR:  invert(eur),
		game.GBP:  invert(gbp),
		game.GOLD: c.goldRate,
	}
	c.logger.Info("seed rates fetched", "usd", rates[game.USD], "eur", rates[game.EUR], "gbp", rates[game.GBP])
	return rates, nil
}

func invert(quote float64) float64 {
	return math.Round(1/quote*100) / 100
}
