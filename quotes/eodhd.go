package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	// DefaultEODHDBaseURL is the base URL for the EODHD API.
	DefaultEODHDBaseURL = "https://eodhd.com/api"

	// DefaultEODHDExchange is the exchange appended to plain symbols.
	DefaultEODHDExchange = "US"

	// DefaultEODHDRateLimit is the default rate limit (requests per second).
	DefaultEODHDRateLimit = 10
)

// EODHD fetches live prices from the eodhd.com real-time API.
//
// Symbols without an exchange suffix ("AAPL") are looked up on the configured
// exchange ("AAPL.US"); symbols with one ("BMW.XETRA") are used as is.
type EODHD struct {
	baseURL    string
	apiKey     string
	exchange   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// EODHDOption configures an EODHD source.
type EODHDOption func(*EODHD)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) EODHDOption {
	return func(e *EODHD) {
		e.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) EODHDOption {
	return func(e *EODHD) {
		e.httpClient = httpClient
	}
}

// WithExchange sets the exchange code used for symbols without one.
func WithExchange(exchange string) EODHDOption {
	return func(e *EODHD) {
		e.exchange = strings.ToUpper(exchange)
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) EODHDOption {
	return func(e *EODHD) {
		e.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewEODHD creates a new EODHD price source.
func NewEODHD(apiKey string, opts ...EODHDOption) *EODHD {
	e := &EODHD{
		baseURL:    DefaultEODHDBaseURL,
		apiKey:     apiKey,
		exchange:   DefaultEODHDExchange,
		httpClient: newHTTPClient(),
		limiter:    rate.NewLimiter(rate.Limit(DefaultEODHDRateLimit), DefaultEODHDRateLimit),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ticker returns the EODHD ticker for symbol.
func (e *EODHD) Ticker(symbol string) string {
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + "." + e.exchange
}

// Price returns the latest traded price, or the previous close when the
// market did not trade yet.
func (e *EODHD) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if e.apiKey == "" {
		return decimal.Zero, errors.New("eodhd: missing api key")
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("eodhd: %w", err)
	}

	ticker := e.Ticker(symbol)
	params := url.Values{}
	params.Set("api_token", e.apiKey)
	params.Set("fmt", "json")
	addr := fmt.Sprintf("%s/real-time/%s?%s", e.baseURL, url.PathEscape(ticker), params.Encode())

	// {"code":"AAPL.US","timestamp":1700000000,"close":189.84,"previousClose":189.7, ...}
	// but close and previousClose are "NA" when there is no data.
	var jobj any
	if err := jwget(ctx, e.httpClient, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("eodhd %s: %w", ticker, err)
	}
	for _, path := range []string{"$.close", "$.previousClose"} {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			continue
		}
		if val, ok := jval.(float64); ok && val > 0 {
			return decimal.NewFromFloat(val), nil
		}
	}
	return decimal.Zero, fmt.Errorf("eodhd %s: no price in response", ticker)
}
