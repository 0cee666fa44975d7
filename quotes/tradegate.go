package quotes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultTradegateURL is the tradegate.de endpoint returning the latest trade of an ISIN.
const DefaultTradegateURL = "https://www.tradegate.de/refresh.php"

// Tradegate fetches the latest price exchanged on Tradegate. Prices are in EUR
// and symbols must be ISINs. The zero value is ready to use.
type Tradegate struct {
	BaseURL string
	Client  *http.Client
}

// Price returns the last traded price, falling back to the bid when there was no trade.
func (t *Tradegate) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if err := ValidateISIN(symbol); err != nil {
		return decimal.Zero, fmt.Errorf("tradegate: %q is not an ISIN: %w", symbol, err)
	}
	base, client := t.BaseURL, t.Client
	if base == "" {
		base = DefaultTradegateURL
	}
	if client == nil {
		client = newHTTPClient()
	}

	var jobj map[string]any
	if err := jwget(ctx, client, base+"?isin="+url.QueryEscape(symbol), &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("tradegate %s: %w", symbol, err)
	}

	// last is the last transaction, moves slower than the bid, but the bid can be 0.
	jval := jobj["last"]
	if s, ok := jval.(string); ok && s == "./." {
		// tradegate shows an empty last this way, use the bid instead
		log.Debug().Str("symbol", symbol).Msg("tradegate 'last' is empty, falling back to 'bid'")
		jval = jobj["bid"]
	}

	var val decimal.Decimal
	switch v := jval.(type) {
	case float64:
		val = decimal.NewFromFloat(v)
	case string:
		// sometimes, this weird API returns the value as a string
		s := strings.ReplaceAll(v, ",", ".")
		s = strings.ReplaceAll(s, " ", "")
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("tradegate %s: value is an invalid string %q: %w", symbol, v, err)
		}
		val = d
	default:
		return decimal.Zero, fmt.Errorf("tradegate %s: response has neither a float nor a string value", symbol)
	}
	if !val.IsPositive() {
		// sometimes the bid is empty and returns 0
		return decimal.Zero, fmt.Errorf("tradegate %s: empty bid, bidsize=%v", symbol, jobj["bidsize"])
	}
	return val, nil
}
