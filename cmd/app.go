// Package cmd implements the stk CLI application to track stock holdings.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stocktracker"
	"github.com/etnz/stocktracker/quotes"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	EnvHoldingsFile  = "STK_HOLDINGS_FILE"
	EnvSource        = "STK_SOURCE"
	EnvEODHDApiKey   = "EODHD_API_KEY"
	EnvEODHDExchange = "STK_EODHD_EXCHANGE"
	EnvCurrency      = "STK_CURRENCY"
	EnvLogLevel      = "STK_LOG_LEVEL"

	DefaultHoldingsFile = "stock_data.json"
	DefaultCurrency     = "USD"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
//
// Flags default to "" so that the environment, possibly loaded from a .env
// file after flags are declared, can fill in the blanks.

var holdingsFile = flag.String("holdings-file", "", "Path to the holdings file (JSON format). Defaults to "+EnvHoldingsFile+" or "+DefaultHoldingsFile)
var source = flag.String("source", "", "Live price source: yahoo, eodhd, tradegate or auto. Defaults to "+EnvSource+" or auto")
var eodhdApiKey = flag.String("eodhd-api-key", "", "EODHD API key to use for consuming EODHD.com API. This flag takes precedence over the "+EnvEODHDApiKey+" environment variable. You can get one at https://eodhd.com/")
var eodhdExchange = flag.String("eodhd-exchange", "", "Exchange code appended to symbols when querying EODHD. Defaults to "+EnvEODHDExchange+" or US")
var currency = flag.String("currency", "", "Currency of cost basis and prices. Defaults to "+EnvCurrency+" or "+DefaultCurrency)
var workers = flag.Int("workers", stocktracker.DefaultWorkers, "Maximum number of concurrent price lookups")

// Commands lists the stk subcommands.
var Commands = []subcommands.Command{
	&addCmd{},
	&viewCmd{},
	&listCmd{},
	&removeCmd{},
	&menuCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	for _, cmd := range Commands {
		c.Register(cmd, "holdings")
	}
}

// flagOrEnv returns the flag value, or the environment variable when the flag is not set, or def.
func flagOrEnv(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// HoldingsFile returns the path to the holdings file.
func HoldingsFile() string { return flagOrEnv(*holdingsFile, EnvHoldingsFile, DefaultHoldingsFile) }

// Currency returns the currency of amounts.
func Currency() string {
	return strings.ToUpper(flagOrEnv(*currency, EnvCurrency, DefaultCurrency))
}

// DecodeHoldings loads the holdings from the app holdings file.
//
// Unreadable content is not fatal: it is logged, and an empty set of holdings is returned.
func DecodeHoldings() (*stocktracker.Holdings, error) {
	cur := Currency()
	if err := stocktracker.ValidateCurrency(cur); err != nil {
		return nil, err
	}
	holdings, err := stocktracker.LoadHoldings(HoldingsFile(), cur)
	var serr *stocktracker.StorageError
	if errors.As(err, &serr) {
		log.Warn().Err(serr.Err).Str("path", serr.Path).Msg("holdings file could not be read, starting with empty holdings")
		return holdings, nil
	}
	return holdings, err
}

// EncodeHoldings saves the holdings into the app holdings file.
func EncodeHoldings(h *stocktracker.Holdings) error {
	return stocktracker.SaveHoldings(HoldingsFile(), h)
}

// NewPriceSource returns the live price source selected by the configuration.
func NewPriceSource() (stocktracker.PriceSource, error) {
	key := flagOrEnv(*eodhdApiKey, EnvEODHDApiKey, "")
	eodhd := func() *quotes.EODHD {
		return quotes.NewEODHD(key, quotes.WithExchange(flagOrEnv(*eodhdExchange, EnvEODHDExchange, quotes.DefaultEODHDExchange)))
	}

	switch name := strings.ToLower(flagOrEnv(*source, EnvSource, "auto")); name {
	case "yahoo":
		return quotes.NewYahoo(), nil
	case "eodhd":
		if key == "" {
			return nil, fmt.Errorf("EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable", EnvEODHDApiKey)
		}
		return eodhd(), nil
	case "tradegate":
		return &quotes.Tradegate{}, nil
	case "auto":
		// Tradegate only answers ISINs, and refuses other symbols without a request.
		chain := quotes.Chain{&quotes.Tradegate{}, quotes.NewYahoo()}
		if key != "" {
			chain = append(chain, eodhd())
		}
		return chain, nil
	default:
		return nil, fmt.Errorf("unknown price source %q, valid sources are yahoo, eodhd, tradegate and auto", name)
	}
}

// priceOverrides is a repeatable SYMBOL=PRICE flag.
type priceOverrides quotes.Static

func (p *priceOverrides) String() string {
	var parts []string
	for symbol, price := range *p {
		parts = append(parts, symbol+"="+price.String())
	}
	return strings.Join(parts, ",")
}

func (p *priceOverrides) Set(v string) error {
	symbol, value, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("invalid price %q, expected SYMBOL=PRICE", v)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", v, err)
	}
	if !price.IsPositive() {
		return fmt.Errorf("invalid price %q: must be positive", v)
	}
	if *p == nil {
		*p = make(priceOverrides)
	}
	(*p)[stocktracker.NormalizeSymbol(symbol)] = price
	return nil
}

// withOverrides returns a source using the overrides first, then src.
func withOverrides(src stocktracker.PriceSource, overrides priceOverrides) stocktracker.PriceSource {
	if len(overrides) == 0 {
		return src
	}
	return quotes.Chain{quotes.Static(overrides), src}
}
