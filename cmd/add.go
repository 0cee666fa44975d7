package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stocktracker"
	"github.com/google/subcommands"
)

type addCmd struct {
	symbol string
	shares string
	cost   string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add shares of a stock to the holdings" }
func (*addCmd) Usage() string {
	return `stk add -s <symbol> -q <shares> -p <cost>

  Adds a lot of shares bought at a cost per share.

  If the symbol is already held, the lot is merged into the existing holding:
  the shares are summed and the cost per share becomes the weighted average
  of both lots.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol (e.g. AAPL), case insensitive (required)")
	f.StringVar(&c.shares, "q", "", "Number of shares, must be > 0 (e.g. 3 or 3.5) (required)")
	f.StringVar(&c.cost, "p", "0", "Average cost per share, cannot be negative")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, err := DecodeHoldings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}

	msg, err := addHolding(holdings, c.symbol, c.shares, c.cost)
	var verr *stocktracker.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := EncodeHoldings(holdings); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, msg)
	return subcommands.ExitSuccess
}

// addHolding parses a lot typed by the user, adds it to holdings, and returns
// the confirmation message.
func addHolding(holdings *stocktracker.Holdings, symbol, shares, cost string) (string, error) {
	symbol = stocktracker.NormalizeSymbol(symbol)
	if symbol == "" {
		return "", &stocktracker.ValidationError{Field: "symbol", Reason: "must not be empty"}
	}
	q, err := stocktracker.ParseQuantity(shares)
	if err != nil {
		return "", &stocktracker.ValidationError{Field: "shares", Value: shares, Reason: "not a number"}
	}
	p, err := stocktracker.ParseMoney(cost, holdings.Currency())
	if err != nil {
		return "", &stocktracker.ValidationError{Field: "cost", Value: cost, Reason: "not a number"}
	}

	_, existed := holdings.Find(symbol)
	h, err := holdings.Upsert(symbol, q, p)
	if err != nil {
		return "", err
	}
	if existed {
		return fmt.Sprintf("Updated %s: %s shares @ avg cost %s", h.Symbol, h.Shares, h.CostBasis), nil
	}
	return fmt.Sprintf("Added %s: %s shares @ cost %s", h.Symbol, h.Shares, h.CostBasis), nil
}
