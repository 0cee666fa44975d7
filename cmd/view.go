package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stocktracker"
	"github.com/etnz/stocktracker/renderer"
	"github.com/google/subcommands"
)

// viewCmd holds the flags for the 'view' subcommand.
type viewCmd struct {
	raw    bool
	prices priceOverrides
}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "display the holdings valued at live prices" }
func (*viewCmd) Usage() string {
	return `stk view [-raw] [-price <symbol>=<price>]...

  Displays every holding with its live price, market value and profit or loss,
  followed by the portfolio totals.

  A price that cannot be fetched is shown as n/a and the holding counts as
  worth nothing in the totals.
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print the markdown report as is")
	f.Var(&c.prices, "price", "use this price instead of the live one, as SYMBOL=PRICE. Can be repeated")
}

func (c *viewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, err := DecodeHoldings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}

	src, err := NewPriceSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	viewHoldings(ctx, holdings, withOverrides(src, c.prices), c.raw)
	return subcommands.ExitSuccess
}

// viewHoldings prints the valuation of holdings at the prices given by src.
func viewHoldings(ctx context.Context, holdings *stocktracker.Holdings, src stocktracker.PriceSource, raw bool) {
	if holdings.Len() == 0 {
		fmt.Fprintln(stdout, "Portfolio is empty.")
		return
	}
	v := stocktracker.Valuate(ctx, holdings.All(), src, stocktracker.WithWorkers(*workers))
	printMarkdown(renderer.RenderValuation(v), raw)
}
