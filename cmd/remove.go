package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type removeCmd struct {
	symbol string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a stock from the holdings" }
func (*removeCmd) Usage() string {
	return `stk remove -s <symbol>

  Removes the holding for a symbol, whatever the number of shares.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol to remove (required)")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s flag is required.")
		return subcommands.ExitUsageError
	}

	holdings, err := DecodeHoldings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}

	removed, ok := holdings.Remove(c.symbol)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %s is not held.\n", c.symbol)
		return subcommands.ExitFailure
	}

	if err := EncodeHoldings(holdings); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Removed %s\n", removed)
	return subcommands.ExitSuccess
}
