package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stocktracker/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	raw bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the holdings without fetching prices" }
func (*listCmd) Usage() string {
	return `stk list [-raw]

  Lists the holdings with their cost basis. No live price is fetched.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print the markdown report as is")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, err := DecodeHoldings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	if holdings.Len() == 0 {
		fmt.Fprintln(stdout, "Portfolio is empty.")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderHoldings(holdings.All()), c.raw)
	return subcommands.ExitSuccess
}
