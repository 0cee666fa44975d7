package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stocktracker"
	"github.com/google/subcommands"
)

// menuCmd is the interactive mode, used when stk is called without a subcommand.
type menuCmd struct {
	raw bool
}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "interactive menu to add stocks and view the portfolio" }
func (*menuCmd) Usage() string {
	return `stk menu [-raw]

  Runs the interactive menu, reading choices from the standard input:

    1. Add Stock
    2. View Portfolio (live prices)
    3. Exit

  This is the default when stk is called without a subcommand.
`
}

func (c *menuCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print the markdown reports as is")
}

func (c *menuCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, err := DecodeHoldings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := c.run(ctx, holdings, NewPriceSource); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run loops over the menu until the user exits or the input ends.
//
// Mistakes are reported and lead back to the menu, only a failure to read the input ends the loop with an error.
func (c *menuCmd) run(ctx context.Context, holdings *stocktracker.Holdings, newSource func() (stocktracker.PriceSource, error)) error {
	scanner := bufio.NewScanner(stdin)
	ask := func(prompt string) (string, bool) {
		fmt.Fprint(stdout, prompt)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	for {
		fmt.Fprintln(stdout, "Stock Tracker Menu:")
		fmt.Fprintln(stdout, "1. Add Stock")
		fmt.Fprintln(stdout, "2. View Portfolio (live prices)")
		fmt.Fprintln(stdout, "3. Exit")
		choice, ok := ask("Choose an option (1-3): ")
		if !ok {
			fmt.Fprintln(stdout)
			return scanner.Err()
		}

		switch choice {
		case "1":
			symbol, ok := ask("Enter symbol (e.g., AAPL): ")
			if !ok {
				return scanner.Err()
			}
			if symbol == "" {
				fmt.Fprintln(stdout, "No symbol entered.")
				break
			}
			shares, ok := ask("Enter shares (e.g., 3 or 3.5): ")
			if !ok {
				return scanner.Err()
			}
			cost, ok := ask("Enter your average cost per share: ")
			if !ok {
				return scanner.Err()
			}
			msg, err := addHolding(holdings, symbol, shares, cost)
			if err != nil {
				fmt.Fprintf(stdout, "Error: %v\n", err)
				break
			}
			if err := EncodeHoldings(holdings); err != nil {
				fmt.Fprintf(stdout, "Error saving holdings: %v\n", err)
				break
			}
			fmt.Fprintln(stdout, msg)

		case "2":
			src, err := newSource()
			if err != nil {
				fmt.Fprintf(stdout, "Error: %v\n", err)
				break
			}
			viewHoldings(ctx, holdings, src, c.raw)

		case "3":
			fmt.Fprintln(stdout, "Goodbye! Stay invested.")
			return nil

		default:
			fmt.Fprintln(stdout, "Invalid choice. Please select 1-3.")
		}
		fmt.Fprintln(stdout)
	}
}
