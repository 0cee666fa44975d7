package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/stocktracker/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// Completion exits when invoked by the shell.
	cmd.Completion(flag.CommandLine).Complete("stk")

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	commander := subcommands.NewCommander(flag.CommandLine, "stk")
	cmd.Register(commander)
	flag.Parse()

	if err := cmd.InitLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	if flag.NArg() == 0 {
		// no subcommand, run the interactive menu.
		flag.CommandLine.Parse([]string{"menu"})
	}
	os.Exit(int(commander.Execute(context.Background())))
}
