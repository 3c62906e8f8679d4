package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investilearn/yahoo"
	"github.com/google/subcommands"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	period string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the closing price history" }
func (*historyCmd) Usage() string {
	return `ivl history [-p <period>] <symbol>

  Displays daily closing prices over the given period.

Usage Examples:
$ ivl history AAPL
$ ivl history -p 5y MSFT
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", yahoo.DefaultPeriod, fmt.Sprintf("Period to display, one of %v.", yahoo.ValidPeriods))
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, ok := symbolArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	if !yahoo.ValidPeriod(c.period) {
		fmt.Fprintf(os.Stderr, "invalid period %q (want one of %v)\n", c.period, yahoo.ValidPeriods)
		return subcommands.ExitUsageError
	}

	h, err := NewStore().History(ctx, symbol, c.period)
	if err != nil {
		return fetchError(symbol, err)
	}

	fmt.Printf("Date\t\tClose\n")
	for on, close := range h.Values() {
		fmt.Printf("%s\t%.2f\n", on, close)
	}
	return subcommands.ExitSuccess
}
