package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

// quoteCmd holds the flags for the 'quote' subcommand.
type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "display a company snapshot" }
func (*quoteCmd) Usage() string {
	return `ivl quote <symbol>

  Displays the company snapshot: price, day change and market cap.

Usage Examples:
$ ivl quote AAPL
`
}

func (*quoteCmd) SetFlags(f *flag.FlagSet) {}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, ok := symbolArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}

	q, err := NewStore().Quote(ctx, symbol)
	if err != nil {
		return fetchError(symbol, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s)\n\n", q.DisplayName(), q.Symbol)
	if q.Sector != "" {
		fmt.Fprintf(&b, "%s | %s\n\n", q.Sector, q.Industry)
	}
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Current Price | %s |\n", q.PriceMoney().String())
	fmt.Fprintf(&b, "| Day Change | %s |\n", q.DayChange().SignedString())
	fmt.Fprintf(&b, "| Market Cap | %s |\n", q.MarketCapMoney().Compact())

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
