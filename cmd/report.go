package cmd

import (
	"context"
	"flag"

	"github.com/etnz/investilearn/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	news int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the full company report" }
func (*reportCmd) Usage() string {
	return `ivl report [-n <max>] <symbol>

  Displays the full company report: snapshot, fundamental ratios by
  category and recent headlines.

Usage Examples:
$ ivl report AAPL
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.news, "n", 5, "Maximum number of headlines in the report.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, ok := symbolArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}

	store := NewStore()
	q, err := store.Quote(ctx, symbol)
	if err != nil {
		return fetchError(symbol, err)
	}
	ratios, err := store.Ratios(ctx, symbol)
	if err != nil {
		return fetchError(symbol, err)
	}
	// A report without headlines is still a report.
	news, _ := store.News(ctx, symbol, c.news)

	printMarkdown(renderer.RenderReport(renderer.NewReport(q, ratios, news)))
	return subcommands.ExitSuccess
}
