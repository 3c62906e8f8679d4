package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/investilearn"
	"github.com/google/subcommands"
)

// newsCmd holds the flags for the 'news' subcommand.
type newsCmd struct {
	filter string
	max    int
}

func (*newsCmd) Name() string     { return "news" }
func (*newsCmd) Synopsis() string { return "display recent news headlines" }
func (*newsCmd) Usage() string {
	return `ivl news [-f <filter>] [-n <max>] <symbol>

  Displays recent news headlines for the company, optionally narrowed to
  earnings reports, press releases or market analysis.

Usage Examples:
$ ivl news AAPL
$ ivl news -f "Earnings Reports" -n 3 MSFT
`
}

func (c *newsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "f", investilearn.AllNews, `News filter ("All News", "Earnings Reports", "Press Releases", "Market Analysis").`)
	f.IntVar(&c.max, "n", 5, "Maximum number of headlines to display.")
}

func (c *newsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, ok := symbolArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}

	items, err := NewStore().News(ctx, symbol, 0)
	if err != nil {
		return fetchError(symbol, err)
	}
	items = investilearn.FilterNews(items, c.filter)
	if c.max > 0 && len(items) > c.max {
		items = items[:c.max]
	}
	if len(items) == 0 {
		fmt.Printf("No recent news for %s.\n", symbol)
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Recent News: %s\n", symbol)
	for _, item := range items {
		fmt.Fprintf(&b, "\n## %s\n\n", item.Title)
		fmt.Fprintf(&b, "*%s*, %s\n", item.Publisher, item.PublishedString())
		if item.Link != "" {
			fmt.Fprintf(&b, "\n<%s>\n", item.Link)
		}
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
