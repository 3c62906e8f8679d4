package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/investilearn"
	"github.com/google/subcommands"
)

// ratiosCmd holds the flags for the 'ratios' subcommand.
type ratiosCmd struct {
	category string
}

func (*ratiosCmd) Name() string     { return "ratios" }
func (*ratiosCmd) Synopsis() string { return "display the fundamental ratios of a company" }
func (*ratiosCmd) Usage() string {
	return `ivl ratios [-c <category>] <symbol>

  Displays the fundamental ratios grouped by category, each with a short
  lesson on what the category measures.

Usage Examples:
$ ivl ratios AAPL
$ ivl ratios -c Profitability MSFT
`
}

func (c *ratiosCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Single category to display (Profitability, Liquidity, Efficiency, Leverage, Valuation). Displays all by default.")
}

func (c *ratiosCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, ok := symbolArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}

	categories := investilearn.Categories()
	if c.category != "" {
		found := false
		for _, cat := range categories {
			if strings.EqualFold(cat.Name, c.category) {
				categories = []investilearn.Category{cat}
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(os.Stderr, "unknown category %q\n", c.category)
			return subcommands.ExitUsageError
		}
	}

	ratios, err := NewStore().Ratios(ctx, symbol)
	if err != nil {
		return fetchError(symbol, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Fundamental Ratios: %s\n", symbol)
	for _, cat := range categories {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n\n", cat.Name, cat.Info)
		b.WriteString("| Metric | Value |\n|---|---|\n")
		for _, m := range cat.Metrics {
			fmt.Fprintf(&b, "| %s | %s |\n", m.Display, ratios.Get(m.Key).Format(m.Key))
		}
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
