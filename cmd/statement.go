package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/investilearn"
	"github.com/etnz/investilearn/market"
	"github.com/google/subcommands"
)

// statementCmd holds the flags for the 'statement' subcommand.
type statementCmd struct {
	kind string
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "display a financial statement" }
func (*statementCmd) Usage() string {
	return `ivl statement [-k <kind>] <symbol>

  Displays a financial statement of the company: one row per line item,
  one column per fiscal year, most recent first. Figures are in the
  company's reporting currency.

Usage Examples:
$ ivl statement AAPL
$ ivl statement -k balance MSFT
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "k", "income", "Statement kind (income, cashflow, balance).")
}

func (c *statementCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, ok := symbolArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	if !investilearn.ValidStatementKind(c.kind) {
		fmt.Fprintf(os.Stderr, "unknown statement %q: want income, cashflow or balance\n", c.kind)
		return subcommands.ExitUsageError
	}

	store := NewStore()
	stmt, err := store.Statement(ctx, symbol, investilearn.StatementKind(c.kind))
	if err != nil {
		return fetchError(symbol, err)
	}
	if stmt.Empty() {
		fmt.Printf("No %s statement data for %s.\n", c.kind, symbol)
		return subcommands.ExitSuccess
	}

	printMarkdown(statementTable(symbol, stmt, reportingCurrency(ctx, store, symbol)))
	return subcommands.ExitSuccess
}

// reportingCurrency is the currency the company's statements are filed in,
// taken from its quote. USD when the quote is unavailable.
func reportingCurrency(ctx context.Context, store *market.Store, symbol string) string {
	q, err := store.Quote(ctx, symbol)
	if err != nil || q.Currency == "" {
		return "USD"
	}
	return q.Currency
}

// statementTable renders all fiscal periods side by side. Rows follow the
// report order of the most recent period; items only reported in older
// periods are appended after.
func statementTable(symbol string, stmt *investilearn.Statement, currency string) string {
	cols := stmt.Columns()

	var rows []string
	seen := make(map[string]bool)
	for _, col := range cols {
		for name := range col.Items() {
			if !seen[name] {
				seen[name] = true
				rows = append(rows, name)
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s statement\n\n", symbol, stmt.Kind)
	b.WriteString("| Line item |")
	for _, col := range cols {
		fmt.Fprintf(&b, " %s |", col.Period)
	}
	b.WriteString("\n|:---|")
	b.WriteString(strings.Repeat("---:|", len(cols)))
	b.WriteString("\n")
	for _, name := range rows {
		fmt.Fprintf(&b, "| %s |", name)
		for _, col := range cols {
			if v, ok := col.Get(name); ok {
				fmt.Fprintf(&b, " %s |", investilearn.M(v, currency).Compact())
			} else {
				b.WriteString(" |")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
