// Package cmd implements the CLI application to explore stock fundamentals.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/investilearn"
	"github.com/etnz/investilearn/market"
	"github.com/etnz/investilearn/yahoo"
	"github.com/google/subcommands"
)

// Commands lists the subcommands. A main package registers them on a
// commander and Executes the user-selected one.
var Commands = []subcommands.Command{
	&serveCmd{},
	&quoteCmd{},
	&ratiosCmd{},
	&statementCmd{},
	&historyCmd{},
	&newsCmd{},
	&reportCmd{},
	&explainCmd{},
	&assistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cacheDir = flag.String("cache-dir", "", "Directory for the HTTP response cache (defaults to the system temp dir)")
var baseURL = flag.String("base-url", "", "Override the market data base URL (for testing)")
var Verbose = flag.Bool("v", false, "verbose output")

// NewStore builds the market data store every subcommand reads from.
func NewStore() *market.Store {
	if *baseURL != "" {
		return market.NewStore(yahoo.NewWith(*baseURL, nil))
	}
	return market.NewStore(yahoo.New(*cacheDir))
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown rather than losing the report.
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// fetchError reports a fetch failure on stderr and picks the exit status.
func fetchError(symbol string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error fetching data for %q: %v\n", symbol, err)
	return subcommands.ExitFailure
}

// symbolArg validates the single positional ticker argument.
func symbolArg(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one ticker symbol argument")
		return "", false
	}
	symbol := strings.ToUpper(f.Arg(0))
	if err := investilearn.ValidateSymbol(symbol); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return "", false
	}
	return symbol, true
}
