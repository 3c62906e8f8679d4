package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investilearn/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// explainCmd holds the flags for the 'explain' subcommand.
type explainCmd struct{}

func (*explainCmd) Name() string     { return "explain" }
func (*explainCmd) Synopsis() string { return "ask the learning guide about a ratio of a company" }
func (*explainCmd) Usage() string {
	return `ivl explain <symbol> <ratio>

  Asks the AI learning guide to explain one fundamental ratio of a
  company: what it measures, and how to read this company's value.
  Requires a GEMINI_API_KEY in the environment.

Usage Examples:
$ ivl explain AAPL "P/E Ratio"
`
}

func (*explainCmd) SetFlags(f *flag.FlagSet) {}

func (c *explainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "expected a ticker symbol and a ratio name")
		return subcommands.ExitUsageError
	}
	symbol, ratio := f.Arg(0), f.Arg(1)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	answer, err := agent.Explain(ctx, client, NewStore(), symbol, ratio)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Learning guide failed:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(answer)
	return subcommands.ExitSuccess
}
