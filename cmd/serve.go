package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investilearn/agent"
	"github.com/etnz/investilearn/server"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	port int
	noAI bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "start the learning dashboard web server" }
func (*serveCmd) Usage() string {
	return `ivl serve [-port <port>] [-no-ai]

  Starts the dashboard: a web page to search a stock, read its financial
  statements as flow diagrams, study its fundamental ratios and recent
  news, and ask the AI learning guide about any ratio.

  The guide needs a GEMINI_API_KEY in the environment; without one (or
  with -no-ai) the dashboard runs with the guide disabled.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", server.DefaultPort, "port to listen on")
	f.BoolVar(&c.noAI, "no-ai", false, "disable the AI learning guide")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := NewStore()

	var guide server.GuideFunc
	if !c.noAI && os.Getenv("GEMINI_API_KEY") != "" {
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
			return subcommands.ExitFailure
		}
		guide = func(ctx context.Context, symbol, ratio string) (string, error) {
			return agent.Explain(ctx, client, store, symbol, ratio)
		}
	} else {
		fmt.Fprintln(os.Stderr, "AI learning guide disabled (set GEMINI_API_KEY to enable it)")
	}

	srv := server.New(server.Config{
		Store: store,
		Guide: guide,
		Port:  c.port,
	})
	if err := srv.Serve(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Server failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
