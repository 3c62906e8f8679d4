package agent

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/investilearn"
	"github.com/etnz/investilearn/docs"
	"github.com/etnz/investilearn/market"
	"github.com/etnz/investilearn/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Disclaimer is appended to every learning guide reply.
const Disclaimer = "*This is educational content, not investment advice. Always verify with official filings and consult a licensed financial advisor.*"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are the facilitator of a learning guide that teaches fundamental
			investing to beginners. You are in charge of the conversation and of
			solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context
			of your previous questions.

			The user is here to learn how to analyze companies, not to get stock
			picks. Explain concepts in plain language, relate them to the actual
			figures of the company under discussion, and point out what a beginner
			should look at next.

			Never give investment advice or buy/sell recommendations. When a user
			asks for one, explain what they could analyze to decide for themselves.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the expert with live market data access through the
// given store.
func NewAnalyst(store *market.Store) *Expert {
	lib := []Function{snapshotFunc(store), statementFunc(store)}

	return &Expert{
		Name: "Analyst",
		Description: `This is the financial Analyst. She has live access to market data:
		company snapshots with fundamental ratios, recent headlines, and the annual
		financial statements. Ask the Analyst whenever you need actual figures for a
		ticker symbol.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a financial analyst with access to live market data through
			the available tools. Use them to ground every figure you state: never
			invent a number. When a ratio is N/A say so, the data source did not
			report its inputs. Report figures as they are, without advice.
		`}}},
		},
		Library: NewLibrary(lib),
	}
}

// NewEducator returns the expert grounded in the documentation topics.
func NewEducator() *Expert {
	lib := []Function{topicFunc}

	return &Expert{
		Name: "Educator",
		Description: `This is the Educator. He knows the documentation library about
		fundamental analysis: what the financial statements are, what each ratio
		category measures, and how to read them. Ask the Educator to explain a
		concept or a metric to a beginner.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an educator teaching fundamental investing. Ground your
			explanations in the documentation topics available through the tools,
			and keep them short and beginner friendly: one concept at a time, with
			the formula and what a high or low value suggests.
		`}}},
		},
		Library: NewLibrary(lib),
	}
}

// errResponse wraps an error into a function response.
func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

// symbolArg extracts and validates the "symbol" argument.
func symbolArg(args map[string]any) (string, error) {
	s, ok := args["symbol"].(string)
	if !ok {
		return "", fmt.Errorf("argument 'symbol' is not a string as expected but %T", args["symbol"])
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	if err := investilearn.ValidateSymbol(s); err != nil {
		return "", err
	}
	return s, nil
}

// snapshotFunc serves the company report for a ticker symbol.
func snapshotFunc(store *market.Store) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Snapshot",
			Description: `Snapshot returns the full company report for a ticker symbol:
			name, sector, price, day change, market cap, every fundamental ratio by
			category, and recent headlines. Values shown as N/A were not reported.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol": {
						Type:        genai.TypeString,
						Description: "The stock ticker symbol, e.g. 'AAPL' for Apple Inc.",
					},
				},
				Required: []string{"symbol"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted company report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			symbol, err := symbolArg(args)
			if err != nil {
				return errResponse(id, "Snapshot", err)
			}
			q, err := store.Quote(ctx, symbol)
			if err != nil {
				return errResponse(id, "Snapshot", err)
			}
			ratios, err := store.Ratios(ctx, symbol)
			if err != nil {
				return errResponse(id, "Snapshot", err)
			}
			news, _ := store.News(ctx, symbol, 5)
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Snapshot",
				Response: map[string]any{
					"output": renderer.RenderReport(renderer.NewReport(q, ratios, news)),
				},
			}
		},
	}
}

// statementFunc serves the line items of one financial statement.
func statementFunc(store *market.Store) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Statement",
			Description: `Statement returns the annual line items of one financial
			statement for a ticker symbol, most recent fiscal year first.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol": {
						Type:        genai.TypeString,
						Description: "The stock ticker symbol, e.g. 'AAPL'.",
					},
					"kind": {
						Type:        genai.TypeString,
						Description: "The statement: 'income', 'cashflow' or 'balance'.",
					},
				},
				Required: []string{"symbol", "kind"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the statement's line items.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			symbol, err := symbolArg(args)
			if err != nil {
				return errResponse(id, "Statement", err)
			}
			kind, _ := args["kind"].(string)
			if !investilearn.ValidStatementKind(kind) {
				return errResponse(id, "Statement", fmt.Errorf("unknown statement kind %q, want income, cashflow or balance", kind))
			}
			stmt, err := store.Statement(ctx, symbol, investilearn.StatementKind(kind))
			if err != nil {
				return errResponse(id, "Statement", err)
			}
			currency := "USD"
			if q, err := store.Quote(ctx, symbol); err == nil && q.Currency != "" {
				currency = q.Currency
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Statement",
				Response: map[string]any{
					"output": statementMarkdown(symbol, stmt, currency),
				},
			}
		},
	}
}

// statementMarkdown renders the latest fiscal period as a markdown table.
// Figures are in the company's reporting currency.
func statementMarkdown(symbol string, stmt *investilearn.Statement, currency string) string {
	col := stmt.Latest()
	if col == nil {
		return fmt.Sprintf("No %s statement data for %s.", stmt.Kind, symbol)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s statement, fiscal year ending %s\n\n", symbol, stmt.Kind, col.Period)
	fmt.Fprintln(&b, "| Line item | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	for name, v := range col.Items() {
		fmt.Fprintf(&b, "| %s | %s |\n", name, investilearn.M(v, currency).Compact())
	}
	return b.String()
}

// topicFunc serves the documentation topics.
var topicFunc = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Topic",
		Description: `Topic returns one documentation topic about fundamental
		analysis. Available topics: fundamentals, statements, ratios, disclaimer.
		Use '*' for all of them.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {
					Type:        genai.TypeString,
					Description: "The topic name.",
				},
			},
			Required: []string{"name"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The markdown content of the topic.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		name, ok := args["name"].(string)
		if !ok {
			return errResponse(id, "Topic", fmt.Errorf("argument 'name' is not a string as expected but %T", args["name"]))
		}
		content, err := docs.GetTopic(name)
		if err != nil {
			return errResponse(id, "Topic", err)
		}
		return &genai.FunctionResponse{
			ID:   id,
			Name: "Topic",
			Response: map[string]any{
				"output": content,
			},
		}
	},
}

// Explain answers a one-shot learning question about a ratio of a company.
// It drives the same facilitator and experts as the REPL, without the loop.
func Explain(ctx context.Context, client *genai.Client, store *market.Store, symbol, ratio string) (string, error) {
	a := New(io.Discard, strings.NewReader(""), NewAnalyst(store), NewEducator())
	if err := a.Start(ctx, client); err != nil {
		return "", err
	}
	question := fmt.Sprintf(
		"Explain the %q metric of %s to a beginner: what it measures, its formula, the company's current value and what that value suggests.",
		ratio, symbol)
	content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	return content.Parts[0].Text + "\n\n" + Disclaimer, nil
}
