// Package sankey builds flow-diagram graphs out of financial statements.
//
// The graphs describe how money moves: revenue through expenses to profit,
// net income through the cash-flow activities, assets into liabilities and
// equity. The package only constructs nodes and weighted links; drawing is
// left to the dashboard's charting layer.
package sankey

import (
	"fmt"
	"strconv"

	"github.com/etnz/investilearn"
)

// Node is one box of the diagram.
type Node struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Link is one weighted flow between two nodes, by node index.
type Link struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
	Color  string  `json:"color"`
}

// Graph is a complete diagram. An empty graph (no links) carries a Note
// explaining why there is nothing to draw.
type Graph struct {
	Title string `json:"title"`
	Note  string `json:"note,omitempty"`
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Empty reports whether the graph has nothing to draw.
func (g *Graph) Empty() bool { return len(g.Links) == 0 }

// placeholder notes shown instead of a diagram.
const (
	noteNoData       = "No data available"
	noteInsufficient = "Insufficient data for visualization"
)

// emptyGraph returns the placeholder shown when a statement cannot be
// turned into a diagram.
func emptyGraph() *Graph { return &Graph{Note: noteInsufficient} }

// Build dispatches to the builder for the statement's kind, using its most
// recent fiscal period. Nil or empty statements yield a placeholder graph,
// never an error: insufficient data is an expected state of the dashboard.
func Build(s *investilearn.Statement) *Graph {
	if s.Empty() {
		return &Graph{Note: noteNoData}
	}
	col := s.Latest()
	switch s.Kind {
	case investilearn.IncomeStatement:
		return Income(col)
	case investilearn.CashFlowStatement:
		return CashFlow(col)
	case investilearn.BalanceSheet:
		return Balance(col)
	}
	return emptyGraph()
}

// builder accumulates nodes and links with a label index.
type builder struct {
	nodes []Node
	links []Link
	index map[string]int
}

func newBuilder() *builder {
	return &builder{index: make(map[string]int)}
}

// node adds a node under the given key, or returns the existing index.
func (b *builder) node(key, label, color string) int {
	if i, ok := b.index[key]; ok {
		return i
	}
	b.nodes = append(b.nodes, Node{Label: label, Color: color})
	i := len(b.nodes) - 1
	b.index[key] = i
	return i
}

// has reports whether a node exists for the key.
func (b *builder) has(key string) bool {
	_, ok := b.index[key]
	return ok
}

// at returns the node index for the key, -1 when absent.
func (b *builder) at(key string) int {
	if i, ok := b.index[key]; ok {
		return i
	}
	return -1
}

// link records a flow. The link color is the source node's color faded to
// 40% opacity, so flows visually belong to where they come from.
func (b *builder) link(source, target int, value float64) {
	b.links = append(b.links, Link{
		Source: source,
		Target: target,
		Value:  value,
		Color:  hexToRGBA(b.nodes[source].Color, 0.4),
	})
}

// graph finalizes the builder under a title, falling back to the
// placeholder when no flow was recorded.
func (b *builder) graph(title string) *Graph {
	if len(b.links) == 0 {
		return emptyGraph()
	}
	return &Graph{Title: title, Nodes: b.nodes, Links: b.links}
}

// hexToRGBA converts a "#rrggbb" color to an "rgba(r,g,b,a)" string.
// Malformed input falls back to a neutral gray.
func hexToRGBA(hex string, alpha float64) string {
	if len(hex) == 7 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return fmt.Sprintf("rgba(153,153,153,%g)", alpha)
	}
	r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return fmt.Sprintf("rgba(153,153,153,%g)", alpha)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", r, g, b, alpha)
}

// findNonZero searches the alias spellings in order and returns the first
// one reported with a nonzero value. A provider sometimes reports a total
// under its primary name with a zero amount while a secondary alias carries
// the real figure; skipping zeros lets the search fall through to it.
func findNonZero(col *investilearn.Column, keys ...string) (string, float64) {
	for _, key := range keys {
		if v, ok := col.Get(key); ok && v != 0 {
			return key, v
		}
	}
	return "", 0
}

// abs without the float64 Inf/NaN subtleties: statement values are finite.
func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
