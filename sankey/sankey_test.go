package sankey

import (
	"testing"

	"github.com/etnz/investilearn"
	"github.com/etnz/investilearn/date"
)

func newColumn(t *testing.T, items map[string]float64, order ...string) *investilearn.Column {
	t.Helper()
	c := investilearn.NewColumn(date.New(2023, 12, 31))
	for _, name := range order {
		c.Set(name, items[name])
	}
	return c
}

func incomeColumn(t *testing.T) *investilearn.Column {
	return newColumn(t, map[string]float64{
		"Total Revenue":     1000000,
		"Cost Of Revenue":   600000,
		"Operating Expense": 200000,
		"Net Income":        150000,
	}, "Total Revenue", "Cost Of Revenue", "Operating Expense", "Net Income")
}

func TestBuildEmptyStatement(t *testing.T) {
	g := Build(investilearn.NewStatement(investilearn.IncomeStatement))
	if !g.Empty() {
		t.Errorf("Build(empty statement).Empty() = false, want true")
	}
	if g.Note == "" {
		t.Errorf("Build(empty statement).Note = %q, want a placeholder note", g.Note)
	}

	g = Build(nil)
	if !g.Empty() {
		t.Errorf("Build(nil).Empty() = false, want true")
	}
}

func TestBuildDispatch(t *testing.T) {
	s := investilearn.NewStatement(investilearn.IncomeStatement)
	s.Append(incomeColumn(t))

	g := Build(s)
	if g.Empty() {
		t.Fatalf("Build(income statement).Empty() = true, want a diagram")
	}
	if g.Title != "Income Statement Flow" {
		t.Errorf("Build(income statement).Title = %q", g.Title)
	}

	// Unknown statement kinds fall back to the placeholder.
	s = investilearn.NewStatement(investilearn.StatementKind("invalid_type"))
	s.Append(incomeColumn(t))
	if g := Build(s); !g.Empty() {
		t.Errorf("Build(invalid kind).Empty() = false, want true")
	}
}

func TestIncome(t *testing.T) {
	g := Income(incomeColumn(t))
	if g.Empty() {
		t.Fatalf("Income().Empty() = true, want a diagram")
	}
	if g.Title != "Income Statement Flow" {
		t.Errorf("Income().Title = %q", g.Title)
	}
	// Revenue splits into cost of revenue and the operating expense box.
	if len(g.Links) != 2 {
		t.Errorf("Income() has %d links, want 2", len(g.Links))
	}
	for _, l := range g.Links {
		if l.Source != 0 {
			t.Errorf("Income() link source = %d, want revenue node 0", l.Source)
		}
	}
}

func TestIncomeZeroRevenue(t *testing.T) {
	c := newColumn(t, map[string]float64{
		"Total Revenue":     0,
		"Cost Of Revenue":   0,
		"Operating Expense": 0,
		"Net Income":        0,
	}, "Total Revenue", "Cost Of Revenue", "Operating Expense", "Net Income")

	if g := Income(c); !g.Empty() {
		t.Errorf("Income(zero revenue).Empty() = false, want true")
	}
}

func TestIncomeZeroRevenueAliasFallsThrough(t *testing.T) {
	// A provider can report "Total Revenue" at zero while the actual figure
	// sits under the "Revenue" alias. The zero spelling must not mask it.
	c := newColumn(t, map[string]float64{
		"Total Revenue":   0,
		"Revenue":         500000,
		"Cost Of Revenue": 300000,
		"Net Income":      100000,
	}, "Total Revenue", "Revenue", "Cost Of Revenue", "Net Income")

	g := Income(c)
	if g.Empty() {
		t.Fatalf("Income(zero Total Revenue, nonzero Revenue).Empty() = true, want a diagram")
	}
	if got := g.Nodes[0].Label; got != "Revenue" {
		t.Errorf("Income() revenue node label = %q, want %q", got, "Revenue")
	}
}

func TestIncomeMissingData(t *testing.T) {
	c := newColumn(t, map[string]float64{"Total Revenue": 1000000}, "Total Revenue")
	// Revenue alone gives nothing to draw, but must not panic.
	if g := Income(c); !g.Empty() {
		t.Errorf("Income(revenue only).Empty() = false, want true")
	}

	if g := Income(nil); !g.Empty() {
		t.Errorf("Income(nil).Empty() = false, want true")
	}
}

func TestIncomeFullHierarchy(t *testing.T) {
	c := newColumn(t, map[string]float64{
		"Total Revenue":                      1000000,
		"Cost Of Revenue":                    600000,
		"Gross Profit":                       400000,
		"Selling General And Administration": 100000,
		"Research And Development":           80000,
		"Operating Income":                   220000,
		"Interest Expense":                   10000,
		"Tax Provision":                      40000,
		"Net Income":                         170000,
	}, "Total Revenue", "Cost Of Revenue", "Gross Profit",
		"Selling General And Administration", "Research And Development",
		"Operating Income", "Interest Expense", "Tax Provision", "Net Income")

	g := Income(c)
	if g.Empty() {
		t.Fatalf("Income(full).Empty() = true, want a diagram")
	}

	labels := make(map[string]bool)
	for _, n := range g.Nodes {
		labels[n.Label] = true
	}
	for _, want := range []string{"Total Revenue", "Gross Profit", "SG&A", "R&D", "Operating Income", "Interest Expense", "Tax", "Net Income"} {
		if !labels[want] {
			t.Errorf("Income(full) is missing node %q (nodes: %v)", want, g.Nodes)
		}
	}
}

func TestCashFlow(t *testing.T) {
	c := newColumn(t, map[string]float64{
		"Operating Cash Flow": 500000,
		"Investing Cash Flow": -200000,
		"Financing Cash Flow": -100000,
	}, "Operating Cash Flow", "Investing Cash Flow", "Financing Cash Flow")

	g := CashFlow(c)
	if g.Empty() {
		t.Fatalf("CashFlow().Empty() = true, want a diagram")
	}
	if g.Title != "Cash Flow Movement (Detailed)" {
		t.Errorf("CashFlow().Title = %q", g.Title)
	}

	labels := make(map[string]bool)
	for _, n := range g.Nodes {
		labels[n.Label] = true
	}
	for _, want := range []string{"Operating Inflow", "CF from Operations", "Net Change in Cash"} {
		if !labels[want] {
			t.Errorf("CashFlow() is missing node %q (nodes: %v)", want, g.Nodes)
		}
	}
}

func TestCashFlowAllZeros(t *testing.T) {
	c := newColumn(t, map[string]float64{
		"Operating Cash Flow": 0,
		"Investing Cash Flow": 0,
		"Financing Cash Flow": 0,
	}, "Operating Cash Flow", "Investing Cash Flow", "Financing Cash Flow")

	if g := CashFlow(c); !g.Empty() {
		t.Errorf("CashFlow(all zeros).Empty() = false, want true")
	}
}

func TestCashFlowZeroAliasFallsThrough(t *testing.T) {
	c := newColumn(t, map[string]float64{
		"Operating Cash Flow":                 0,
		"Cash Flow From Operating Activities": 500000,
		"Investing Cash Flow":                 -200000,
	}, "Operating Cash Flow", "Cash Flow From Operating Activities", "Investing Cash Flow")

	if g := CashFlow(c); g.Empty() {
		t.Errorf("CashFlow(zero primary alias).Empty() = true, want a diagram")
	}
}

func TestCashFlowMissingData(t *testing.T) {
	c := newColumn(t, map[string]float64{"Operating Cash Flow": 500000}, "Operating Cash Flow")
	if g := CashFlow(c); g.Empty() {
		t.Errorf("CashFlow(operating only).Empty() = true, want a diagram")
	}

	if g := CashFlow(nil); !g.Empty() {
		t.Errorf("CashFlow(nil).Empty() = false, want true")
	}
}

func TestBalance(t *testing.T) {
	c := newColumn(t, map[string]float64{
		"Total Assets":        1000000,
		"Stockholders Equity": 400000,
	}, "Total Assets", "Stockholders Equity")

	g := Balance(c)
	if g.Empty() {
		t.Fatalf("Balance().Empty() = true, want a diagram")
	}
	if g.Title != "Balance Sheet Structure (Detailed)" {
		t.Errorf("Balance().Title = %q", g.Title)
	}
}

func TestBalanceZeroAssets(t *testing.T) {
	c := newColumn(t, map[string]float64{
		"Total Assets":        0,
		"Stockholders Equity": 0,
	}, "Total Assets", "Stockholders Equity")

	if g := Balance(c); !g.Empty() {
		t.Errorf("Balance(zero assets).Empty() = false, want true")
	}
}

func TestBalanceZeroLiabilityAliasFallsThrough(t *testing.T) {
	c := newColumn(t, map[string]float64{
		"Total Assets":              1000000,
		"Current Liabilities":       0,
		"Total Current Liabilities": 400000,
		"Stockholders Equity":       600000,
	}, "Total Assets", "Current Liabilities", "Total Current Liabilities", "Stockholders Equity")

	g := Balance(c)
	if g.Empty() {
		t.Fatalf("Balance().Empty() = true, want a diagram")
	}
	var liabilities float64
	for i, n := range g.Nodes {
		if n.Label != "Current Liabilities" {
			continue
		}
		for _, l := range g.Links {
			if l.Target == i {
				liabilities = l.Value
			}
		}
	}
	if liabilities != 400000 {
		t.Errorf("Balance() current liabilities flow = %v, want 400000 from the nonzero alias", liabilities)
	}
}

func TestBalanceFullStructure(t *testing.T) {
	c := newColumn(t, map[string]float64{
		"Total Assets":              1000000,
		"Current Assets":            400000,
		"Cash And Cash Equivalents": 150000,
		"Inventory":                 100000,
		"Total Non Current Assets":  600000,
		"Net PPE":                   350000,
		"Goodwill":                  120000,
		"Current Liabilities":       200000,
		"Long Term Debt":            300000,
		"Stockholders Equity":       500000,
		"Retained Earnings":         300000,
		"Common Stock":              100000,
	}, "Total Assets", "Current Assets", "Cash And Cash Equivalents",
		"Inventory", "Total Non Current Assets", "Net PPE", "Goodwill",
		"Current Liabilities", "Long Term Debt", "Stockholders Equity",
		"Retained Earnings", "Common Stock")

	g := Balance(c)
	if g.Empty() {
		t.Fatalf("Balance(full).Empty() = true, want a diagram")
	}

	labels := make(map[string]bool)
	for _, n := range g.Nodes {
		labels[n.Label] = true
	}
	for _, want := range []string{
		"Total Assets", "Current Assets", "Cash And Cash Equivalents",
		"Net PPE", "Total Liabilities", "Current Liabilities",
		"Long-Term Debt", "Total Equity", "Retained Earnings",
	} {
		if !labels[want] {
			t.Errorf("Balance(full) is missing node %q", want)
		}
	}
}

func TestBalanceMissingData(t *testing.T) {
	c := newColumn(t, map[string]float64{"Total Assets": 1000000}, "Total Assets")
	if g := Balance(c); !g.Empty() {
		t.Errorf("Balance(assets only).Empty() = false, want true")
	}

	if g := Balance(nil); !g.Empty() {
		t.Errorf("Balance(nil).Empty() = false, want true")
	}
}

func TestHexToRGBA(t *testing.T) {
	testCases := []struct {
		hex   string
		alpha float64
		want  string
	}{
		{"#3498db", 0.4, "rgba(52,152,219,0.4)"},
		{"3498db", 0.4, "rgba(52,152,219,0.4)"},
		{"#2E86AB", 1, "rgba(46,134,171,1)"},
		{"nonsense", 0.4, "rgba(153,153,153,0.4)"},
		{"#zzzzzz", 0.4, "rgba(153,153,153,0.4)"},
	}
	for _, tc := range testCases {
		if got := hexToRGBA(tc.hex, tc.alpha); got != tc.want {
			t.Errorf("hexToRGBA(%q, %v) = %q, want %q", tc.hex, tc.alpha, got, tc.want)
		}
	}
}
