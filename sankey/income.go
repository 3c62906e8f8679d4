package sankey

import (
	"github.com/etnz/investilearn"
)

// Color palette for the income statement flow (colorblind-friendly).
var incomeColors = struct {
	revenue, expense, profit, operating, tax, final string
}{
	revenue:   "#2E86AB",
	expense:   "#A23B72",
	profit:    "#06A77D",
	operating: "#F18F01",
	tax:       "#8B5A3C",
	final:     "#2D6A4F",
}

// Alternative spellings providers use for the key income statement totals.
var (
	revenueKeys         = []string{"Total Revenue", "Revenue", "Total Operating Revenue"}
	cogsKeys            = []string{"Cost Of Revenue", "Cost of Revenue", "COGS"}
	grossProfitKeys     = []string{"Gross Profit"}
	operatingIncomeKeys = []string{"Operating Income", "EBIT"}
	interestKeys        = []string{"Interest Expense"}
	taxKeys             = []string{"Tax Provision", "Income Tax Expense"}
	netIncomeKeys       = []string{"Net Income", "Net Income Common Stockholders"}
	otherIncomeKeys     = []string{
		"Other Income Expense",
		"Other Non Operating Income Expenses",
		"Net Non Operating Interest Income Expense",
	}
)

// Operating expense line items worth their own box, in display order.
// Long accounting labels are shortened for the diagram.
var opexPatterns = []struct{ key, label string }{
	{"Selling General And Administration", "SG&A"},
	{"Research And Development", "R&D"},
	{"Operating Expense", "Operating Expense"},
	{"Depreciation And Amortization", "DDA"},
	{"Depreciation", "Depreciation"},
	{"Amortization", "Amortization"},
	{"Reconciled Depreciation", "Reconciled Depreciation"},
}

// Income builds the revenue-to-net-income flow from the latest income
// statement period. The hierarchy follows common accounting structure:
// revenue splits into cost of revenue and gross profit, gross profit into
// operating expenses and operating income, operating income into interest,
// tax and net income. Line items below a share-of-revenue threshold are
// dropped to keep the diagram readable.
func Income(col *investilearn.Column) *Graph {
	if col == nil || col.Len() == 0 {
		return emptyGraph()
	}

	// Magnitudes only: the flow width is the absolute amount. Zero-valued
	// aliases are skipped so the search falls through to a reported figure.
	find := func(keys []string) (string, float64) {
		name, v := findNonZero(col, keys...)
		return name, abs(v)
	}

	revenueKey, revenue := find(revenueKeys)
	if revenue == 0 {
		return emptyGraph()
	}
	cogsKey, cogs := find(cogsKeys)
	grossProfitKey, grossProfit := find(grossProfitKeys)
	operatingIncomeKey, operatingIncome := find(operatingIncomeKeys)
	netIncomeKey, netIncome := find(netIncomeKeys)

	b := newBuilder()
	revenueNode := b.node(revenueKey, revenueKey, incomeColors.revenue)

	if cogsKey != "" && cogs > 0 {
		b.link(revenueNode, b.node(cogsKey, cogsKey, incomeColors.expense), cogs)
	}
	if grossProfitKey != "" && grossProfit > 0 {
		b.link(revenueNode, b.node(grossProfitKey, grossProfitKey, incomeColors.profit), grossProfit)
	}

	// Operating expenses flow out of gross profit when known, else revenue.
	source := revenueNode
	if grossProfitKey != "" && b.has(grossProfitKey) {
		source = b.at(grossProfitKey)
	}
	for _, p := range opexPatterns {
		if p.key == revenueKey || p.key == cogsKey || p.key == grossProfitKey ||
			p.key == operatingIncomeKey || p.key == netIncomeKey {
			continue
		}
		v, ok := col.Get(p.key)
		if !ok {
			continue
		}
		v = abs(v)
		// Keep only items above 0.5% of revenue.
		if v > 0 && v/revenue > 0.005 {
			b.link(source, b.node(p.key, p.label, incomeColors.operating), v)
		}
	}

	if operatingIncomeKey != "" && operatingIncome > 0 {
		oi := b.node(operatingIncomeKey, operatingIncomeKey, incomeColors.profit)
		b.link(source, oi, operatingIncome)
	}

	if operatingIncomeKey != "" && b.has(operatingIncomeKey) {
		op := b.at(operatingIncomeKey)

		if otherKey, other := findNonZero(col, otherIncomeKeys...); otherKey != "" && abs(other)/revenue > 0.001 {
			color := incomeColors.profit
			if other < 0 {
				color = incomeColors.expense
			}
			b.link(op, b.node("Other Income (Expense)", "Other Income (Expense)", color), abs(other))
		}
		if interestKey, interest := find(interestKeys); interestKey != "" && interest > 0 && interest/revenue > 0.005 {
			b.link(op, b.node("Interest Expense", "Interest Expense", incomeColors.expense), interest)
		}
		if taxKey, tax := find(taxKeys); taxKey != "" && tax > 0 && tax/revenue > 0.005 {
			b.link(op, b.node("Tax", "Tax", incomeColors.tax), tax)
		}
		if netIncomeKey != "" && netIncome > 0 {
			b.link(op, b.node(netIncomeKey, netIncomeKey, incomeColors.final), netIncome)
		}
	}

	return b.graph("Income Statement Flow")
}
