package investilearn

// This file computes the fundamental ratios the dashboard teaches.
//
// Inputs are sparse: fundamentals come from the quote, while Interest
// Coverage and Debt Ratio are derived from the latest fiscal period of the
// income statement and balance sheet. A ratio whose inputs are missing (or
// whose divisor is zero) stays missing, never zero.

// Ratio keys, as shown in the dashboard.
const (
	ROE               = "ROE"
	ROA               = "ROA"
	NetProfitMargin   = "Net Profit Margin"
	GrossProfitMargin = "Gross Profit Margin"
	CurrentRatio      = "Current Ratio"
	QuickRatio        = "Quick Ratio"
	DebtToEquity      = "Debt to Equity"
	InterestCoverage  = "Interest Coverage"
	DebtRatio         = "Debt Ratio"
	PERatio           = "P/E Ratio"
	PBRatio           = "P/B Ratio"
	PEGRatio          = "PEG Ratio"
	PriceToSales      = "Price to Sales"
)

// Ratios holds the computed ratios keyed by display key.
// Missing ratios are present in the map as invalid Ratio values.
type Ratios map[string]Ratio

// Get returns the ratio for a key. Unknown keys are missing ratios.
func (r Ratios) Get(key string) Ratio { return r[key] }

// ComputeRatios computes every ratio available from the quote and the
// optional statements. Statements may be nil or empty.
func ComputeRatios(q *Quote, income, balance *Statement) Ratios {
	ratios := make(Ratios)

	if q != nil {
		// Profitability, reported as fractions, shown as percent points.
		ratios[ROE] = q.ReturnOnEquity.Scale100()
		ratios[ROA] = q.ReturnOnAssets.Scale100()
		ratios[NetProfitMargin] = q.ProfitMargin.Scale100()
		ratios[GrossProfitMargin] = q.GrossMargin.Scale100()

		// Liquidity.
		ratios[CurrentRatio] = q.CurrentRatio
		ratios[QuickRatio] = q.QuickRatio

		// Leverage.
		ratios[DebtToEquity] = q.DebtToEquity

		// Valuation.
		ratios[PERatio] = q.TrailingPE
		ratios[PBRatio] = q.PriceToBook
		ratios[PEGRatio] = q.PEGRatio
		ratios[PriceToSales] = q.PriceToSales
	}

	ratios[InterestCoverage] = interestCoverage(income)
	ratios[DebtRatio] = debtRatio(balance)

	return ratios
}

// interestCoverage is EBIT over the absolute interest expense from the
// latest income statement period. The absolute value matters: some
// providers report interest expense as a negative outflow.
func interestCoverage(income *Statement) Ratio {
	col := income.Latest()
	if col == nil {
		return Ratio{}
	}
	ebitName, ebit := col.Find("EBIT", "Operating Income")
	interestName, interest := col.Find("Interest Expense")
	if ebitName == "" || interestName == "" || interest == 0 {
		return Ratio{}
	}
	if interest < 0 {
		interest = -interest
	}
	return R(R(ebit).Value().Div(R(interest).Value()))
}

// debtRatio is total debt over total assets from the latest balance sheet.
func debtRatio(balance *Statement) Ratio {
	col := balance.Latest()
	if col == nil {
		return Ratio{}
	}
	debtName, debt := col.Find("Total Debt")
	assetsName, assets := col.Find("Total Assets")
	if debtName == "" || assetsName == "" || assets == 0 {
		return Ratio{}
	}
	return R(R(debt).Value().Div(R(assets).Value()))
}

// Metric is one displayable ratio of a category.
type Metric struct {
	Key     string // lookup key in Ratios
	Display string // label shown in the dashboard
}

// Category groups ratios for display, with the one-line lesson shown
// above the table.
type Category struct {
	Name    string
	Info    string
	Metrics []Metric
}

var categories = []Category{
	{
		Name: "Profitability",
		Info: "**Profitability ratios** measure how efficiently a company generates profit",
		Metrics: []Metric{
			{ROE, "ROE (Return on Equity)"},
			{ROA, "ROA (Return on Assets)"},
			{NetProfitMargin, "Net Profit Margin"},
			{GrossProfitMargin, "Gross Profit Margin"},
		},
	},
	{
		Name: "Liquidity",
		Info: "**Liquidity ratios** assess ability to meet short-term obligations",
		Metrics: []Metric{
			{CurrentRatio, "Current Ratio"},
			{QuickRatio, "Quick Ratio"},
		},
	},
	{
		Name: "Efficiency",
		Info: "**Efficiency ratios** show how well assets are being used (calculations pending)",
		Metrics: []Metric{
			{"Asset Turnover", "Asset Turnover"},
			{"Inventory Turnover", "Inventory Turnover"},
			{"Days Sales Outstanding", "Days Sales Outstanding"},
		},
	},
	{
		Name: "Leverage",
		Info: "**Leverage ratios** indicate financial risk from debt",
		Metrics: []Metric{
			{DebtToEquity, "Debt-to-Equity"},
			{InterestCoverage, "Interest Coverage"},
			{DebtRatio, "Debt Ratio"},
		},
	},
	{
		Name: "Valuation",
		Info: "**Valuation ratios** help determine if stock is fairly priced",
		Metrics: []Metric{
			{PERatio, "P/E Ratio"},
			{PBRatio, "P/B Ratio"},
			{PEGRatio, "PEG Ratio"},
			{PriceToSales, "Price-to-Sales"},
		},
	},
}

// Categories returns the five ratio categories in display order.
func Categories() []Category { return categories }

// RatioCategory returns the category with the given name.
// An unknown name returns the first category (Profitability), so the
// dashboard always has something to show.
func RatioCategory(name string) Category {
	for _, c := range categories {
		if c.Name == name {
			return c
		}
	}
	return categories[0]
}

// MarshalJSON renders the ratios grouped in a stable, categorized order.
func (r Ratios) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	seen := make(map[string]bool)
	for _, c := range categories {
		for _, m := range c.Metrics {
			if seen[m.Key] {
				continue
			}
			seen[m.Key] = true
			w.Append(m.Key, r[m.Key])
		}
	}
	return w.MarshalJSON()
}
