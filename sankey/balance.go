package sankey

import (
	"github.com/etnz/investilearn"
)

// Color palette for the balance sheet structure diagram.
var balanceColors = map[string]string{
	"total_assets":            "#2E86AB",
	"current_assets":          "#06A77D",
	"non_current_assets":      "#023E8A",
	"current_liabilities":     "#F18F01",
	"non_current_liabilities": "#C73E1D",
	"equity":                  "#2D6A4F",
	"cash":                    "#90E0EF",
	"receivables":             "#00B4D8",
	"inventory":               "#0077B6",
	"ppe":                     "#03045E",
	"intangibles":             "#5A189A",
	"other":                   "#7209B7",
}

var (
	totalAssetsKeys      = []string{"Total Assets"}
	currentAssetsKeys    = []string{"Current Assets"}
	nonCurrentAssetsKeys = []string{
		"Total Non Current Assets",
		"Non Current Assets",
		"Net Non Current Assets",
	}
	currentLiabilitiesKeys = []string{"Current Liabilities", "Total Current Liabilities"}
	longTermDebtKeys       = []string{
		"Total Non Current Liabilities Net Minority Interest",
		"Long Term Debt",
		"Total Debt",
	}
	stockholdersEquityKeys = []string{
		"Stockholders Equity",
		"Total Equity Gross Minority Interest",
		"Common Stock Equity",
	}
)

// Asset line items worth their own box, with their color class.
var currentAssetPatterns = []struct{ key, color string }{
	{"Cash And Cash Equivalents", "cash"},
	{"Cash", "cash"},
	{"Cash Equivalents", "cash"},
	{"Accounts Receivable", "receivables"},
	{"Receivables", "receivables"},
	{"Net Receivables", "receivables"},
	{"Inventory", "inventory"},
	{"Gross Inventory", "inventory"},
	{"Marketable Securities", "cash"},
	{"Short Term Investments", "cash"},
}

var nonCurrentAssetPatterns = []struct{ key, color string }{
	{"Net PPE", "ppe"},
	{"Gross PPE", "ppe"},
	{"Properties", "ppe"},
	{"Plant", "ppe"},
	{"Equipment", "ppe"},
	{"Goodwill And Other Intangible Assets", "intangibles"},
	{"Goodwill", "intangibles"},
	{"Intangible Assets", "intangibles"},
	{"Other Intangible Assets", "intangibles"},
	{"Long Term Investments", "other"},
	{"Investment In Financial Assets", "other"},
}

// Balance builds the balance sheet structure: total assets split into
// current and non-current assets with their major components, mirrored by
// a consolidated liabilities branch (current plus long-term) and an equity
// branch (retained earnings, common stock). Components below 3% of total
// assets are dropped; equity components below 15% of equity stay folded.
func Balance(col *investilearn.Column) *Graph {
	if col == nil || col.Len() == 0 {
		return emptyGraph()
	}

	// Magnitudes only: flow widths ignore the reported sign. Zero-valued
	// aliases are skipped so the search falls through to a reported figure.
	find := func(keys []string) (string, float64) {
		name, v := findNonZero(col, keys...)
		return name, abs(v)
	}

	totalAssetsKey, totalAssets := find(totalAssetsKeys)
	if totalAssets == 0 {
		return emptyGraph()
	}

	b := newBuilder()
	assets := b.node(totalAssetsKey, totalAssetsKey, balanceColors["total_assets"])

	currentAssetsKey, currentAssets := find(currentAssetsKeys)
	used := map[string]bool{totalAssetsKey: true, currentAssetsKey: true}

	if currentAssetsKey != "" && currentAssets > 0 {
		current := b.node(currentAssetsKey, currentAssetsKey, balanceColors["current_assets"])
		b.link(assets, current, currentAssets)

		for _, p := range currentAssetPatterns {
			if used[p.key] {
				continue
			}
			if v, ok := col.Get(p.key); ok && abs(v) > 0 && abs(v)/totalAssets > 0.03 {
				b.link(current, b.node(p.key, p.key, balanceColors[p.color]), abs(v))
				used[p.key] = true
			}
		}
	}

	nonCurrentAssetsKey, nonCurrentAssets := find(nonCurrentAssetsKeys)
	used[nonCurrentAssetsKey] = true
	if nonCurrentAssetsKey != "" && nonCurrentAssets > 0 {
		nonCurrent := b.node(nonCurrentAssetsKey, nonCurrentAssetsKey, balanceColors["non_current_assets"])
		b.link(assets, nonCurrent, nonCurrentAssets)

		for _, p := range nonCurrentAssetPatterns {
			if used[p.key] {
				continue
			}
			if v, ok := col.Get(p.key); ok && abs(v) > 0 && abs(v)/totalAssets > 0.03 {
				b.link(nonCurrent, b.node(p.key, p.key, balanceColors[p.color]), abs(v))
				used[p.key] = true
			}
		}
	}

	// Liabilities consolidate from whichever split items are reported.
	var currentLiabilities, longTermDebt float64
	if key, v := find(currentLiabilitiesKeys); key != "" && !used[key] {
		currentLiabilities = v
		used[key] = true
	}
	if key, v := find(longTermDebtKeys); key != "" && !used[key] {
		longTermDebt = v
		used[key] = true
	}

	if totalLiabilities := currentLiabilities + longTermDebt; totalLiabilities > 0 {
		liabilities := b.node("Total Liabilities", "Total Liabilities", balanceColors["current_liabilities"])
		b.link(assets, liabilities, totalLiabilities)

		if currentLiabilities > 0 {
			b.link(liabilities, b.node("Current Liabilities", "Current Liabilities", balanceColors["current_liabilities"]), currentLiabilities)
		}
		if longTermDebt > 0 {
			b.link(liabilities, b.node("Long-Term Debt", "Long-Term Debt", balanceColors["non_current_liabilities"]), longTermDebt)
		}
	}

	// Equity, preferring the reported total over summed components.
	var stockholdersEquity, retainedEarnings, commonStock float64
	if key, v := find(stockholdersEquityKeys); key != "" && !used[key] {
		stockholdersEquity = v
		used[key] = true
	}
	if v, ok := col.Get("Retained Earnings"); ok && !used["Retained Earnings"] {
		retainedEarnings = abs(v)
		used["Retained Earnings"] = true
	}
	if v, ok := col.Get("Common Stock"); ok && !used["Common Stock"] {
		commonStock = abs(v)
		used["Common Stock"] = true
	}

	totalEquity := stockholdersEquity
	if totalEquity == 0 {
		totalEquity = retainedEarnings + commonStock
	}

	if totalEquity > 0 {
		equity := b.node("Total Equity", "Total Equity", balanceColors["equity"])
		b.link(assets, equity, totalEquity)

		if retainedEarnings > 0 && retainedEarnings/totalEquity > 0.15 {
			b.link(equity, b.node("Retained Earnings", "Retained Earnings", balanceColors["equity"]), retainedEarnings)
		}
		if commonStock > 0 && commonStock/totalEquity > 0.15 {
			b.link(equity, b.node("Common Stock", "Common Stock", balanceColors["equity"]), commonStock)
		}
	}

	return b.graph("Balance Sheet Structure (Detailed)")
}
