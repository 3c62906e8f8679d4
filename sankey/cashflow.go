package sankey

import (
	"github.com/etnz/investilearn"
)

// Color palette for the cash flow movement diagram.
var cashflowColors = struct {
	positive, negative, operating, investing, financing, neutral string
}{
	positive:  "#06A77D",
	negative:  "#BC4B51",
	operating: "#2E86AB",
	investing: "#F18F01",
	financing: "#9B59B6",
	neutral:   "#2D6A4F",
}

var (
	cfNetIncomeKeys = []string{
		"Net Income From Continuing Operations",
		"Net Income",
		"Net Income Common Stockholders",
	}
	operatingCFKeys = []string{"Operating Cash Flow", "Cash Flow From Operating Activities"}
	freeCFKeys      = []string{"Free Cash Flow"}
	investingCFKeys = []string{"Investing Cash Flow", "Cash Flow From Investing Activities"}
	financingCFKeys = []string{"Financing Cash Flow", "Cash Flow From Financing Activities"}
)

// signOf picks the positive or negative flow color.
func signOf(v float64) string {
	if v > 0 {
		return cashflowColors.positive
	}
	return cashflowColors.negative
}

// CashFlow builds the cash movement flow from the latest cash flow period:
// net income feeds the operating inflow, which splits into the non-cash
// add-backs (DDA, stock compensation, working capital), consolidates into
// cash from operations, then capital expenditure carves out free cash
// flow, and the investing and financing activities break down on their own
// branches before the net change in cash. Items below an activity-relative
// threshold are dropped.
func CashFlow(col *investilearn.Column) *Graph {
	if col == nil || col.Len() == 0 {
		return emptyGraph()
	}

	_, netIncome := findNonZero(col, cfNetIncomeKeys...)
	operatingCFKey, operatingCF := findNonZero(col, operatingCFKeys...)
	_, freeCF := findNonZero(col, freeCFKeys...)
	investingCFKey, investingCF := findNonZero(col, investingCFKeys...)
	financingCFKey, financingCF := findNonZero(col, financingCFKeys...)

	// Derive free cash flow when the provider does not report it.
	capexRaw, _ := col.Get("Capital Expenditure")
	capex := abs(capexRaw)
	if freeCF == 0 && operatingCF != 0 {
		freeCF = operatingCF - capex
	}

	if operatingCF == 0 && netIncome == 0 {
		return emptyGraph()
	}

	b := newBuilder()

	start := -1
	if abs(netIncome) > 0 {
		start = b.node("NI", "NI from Cont. Operations", signOf(netIncome))
	}

	if operatingCF > 0 {
		inflow := b.node("Operating Inflow", "Operating Inflow", cashflowColors.operating)
		if start >= 0 {
			b.link(start, inflow, abs(netIncome))
		}

		// Non-cash add-backs above 1-2% of operating cash flow.
		if dda, _ := col.Get("Depreciation And Amortization"); abs(dda) > 0 && abs(dda)/abs(operatingCF) > 0.01 {
			b.link(inflow, b.node("DDA", "DDA", cashflowColors.neutral), abs(dda))
		}
		if comp, _ := col.Get("Stock Based Compensation"); abs(comp) > 0 && abs(comp)/abs(operatingCF) > 0.01 {
			b.link(inflow, b.node("Stock Compensation", "Stock Compensation", cashflowColors.neutral), abs(comp))
		}
		if wc, _ := col.Get("Change In Working Capital"); abs(wc) > 0 && abs(wc)/abs(operatingCF) > 0.02 {
			b.link(inflow, b.node("Change in WC", "Change in WC", cashflowColors.neutral), abs(wc))
		}
	}
	if operatingCF < 0 {
		outflow := b.node("Operating Outflow", "Operating Outflow", cashflowColors.negative)
		if start >= 0 {
			b.link(start, outflow, abs(operatingCF))
		}
	}

	if operatingCFKey != "" && abs(operatingCF) > 0 {
		cfo := b.node("CF from Operations", "CF from Operations", signOf(operatingCF))
		if b.has("Operating Inflow") {
			b.link(b.at("Operating Inflow"), cfo, abs(operatingCF))
		} else if b.has("Operating Outflow") {
			b.link(b.at("Operating Outflow"), cfo, abs(operatingCF))
		}
	}

	if freeCF != 0 && capex > 0 {
		if b.has("CF from Operations") {
			b.link(b.at("CF from Operations"), b.node("CapEx", "CapEx", cashflowColors.negative), capex)
		}
		fcf := b.node("Free Cash Flow", "Free Cash Flow", signOf(freeCF))
		if b.has("CF from Operations") {
			b.link(b.at("CF from Operations"), fcf, abs(freeCF))
		}
	}

	if investingCFKey != "" && abs(investingCF) > 0 {
		var inv int
		if investingCF > 0 {
			inv = b.node("Investing Inflow", "Investing Inflow", cashflowColors.positive)
		} else {
			inv = b.node("Investing Outflow", "Investing Outflow", cashflowColors.investing)
		}
		if v, _ := col.Get("Net Investment Purchase And Sale"); abs(v) > 0 && abs(v)/abs(investingCF) > 0.1 {
			b.link(inv, b.node("Net Investment P&S", "Net Investment P&S", cashflowColors.neutral), abs(v))
		}
		if v, _ := col.Get("Other Investing Activities"); abs(v) > 0 && abs(v)/abs(investingCF) > 0.05 {
			b.link(inv, b.node("Other Investing Activities", "Other Investing Activities", cashflowColors.neutral), abs(v))
		}
	}

	if financingCFKey != "" && abs(financingCF) > 0 {
		var fin int
		if financingCF > 0 {
			fin = b.node("Financing Inflow", "Financing Inflow", cashflowColors.positive)
		} else {
			fin = b.node("Financing Outflow", "Financing Outflow", cashflowColors.financing)
		}
		if v, _ := col.Get("Net Issuance Of Stock"); abs(v) > 0 && abs(v)/abs(financingCF) > 0.05 {
			b.link(fin, b.node("Net Issuance of Stock", "Net Issuance of Stock", signOf(v)), abs(v))
		}
		if v, _ := col.Get("Net Issuance Of Debt"); abs(v) > 0 && abs(v)/abs(financingCF) > 0.05 {
			b.link(fin, b.node("Net Issuance of Debt", "Net Issuance of Debt", signOf(v)), abs(v))
		}
		if v, _ := col.Get("Cash Dividends Paid"); abs(v) > 0 && abs(v)/abs(financingCF) > 0.05 {
			b.link(fin, b.node("Dividends", "Dividends", cashflowColors.negative), abs(v))
		}
		if v, _ := col.Get("Other Financing Activities"); abs(v) > 0 && abs(v)/abs(financingCF) > 0.05 {
			b.link(fin, b.node("Other Financing Activities", "Other Financing Activities", cashflowColors.neutral), abs(v))
		}
	}

	if netChange := operatingCF + investingCF + financingCF; abs(netChange) > 0 {
		nc := b.node("Net Change in Cash", "Net Change in Cash", signOf(netChange))
		if b.has("Free Cash Flow") {
			b.link(b.at("Free Cash Flow"), nc, abs(netChange))
		} else if b.has("CF from Operations") {
			b.link(b.at("CF from Operations"), nc, abs(netChange))
		}
	}

	return b.graph("Cash Flow Movement (Detailed)")
}
