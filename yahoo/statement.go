package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/investilearn"
	"github.com/etnz/investilearn/date"
)

// statementKeys lists the fundamentals-timeseries line items fetched per
// statement kind, in report order. Yahoo names them in camel case; the
// display name is the camel-case split ("TotalRevenue" -> "Total Revenue").
var statementKeys = map[investilearn.StatementKind][]string{
	investilearn.IncomeStatement: {
		"TotalRevenue",
		"CostOfRevenue",
		"GrossProfit",
		"OperatingExpense",
		"SellingGeneralAndAdministration",
		"ResearchAndDevelopment",
		"OperatingIncome",
		"EBIT",
		"InterestExpense",
		"TaxProvision",
		"OtherIncomeExpense",
		"NetIncome",
	},
	investilearn.CashFlowStatement: {
		"NetIncomeFromContinuingOperations",
		"OperatingCashFlow",
		"DepreciationAndAmortization",
		"StockBasedCompensation",
		"ChangeInWorkingCapital",
		"CapitalExpenditure",
		"FreeCashFlow",
		"InvestingCashFlow",
		"NetInvestmentPurchaseAndSale",
		"OtherInvestingActivities",
		"FinancingCashFlow",
		"NetIssuanceOfStock",
		"NetIssuanceOfDebt",
		"CashDividendsPaid",
		"OtherFinancingActivities",
	},
	investilearn.BalanceSheet: {
		"TotalAssets",
		"CurrentAssets",
		"CashAndCashEquivalents",
		"AccountsReceivable",
		"Inventory",
		"TotalNonCurrentAssets",
		"NetPPE",
		"Goodwill",
		"OtherIntangibleAssets",
		"LongTermInvestments",
		"CurrentLiabilities",
		"LongTermDebt",
		"TotalDebt",
		"TotalNonCurrentLiabilitiesNetMinorityInterest",
		"TotalLiabilitiesNetMinorityInterest",
		"StockholdersEquity",
		"RetainedEarnings",
		"CommonStock",
	},
}

// displayName splits a camel-case timeseries key into the line item name
// used throughout the dashboard. Acronym runs stay together ("NetPPE" ->
// "Net PPE", "EBIT" -> "EBIT").
func displayName(key string) string {
	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// tsValue is one reported value of a timeseries line item.
type tsValue struct {
	AsOfDate      string `json:"asOfDate"`
	ReportedValue struct {
		Raw float64 `json:"raw"`
	} `json:"reportedValue"`
}

// Statement fetches one annual financial statement from the
// fundamentals-timeseries endpoint, covering the last five fiscal years.
// A symbol Yahoo knows but has no fundamentals for yields an empty
// statement, not an error.
func (c *Client) Statement(ctx context.Context, symbol string, kind investilearn.StatementKind) (*investilearn.Statement, error) {
	if err := investilearn.ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	keys, ok := statementKeys[kind]
	if !ok {
		return nil, fmt.Errorf("unknown statement kind %q", kind)
	}

	types := make([]string, len(keys))
	for i, k := range keys {
		types[i] = "annual" + k
	}
	now := time.Now()
	q := url.Values{
		"type":    {strings.Join(types, ",")},
		"period1": {strconv.FormatInt(now.AddDate(-5, 0, 0).Unix(), 10)},
		"period2": {strconv.FormatInt(now.Unix(), 10)},
	}
	addr := c.addr("/ws/fundamentals-timeseries/v1/finance/timeseries/"+url.PathEscape(symbol), q)

	var payload struct {
		Timeseries struct {
			Result []json.RawMessage `json:"result"`
		} `json:"timeseries"`
	}
	if err := c.jwget(ctx, addr, &payload); err != nil {
		return nil, fmt.Errorf("fetching %s statement for %q: %w", kind, symbol, err)
	}

	// Each result carries one line item under a key named after its type.
	byPeriod := make(map[date.Date]map[string]float64)
	for _, raw := range payload.Timeseries.Result {
		var meta struct {
			Meta struct {
				Type []string `json:"type"`
			} `json:"meta"`
		}
		if err := json.Unmarshal(raw, &meta); err != nil || len(meta.Meta.Type) == 0 {
			continue
		}
		typ := meta.Meta.Type[0]

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		var values []*tsValue
		if err := json.Unmarshal(fields[typ], &values); err != nil {
			continue
		}
		name := displayName(strings.TrimPrefix(typ, "annual"))
		for _, v := range values {
			if v == nil {
				continue
			}
			day, err := date.Parse(v.AsOfDate)
			if err != nil {
				continue
			}
			if byPeriod[day] == nil {
				byPeriod[day] = make(map[string]float64)
			}
			byPeriod[day][name] = v.ReportedValue.Raw
		}
	}

	// Columns most recent first, line items in report order.
	var periods date.History[string]
	for day := range byPeriod {
		periods.Append(day, "")
	}
	stmt := investilearn.NewStatement(kind)
	columns := make([]*investilearn.Column, 0, periods.Len())
	for day := range periods.Values() {
		col := investilearn.NewColumn(day)
		for _, k := range keys {
			if v, ok := byPeriod[day][displayName(k)]; ok {
				col.Set(displayName(k), v)
			}
		}
		columns = append(columns, col)
	}
	for i := len(columns) - 1; i >= 0; i-- {
		stmt.Append(columns[i])
	}
	return stmt, nil
}
