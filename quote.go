package investilearn

import "errors"

// ErrUnknownSymbol is returned when the data provider has no data for a
// ticker symbol.
var ErrUnknownSymbol = errors.New("unknown ticker symbol")

// Quote is a company snapshot as reported by the market-data provider.
//
// The fundamental fields feed the ratio calculator. They are Ratios so a
// field the provider did not report stays distinct from a reported zero.
type Quote struct {
	Symbol   string
	Name     string
	Sector   string
	Industry string
	Currency string

	Price         Ratio
	PreviousClose Ratio
	MarketCap     Ratio // raw amount in Currency units

	// Fundamentals, as fractional values (0.15 means 15%).
	ReturnOnEquity Ratio
	ReturnOnAssets Ratio
	ProfitMargin   Ratio
	GrossMargin    Ratio
	CurrentRatio   Ratio
	QuickRatio     Ratio
	DebtToEquity   Ratio
	TrailingPE     Ratio
	PriceToBook    Ratio
	PEGRatio       Ratio
	PriceToSales   Ratio
}

// DisplayName returns the long company name, falling back to the symbol.
func (q *Quote) DisplayName() string {
	if q.Name != "" {
		return q.Name
	}
	return q.Symbol
}

// DayChange returns the percent change between the current price and the
// previous close. When either side is missing, or the previous close is
// zero, the change is 0 rather than an error: the dashboard header shows
// a flat day in that case.
func (q *Quote) DayChange() Percent {
	if !q.Price.Valid() || !q.PreviousClose.Valid() || q.PreviousClose.Value().IsZero() {
		return 0
	}
	change := q.Price.Value().Sub(q.PreviousClose.Value()).
		Div(q.PreviousClose.Value()).
		Shift(2)
	return Percent(change.InexactFloat64())
}

// PriceMoney returns the current price as Money in the quote's currency.
func (q *Quote) PriceMoney() Money {
	return M(q.Price.Value(), q.Currency)
}

// MarketCapMoney returns the market cap as Money in the quote's currency.
func (q *Quote) MarketCapMoney() Money {
	return M(q.MarketCap.Value(), q.Currency)
}

func (q *Quote) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", q.Symbol)
	w.Optional("name", q.Name)
	w.Optional("sector", q.Sector)
	w.Optional("industry", q.Industry)
	w.Optional("currency", q.Currency)
	w.Append("price", q.Price)
	w.Append("previousClose", q.PreviousClose)
	w.Append("dayChange", float64(q.DayChange()))
	w.Append("marketCap", q.MarketCap)
	w.Append("ratios", ComputeRatios(q, nil, nil))
	return w.MarshalJSON()
}
