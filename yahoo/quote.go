package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/etnz/investilearn"
)

// quoteModules are the quoteSummary modules the snapshot needs.
const quoteModules = "price,summaryDetail,financialData,defaultKeyStatistics,assetProfile"

// Quote fetches the company snapshot from the v10 quoteSummary endpoint.
func (c *Client) Quote(ctx context.Context, symbol string) (*investilearn.Quote, error) {
	if err := investilearn.ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	q := url.Values{"modules": {quoteModules}}
	addr := c.addr("/v10/finance/quoteSummary/"+url.PathEscape(symbol), q)

	var jobj any
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return nil, fmt.Errorf("fetching quote for %q: %w", symbol, err)
	}

	result, ok := jget(jobj, "$.quoteSummary.result[0]")
	if !ok {
		return nil, fmt.Errorf("fetching quote for %q: %w", symbol, ErrUnknownSymbol)
	}

	// Numeric fields arrive as {raw, fmt} objects and may be absent; an
	// absent field stays a missing Ratio.
	ratio := func(path string) investilearn.Ratio {
		if v, ok := jraw(result, path); ok {
			return investilearn.R(v)
		}
		return investilearn.Ratio{}
	}

	quote := &investilearn.Quote{
		Symbol:   jstr(result, "$.price.symbol"),
		Name:     jstr(result, "$.price.longName"),
		Sector:   jstr(result, "$.assetProfile.sector"),
		Industry: jstr(result, "$.assetProfile.industry"),
		Currency: jstr(result, "$.price.currency"),

		Price:         ratio("$.price.regularMarketPrice"),
		PreviousClose: ratio("$.price.regularMarketPreviousClose"),
		MarketCap:     ratio("$.price.marketCap"),

		ReturnOnEquity: ratio("$.financialData.returnOnEquity"),
		ReturnOnAssets: ratio("$.financialData.returnOnAssets"),
		ProfitMargin:   ratio("$.financialData.profitMargins"),
		GrossMargin:    ratio("$.financialData.grossMargins"),
		CurrentRatio:   ratio("$.financialData.currentRatio"),
		QuickRatio:     ratio("$.financialData.quickRatio"),
		DebtToEquity:   ratio("$.financialData.debtToEquity"),
		TrailingPE:     ratio("$.summaryDetail.trailingPE"),
		PriceToBook:    ratio("$.defaultKeyStatistics.priceToBook"),
		PEGRatio:       ratio("$.defaultKeyStatistics.pegRatio"),
		PriceToSales:   ratio("$.summaryDetail.priceToSalesTrailing12Months"),
	}
	if quote.Name == "" {
		quote.Name = jstr(result, "$.price.shortName")
	}
	if quote.Symbol == "" {
		return nil, fmt.Errorf("fetching quote for %q: %w", symbol, ErrUnknownSymbol)
	}
	return quote, nil
}
