package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/etnz/investilearn"
	"github.com/etnz/investilearn/date"
)

// ValidPeriods are the chart ranges the endpoint accepts.
var ValidPeriods = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}

// DefaultPeriod is the history range shown when none is asked for.
const DefaultPeriod = "1y"

// ValidPeriod reports whether period names a known chart range.
func ValidPeriod(period string) bool {
	for _, p := range ValidPeriods {
		if p == period {
			return true
		}
	}
	return false
}

// History fetches the daily adjusted close series over a named period from
// the v8 chart endpoint. It falls back to the unadjusted close when the
// adjusted series is not served.
func (c *Client) History(ctx context.Context, symbol, period string) (*date.History[float64], error) {
	if err := investilearn.ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	if !ValidPeriod(period) {
		return nil, fmt.Errorf("invalid period %q (want one of %v)", period, ValidPeriods)
	}
	q := url.Values{"range": {period}, "interval": {"1d"}}
	addr := c.addr("/v8/finance/chart/"+url.PathEscape(symbol), q)

	var payload struct {
		Chart struct {
			Result []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Adjclose []struct {
						Adjclose []*float64 `json:"adjclose"`
					} `json:"adjclose"`
					Quote []struct {
						Close []*float64 `json:"close"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"result"`
			Error *struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		} `json:"chart"`
	}
	if err := c.jwget(ctx, addr, &payload); err != nil {
		return nil, fmt.Errorf("fetching history for %q: %w", symbol, err)
	}
	if e := payload.Chart.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, fmt.Errorf("fetching history for %q: %w", symbol, ErrUnknownSymbol)
		}
		return nil, fmt.Errorf("fetching history for %q: %s: %s", symbol, e.Code, e.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("fetching history for %q: %w", symbol, ErrUnknownSymbol)
	}

	result := payload.Chart.Result[0]
	closes := []*float64(nil)
	if len(result.Indicators.Adjclose) > 0 {
		closes = result.Indicators.Adjclose[0].Adjclose
	} else if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}

	var h date.History[float64]
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // market holiday or missing bar
		}
		h.Append(date.FromTime(time.Unix(ts, 0)), *closes[i])
	}
	return &h, nil
}
