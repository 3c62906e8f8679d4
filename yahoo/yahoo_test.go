package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/investilearn"
	"github.com/etnz/investilearn/date"
)

const quoteSummaryAAPL = `{
  "quoteSummary": {
    "result": [{
      "price": {
        "symbol": "AAPL",
        "longName": "Apple Inc.",
        "currency": "USD",
        "regularMarketPrice": {"raw": 150.25, "fmt": "150.25"},
        "regularMarketPreviousClose": {"raw": 148.50, "fmt": "148.50"},
        "marketCap": {"raw": 2500000000000, "fmt": "2.5T"}
      },
      "assetProfile": {"sector": "Technology", "industry": "Consumer Electronics"},
      "financialData": {
        "returnOnEquity": {"raw": 0.155, "fmt": "15.50%"},
        "profitMargins": {"raw": 0.25, "fmt": "25.00%"},
        "currentRatio": {"raw": 1.5, "fmt": "1.50"},
        "debtToEquity": {"raw": 1.52, "fmt": "1.52"}
      },
      "summaryDetail": {"trailingPE": {"raw": 25.5, "fmt": "25.50"}},
      "defaultKeyStatistics": {"priceToBook": {"raw": 35.2, "fmt": "35.20"}}
    }],
    "error": null
  }
}`

const quoteSummaryUnknown = `{
  "quoteSummary": {
    "result": null,
    "error": {"code": "Not Found", "description": "Quote not found for ticker symbol: NOPE"}
  }
}`

const timeseriesAAPL = `{
  "timeseries": {
    "result": [
      {
        "meta": {"symbol": ["AAPL"], "type": ["annualTotalRevenue"]},
        "annualTotalRevenue": [
          {"asOfDate": "2022-09-30", "reportedValue": {"raw": 394328000000}},
          {"asOfDate": "2023-09-30", "reportedValue": {"raw": 383285000000}}
        ]
      },
      {
        "meta": {"symbol": ["AAPL"], "type": ["annualNetIncome"]},
        "annualNetIncome": [
          null,
          {"asOfDate": "2023-09-30", "reportedValue": {"raw": 96995000000}}
        ]
      },
      {
        "meta": {"symbol": ["AAPL"], "type": ["annualNetPPE"]},
        "annualNetPPE": []
      }
    ],
    "error": null
  }
}`

const chartAAPL = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "AAPL", "currency": "USD"},
      "timestamp": [1703808000, 1703894400, 1704153600],
      "indicators": {
        "adjclose": [{"adjclose": [192.53, null, 193.58]}],
        "quote": [{"close": [192.6, 193.1, 193.6]}]
      }
    }],
    "error": null
  }
}`

const chartUnknown = `{
  "chart": {
    "result": null,
    "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
  }
}`

const searchAAPL = `{
  "news": [
    {"title": "Apple Announces Q4 Earnings", "publisher": "Reuters", "link": "https://example.com/1", "providerPublishTime": 1703808000},
    {"title": "New iPhone Released", "publisher": "Bloomberg", "link": "https://example.com/2", "providerPublishTime": 1703721600},
    {"title": "", "publisher": "Empty Wire", "link": "https://example.com/3"}
  ]
}`

// testServer answers the endpoints with canned payloads.
func testServer(t *testing.T) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v10/finance/quoteSummary/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/NOPE") {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(quoteSummaryUnknown))
			return
		}
		w.Write([]byte(quoteSummaryAAPL))
	})
	mux.HandleFunc("/ws/fundamentals-timeseries/v1/finance/timeseries/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(timeseriesAAPL))
	})
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/NOPE") {
			w.Write([]byte(chartUnknown))
			return
		}
		w.Write([]byte(chartAAPL))
	})
	mux.HandleFunc("/v1/finance/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchAAPL))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewWith(srv.URL, srv.Client())
}

func TestQuote(t *testing.T) {
	c := testServer(t)
	q, err := c.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}

	if q.Symbol != "AAPL" || q.Name != "Apple Inc." {
		t.Errorf("Quote() = %q %q, want AAPL Apple Inc.", q.Symbol, q.Name)
	}
	if q.Sector != "Technology" {
		t.Errorf("Quote().Sector = %q", q.Sector)
	}
	if !q.Price.Valid() || q.Price.Float64() != 150.25 {
		t.Errorf("Quote().Price = %v, want 150.25", q.Price)
	}
	if !q.ReturnOnEquity.Valid() || q.ReturnOnEquity.Float64() != 0.155 {
		t.Errorf("Quote().ReturnOnEquity = %v, want 0.155", q.ReturnOnEquity)
	}
	// Fields absent from the payload stay missing.
	if q.ReturnOnAssets.Valid() {
		t.Errorf("Quote().ReturnOnAssets = %v, want missing", q.ReturnOnAssets)
	}
	if q.PEGRatio.Valid() {
		t.Errorf("Quote().PEGRatio = %v, want missing", q.PEGRatio)
	}
}

func TestQuoteUnknownSymbol(t *testing.T) {
	c := testServer(t)
	_, err := c.Quote(context.Background(), "NOPE")
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("Quote(NOPE) error = %v, want ErrUnknownSymbol", err)
	}
}

func TestQuoteInvalidSymbol(t *testing.T) {
	c := testServer(t)
	if _, err := c.Quote(context.Background(), "not a ticker"); err == nil {
		t.Error("Quote(invalid) error = nil, want one")
	}
}

func TestStatement(t *testing.T) {
	c := testServer(t)
	s, err := c.Statement(context.Background(), "AAPL", investilearn.IncomeStatement)
	if err != nil {
		t.Fatalf("Statement() error: %v", err)
	}
	if s.Kind != investilearn.IncomeStatement {
		t.Errorf("Statement().Kind = %q", s.Kind)
	}
	if got := len(s.Columns()); got != 2 {
		t.Fatalf("Statement() has %d columns, want 2", got)
	}

	// Most recent fiscal year first.
	latest := s.Latest()
	if want := date.New(2023, 9, 30); latest.Period != want {
		t.Errorf("Latest().Period = %v, want %v", latest.Period, want)
	}
	if v, ok := latest.Get("Total Revenue"); !ok || v != 383285000000 {
		t.Errorf("Latest Total Revenue = %v %v, want 383285000000", v, ok)
	}
	if v, ok := latest.Get("Net Income"); !ok || v != 96995000000 {
		t.Errorf("Latest Net Income = %v %v, want 96995000000", v, ok)
	}

	// The older year only reported revenue.
	older := s.Columns()[1]
	if _, ok := older.Get("Net Income"); ok {
		t.Error("2022 column has Net Income, want it absent")
	}
}

func TestDisplayName(t *testing.T) {
	testCases := []struct{ key, want string }{
		{"TotalRevenue", "Total Revenue"},
		{"SellingGeneralAndAdministration", "Selling General And Administration"},
		{"EBIT", "EBIT"},
		{"NetPPE", "Net PPE"},
		{"TotalLiabilitiesNetMinorityInterest", "Total Liabilities Net Minority Interest"},
		{"CashAndCashEquivalents", "Cash And Cash Equivalents"},
	}
	for _, tc := range testCases {
		if got := displayName(tc.key); got != tc.want {
			t.Errorf("displayName(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestHistory(t *testing.T) {
	c := testServer(t)
	h, err := c.History(context.Background(), "AAPL", "1y")
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	// The nil bar is skipped.
	if h.Len() != 2 {
		t.Fatalf("History() has %d points, want 2", h.Len())
	}
	if _, v := h.Latest(); v != 193.58 {
		t.Errorf("History().Latest() = %v, want 193.58", v)
	}
}

func TestHistoryUnknownSymbol(t *testing.T) {
	c := testServer(t)
	_, err := c.History(context.Background(), "NOPE", "1y")
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("History(NOPE) error = %v, want ErrUnknownSymbol", err)
	}
}

func TestHistoryInvalidPeriod(t *testing.T) {
	c := testServer(t)
	if _, err := c.History(context.Background(), "AAPL", "42y"); err == nil {
		t.Error("History(42y) error = nil, want one")
	}
}

func TestNews(t *testing.T) {
	c := testServer(t)
	items, err := c.News(context.Background(), "AAPL", 10)
	if err != nil {
		t.Fatalf("News() error: %v", err)
	}
	// The untitled entry is dropped.
	if len(items) != 2 {
		t.Fatalf("News() returned %d items, want 2", len(items))
	}
	if items[0].Title != "Apple Announces Q4 Earnings" || items[0].Publisher != "Reuters" {
		t.Errorf("News()[0] = %+v", items[0])
	}
	if items[0].Published.IsZero() {
		t.Error("News()[0].Published is zero, want a timestamp")
	}

	items, err = c.News(context.Background(), "AAPL", 1)
	if err != nil {
		t.Fatalf("News() error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("News(max=1) returned %d items", len(items))
	}
}
