package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/etnz/investilearn"
	"github.com/etnz/investilearn/date"
)

// fakeSource counts fetches and serves canned data.
type fakeSource struct {
	quotes     int
	statements int
	histories  int
	news       int
	err        error
}

func (f *fakeSource) Quote(ctx context.Context, symbol string) (*investilearn.Quote, error) {
	f.quotes++
	if f.err != nil {
		return nil, f.err
	}
	return &investilearn.Quote{Symbol: symbol, Name: "Test Corp"}, nil
}

func (f *fakeSource) Statement(ctx context.Context, symbol string, kind investilearn.StatementKind) (*investilearn.Statement, error) {
	f.statements++
	if f.err != nil {
		return nil, f.err
	}
	s := investilearn.NewStatement(kind)
	c := investilearn.NewColumn(date.New(2023, 12, 31))
	c.Set("Total Revenue", 1000000)
	s.Append(c)
	return s, nil
}

func (f *fakeSource) History(ctx context.Context, symbol, period string) (*date.History[float64], error) {
	f.histories++
	if f.err != nil {
		return nil, f.err
	}
	var h date.History[float64]
	h.Append(date.New(2023, 12, 29), 42)
	return &h, nil
}

func (f *fakeSource) News(ctx context.Context, symbol string, max int) ([]investilearn.NewsItem, error) {
	f.news++
	if f.err != nil {
		return nil, f.err
	}
	items := make([]investilearn.NewsItem, max)
	for i := range items {
		items[i] = investilearn.NewsItem{Title: "headline", Publisher: "Test Wire"}
	}
	return items, nil
}

func TestStoreCachesQuote(t *testing.T) {
	src := &fakeSource{}
	s := NewStore(src)
	ctx := context.Background()

	q, err := s.Quote(ctx, "AAPL")
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if q.Symbol != "AAPL" {
		t.Errorf("Quote().Symbol = %q, want AAPL", q.Symbol)
	}
	if _, err := s.Quote(ctx, "AAPL"); err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if src.quotes != 1 {
		t.Errorf("source fetched %d times, want 1", src.quotes)
	}

	// A different symbol is its own cache entry.
	if _, err := s.Quote(ctx, "MSFT"); err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if src.quotes != 2 {
		t.Errorf("source fetched %d times, want 2", src.quotes)
	}
}

func TestStoreExpiry(t *testing.T) {
	src := &fakeSource{}
	s := NewStore(src).WithTTL(time.Hour)
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := s.Quote(ctx, "AAPL"); err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	now = now.Add(59 * time.Minute)
	if _, err := s.Quote(ctx, "AAPL"); err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if src.quotes != 1 {
		t.Fatalf("source fetched %d times before expiry, want 1", src.quotes)
	}

	now = now.Add(2 * time.Minute)
	if _, err := s.Quote(ctx, "AAPL"); err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if src.quotes != 2 {
		t.Errorf("source fetched %d times after expiry, want 2", src.quotes)
	}
}

func TestStoreErrorNotCached(t *testing.T) {
	src := &fakeSource{err: errors.New("network down")}
	s := NewStore(src)
	ctx := context.Background()

	if _, err := s.Quote(ctx, "AAPL"); err == nil {
		t.Fatal("Quote() error = nil, want one")
	}
	src.err = nil
	if _, err := s.Quote(ctx, "AAPL"); err != nil {
		t.Fatalf("Quote() after recovery error: %v", err)
	}
	if src.quotes != 2 {
		t.Errorf("source fetched %d times, want 2 (failures must not be cached)", src.quotes)
	}
}

func TestStoreStatementKinds(t *testing.T) {
	src := &fakeSource{}
	s := NewStore(src)
	ctx := context.Background()

	for _, kind := range []investilearn.StatementKind{
		investilearn.IncomeStatement,
		investilearn.BalanceSheet,
		investilearn.IncomeStatement, // cached
	} {
		if _, err := s.Statement(ctx, "AAPL", kind); err != nil {
			t.Fatalf("Statement(%s) error: %v", kind, err)
		}
	}
	if src.statements != 2 {
		t.Errorf("source fetched %d statements, want 2", src.statements)
	}
}

func TestStoreNewsTruncates(t *testing.T) {
	src := &fakeSource{}
	s := NewStore(src)
	ctx := context.Background()

	items, err := s.News(ctx, "AAPL", 5)
	if err != nil {
		t.Fatalf("News() error: %v", err)
	}
	if len(items) != 5 {
		t.Errorf("News(max=5) returned %d items", len(items))
	}

	// A larger max is served from the same over-fetched cache entry.
	items, err = s.News(ctx, "AAPL", 10)
	if err != nil {
		t.Fatalf("News() error: %v", err)
	}
	if len(items) != 10 {
		t.Errorf("News(max=10) returned %d items", len(items))
	}
	if src.news != 1 {
		t.Errorf("source fetched %d times, want 1", src.news)
	}
}

func TestStoreRatios(t *testing.T) {
	src := &fakeSource{}
	s := NewStore(src)

	ratios, err := s.Ratios(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Ratios() error: %v", err)
	}
	if len(ratios) == 0 {
		t.Fatal("Ratios() returned no entries")
	}
	// Quote carries no fundamentals, so every ratio is missing.
	if r := ratios[investilearn.ROE]; r.Valid() {
		t.Errorf("ROE = %v, want missing", r)
	}
}
