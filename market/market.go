// Package market is the in-process market data store.
//
// It fronts a data source (the yahoo client in production) and keeps
// fetched quotes, statements, histories and news per symbol for a fixed
// time to live. Handlers of the dashboard server share one Store, so the
// store is safe for concurrent use and coalesces identical fetches.
package market

import (
	"context"
	"sync"
	"time"

	"github.com/etnz/investilearn"
	"github.com/etnz/investilearn/date"
	"golang.org/x/sync/singleflight"
)

// Source fetches market data for a symbol.
type Source interface {
	Quote(ctx context.Context, symbol string) (*investilearn.Quote, error)
	Statement(ctx context.Context, symbol string, kind investilearn.StatementKind) (*investilearn.Statement, error)
	History(ctx context.Context, symbol, period string) (*date.History[float64], error)
	News(ctx context.Context, symbol string, max int) ([]investilearn.NewsItem, error)
}

// DefaultTTL is how long a fetched value stays fresh.
const DefaultTTL = time.Hour

// Store caches Source results per symbol.
type Store struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]entry

	group singleflight.Group
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// NewStore returns a store over the given source with the default TTL.
func NewStore(src Source) *Store {
	return &Store{
		src:     src,
		ttl:     DefaultTTL,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// WithTTL sets the time to live for cached values.
func (s *Store) WithTTL(ttl time.Duration) *Store {
	s.ttl = ttl
	return s
}

// lookup returns a cached value that is still fresh.
func (s *Store) lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok || s.now().Sub(e.fetchedAt) >= s.ttl {
		return nil, false
	}
	return e.value, true
}

func (s *Store) store(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: v, fetchedAt: s.now()}
}

// fetch resolves a key through the cache, calling fn on a miss. Concurrent
// misses on the same key share a single call. Errors are not cached.
func fetch[T any](ctx context.Context, s *Store, key string, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := s.lookup(key); ok {
		return v.(T), nil
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		if v, ok := s.lookup(key); ok {
			return v, nil
		}
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		s.store(key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Quote returns the company snapshot for the symbol.
func (s *Store) Quote(ctx context.Context, symbol string) (*investilearn.Quote, error) {
	return fetch(ctx, s, "quote/"+symbol, func(ctx context.Context) (*investilearn.Quote, error) {
		return s.src.Quote(ctx, symbol)
	})
}

// Statement returns one financial statement for the symbol.
func (s *Store) Statement(ctx context.Context, symbol string, kind investilearn.StatementKind) (*investilearn.Statement, error) {
	return fetch(ctx, s, "stmt/"+string(kind)+"/"+symbol, func(ctx context.Context) (*investilearn.Statement, error) {
		return s.src.Statement(ctx, symbol, kind)
	})
}

// History returns the adjusted close price series for the symbol over a
// named period ("1mo", "1y", "max", ...).
func (s *Store) History(ctx context.Context, symbol, period string) (*date.History[float64], error) {
	return fetch(ctx, s, "history/"+period+"/"+symbol, func(ctx context.Context) (*date.History[float64], error) {
		return s.src.History(ctx, symbol, period)
	})
}

// News returns up to max recent headlines for the symbol.
func (s *Store) News(ctx context.Context, symbol string, max int) ([]investilearn.NewsItem, error) {
	key := "news/" + symbol
	items, err := fetch(ctx, s, key, func(ctx context.Context) ([]investilearn.NewsItem, error) {
		return s.src.News(ctx, symbol, maxNewsFetch)
	})
	if err != nil {
		return nil, err
	}
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	return items, nil
}

// maxNewsFetch is how many headlines to pull from the source. Callers ask
// for fewer; over-fetching once lets the keyword filters work on a single
// cached set.
const maxNewsFetch = 50

// Ratios computes all fundamental ratios for the symbol. The
// statement-derived ratios (interest coverage, debt ratio) need the income
// statement and balance sheet; those are fetched alongside the quote but a
// failure there degrades to quote-only ratios rather than failing the call.
func (s *Store) Ratios(ctx context.Context, symbol string) (investilearn.Ratios, error) {
	q, err := s.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	income, err := s.Statement(ctx, symbol, investilearn.IncomeStatement)
	if err != nil {
		income = nil
	}
	balance, err := s.Statement(ctx, symbol, investilearn.BalanceSheet)
	if err != nil {
		balance = nil
	}
	return investilearn.ComputeRatios(q, income, balance), nil
}
