package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/etnz/investilearn"
)

// DefaultMaxNews is how many headlines News returns when max is not positive.
const DefaultMaxNews = 10

// News fetches recent headlines for a symbol from the search endpoint.
// A symbol with no coverage yields an empty list, not an error.
func (c *Client) News(ctx context.Context, symbol string, max int) ([]investilearn.NewsItem, error) {
	if err := investilearn.ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	if max <= 0 {
		max = DefaultMaxNews
	}
	q := url.Values{
		"q":           {symbol},
		"newsCount":   {strconv.Itoa(max)},
		"quotesCount": {"0"},
	}
	addr := c.addr("/v1/finance/search", q)

	var payload struct {
		News []struct {
			Title               string `json:"title"`
			Publisher           string `json:"publisher"`
			Link                string `json:"link"`
			Summary             string `json:"summary"`
			ProviderPublishTime int64  `json:"providerPublishTime"`
		} `json:"news"`
	}
	if err := c.jwget(ctx, addr, &payload); err != nil {
		return nil, fmt.Errorf("fetching news for %q: %w", symbol, err)
	}

	items := make([]investilearn.NewsItem, 0, len(payload.News))
	for _, n := range payload.News {
		if n.Title == "" {
			continue
		}
		item := investilearn.NewsItem{
			Title:     n.Title,
			Summary:   n.Summary,
			Publisher: n.Publisher,
			Link:      n.Link,
		}
		if n.ProviderPublishTime > 0 {
			item.Published = time.Unix(n.ProviderPublishTime, 0).UTC()
		}
		items = append(items, item)
		if len(items) == max {
			break
		}
	}
	return items, nil
}
