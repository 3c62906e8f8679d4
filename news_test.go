package investilearn

import (
	"testing"
	"time"
)

func TestFilterNews(t *testing.T) {
	items := []NewsItem{
		{Title: "Apple Announces Q4 Earnings Beat"},
		{Title: "New flagship store", Summary: "Press release from the company"},
		{Title: "Analyst outlook for the sector"},
		{Title: "CEO interview"},
	}

	cases := []struct {
		filter string
		want   int
	}{
		{AllNews, 4},
		{"", 4},
		{EarningsReports, 1},
		{PressReleases, 2}, // "Announces" and "Press release"
		{MarketAnalysis, 1},
		{"Rumors", 0},
	}
	for _, c := range cases {
		if got := len(FilterNews(items, c.filter)); got != c.want {
			t.Errorf("FilterNews(%q) kept %d items, want %d", c.filter, got, c.want)
		}
	}
}

func TestFilterNewsMatchesSummary(t *testing.T) {
	items := []NewsItem{{Title: "Weekly digest", Summary: "Quarterly results preview"}}
	if got := len(FilterNews(items, EarningsReports)); got != 1 {
		t.Errorf("summary keyword match kept %d items, want 1", got)
	}
}

func TestPublishedString(t *testing.T) {
	n := NewsItem{Published: time.Date(2023, 12, 29, 12, 0, 0, 0, time.UTC)}
	if got := n.PublishedString(); got != "December 29, 2023" {
		t.Errorf("PublishedString = %q", got)
	}
	if got := (NewsItem{}).PublishedString(); got != "Recent" {
		t.Errorf("zero PublishedString = %q, want Recent", got)
	}
}
