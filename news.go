package investilearn

import (
	"strings"
	"time"
)

// NewsItem is one headline about a company.
type NewsItem struct {
	Title     string
	Summary   string
	Publisher string
	Link      string
	Published time.Time
}

// PublishedString renders the publication date the way the dashboard
// shows it ("January 2, 2006"), or "Recent" when the provider gave none.
func (n NewsItem) PublishedString() string {
	if n.Published.IsZero() {
		return "Recent"
	}
	return n.Published.Format("January 2, 2006")
}

func (n NewsItem) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("title", n.Title)
	w.Optional("summary", n.Summary)
	w.Optional("publisher", n.Publisher)
	w.Optional("link", n.Link)
	if !n.Published.IsZero() {
		w.Append("published", n.Published.Format(time.RFC3339))
	}
	return w.MarshalJSON()
}

// News filters, as offered by the dashboard's news column.
const (
	AllNews         = "All News"
	EarningsReports = "Earnings Reports"
	PressReleases   = "Press Releases"
	MarketAnalysis  = "Market Analysis"
)

// newsKeywords classifies headlines by keyword lookup in title and summary.
var newsKeywords = map[string][]string{
	EarningsReports: {"earnings", "results", "quarter", "q1", "q2", "q3", "q4"},
	PressReleases:   {"press release", "announces", "announcement"},
	MarketAnalysis:  {"analysis", "market", "outlook", "forecast", "trend"},
}

// FilterNews keeps the items matching the given filter. The zero filter
// and AllNews keep everything; an unknown filter matches nothing.
func FilterNews(items []NewsItem, filter string) []NewsItem {
	if filter == "" || filter == AllNews {
		return items
	}
	keywords := newsKeywords[filter]
	var kept []NewsItem
	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.Summary)
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				kept = append(kept, item)
				break
			}
		}
	}
	return kept
}
