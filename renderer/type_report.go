package renderer

import (
	"github.com/etnz/investilearn"
)

// Report is a company report ready for rendering: every figure is already
// formatted, so templates only lay the values out.
type Report struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Sector   string `json:"sector,omitempty"`
	Industry string `json:"industry,omitempty"`

	Price     string `json:"price"`
	DayChange string `json:"dayChange"`
	MarketCap string `json:"marketCap"`

	Categories []RatioCategory `json:"categories"`
	News       []Headline      `json:"news,omitempty"`
}

// RatioCategory is one ratio table of the report.
type RatioCategory struct {
	Name string     `json:"name"`
	Info string     `json:"info"`
	Rows []RatioRow `json:"rows"`
}

// RatioRow is one formatted ratio line.
type RatioRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Headline is one formatted news line.
type Headline struct {
	Title     string `json:"title"`
	Publisher string `json:"publisher,omitempty"`
	When      string `json:"when"`
	Link      string `json:"link,omitempty"`
}

// NewReport assembles the report data from a snapshot, its ratios and
// recent headlines. Missing figures render as N/A.
func NewReport(q *investilearn.Quote, ratios investilearn.Ratios, news []investilearn.NewsItem) *Report {
	r := &Report{
		Symbol:    q.Symbol,
		Name:      q.DisplayName(),
		Sector:    q.Sector,
		Industry:  q.Industry,
		Price:     "N/A",
		DayChange: q.DayChange().SignedString(),
		MarketCap: "N/A",
	}
	if q.Price.Valid() {
		r.Price = q.PriceMoney().String()
	}
	if q.MarketCap.Valid() {
		r.MarketCap = q.MarketCapMoney().Compact()
	}

	for _, c := range investilearn.Categories() {
		cat := RatioCategory{Name: c.Name, Info: c.Info}
		for _, m := range c.Metrics {
			cat.Rows = append(cat.Rows, RatioRow{
				Label: m.Display,
				Value: ratios.Get(m.Key).Format(m.Key),
			})
		}
		r.Categories = append(r.Categories, cat)
	}

	for _, n := range news {
		r.News = append(r.News, Headline{
			Title:     n.Title,
			Publisher: n.Publisher,
			When:      n.PublishedString(),
			Link:      n.Link,
		})
	}
	return r
}
