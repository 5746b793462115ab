package scrape

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/bmartin/banktracker/internal/normalize"
	"github.com/bmartin/banktracker/internal/types"
)

// NewTD covers TD's innovation microsite and the main newsroom. The
// newsroom in particular has shipped several markup revisions, hence the
// longer strategy list.
func NewTD(opts Options) *SiteAdapter {
	return NewSiteAdapter("td", types.BankTD, []Page{
		{
			Source:     "TD Innovation",
			URL:        "https://www.td.com/ca/en/about-td/innovation",
			BaseOrigin: "https://www.td.com",
			Strategies: []Strategy{
				{Name: "article cards", Extract: tdItems(".article-card")},
				{Name: "news items", Extract: tdItems(".news-item")},
				{Name: "content cards", Extract: tdItems(".content-card")},
			},
		},
		{
			Source:     "TD Newsroom",
			URL:        "https://newsroom.td.com/news",
			BaseOrigin: "https://newsroom.td.com",
			Strategies: []Strategy{
				{Name: "news items", Extract: tdItems(".news-item")},
				{Name: "article items", Extract: tdItems(".article-item")},
				{Name: "press releases", Extract: tdItems(".press-release")},
			},
		},
	}, opts)
}

func tdItems(selector string) func(*goquery.Document) []normalize.Candidate {
	return func(doc *goquery.Document) []normalize.Candidate {
		var items []normalize.Candidate
		doc.Find(selector).Each(func(_ int, el *goquery.Selection) {
			items = append(items, normalize.Candidate{
				Title:    text(el, ".news-title, .title, h3"),
				Link:     attr(el, "a", "href"),
				DateText: text(el, ".news-date, .date, .timestamp"),
				Summary:  text(el, ".news-description, .description, p"),
			})
		})
		return items
	}
}
