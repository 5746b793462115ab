package scrape

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/bmartin/banktracker/internal/normalize"
	"github.com/bmartin/banktracker/internal/types"
)

// NewScotia covers Scotiabank's Global Banking and Markets insights page.
func NewScotia(opts Options) *SiteAdapter {
	return NewSiteAdapter("scotia", types.BankScotia, []Page{
		{
			Source:     "Scotia Market Insights",
			URL:        "https://www.gbm.scotiabank.com/en/market-insights.html",
			BaseOrigin: "https://www.gbm.scotiabank.com",
			Strategies: []Strategy{
				{Name: "insight cards", Extract: scotiaCards},
			},
		},
	}, opts)
}

func scotiaCards(doc *goquery.Document) []normalize.Candidate {
	var items []normalize.Candidate
	doc.Find("article.bns--card").Each(func(_ int, el *goquery.Selection) {
		items = append(items, normalize.Candidate{
			Title:    text(el, ".card-text a"),
			Link:     attr(el, ".card-text a", "href"),
			DateText: text(el, ".c--date"),
			Summary:  text(el, ".c--description"),
		})
	})
	return items
}
