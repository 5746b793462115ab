package scrape

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/bmartin/banktracker/internal/normalize"
	"github.com/bmartin/banktracker/internal/types"
)

// NewBMO covers the BMO newsroom, which uses the same press-release widget
// markup (.wd_item) as CIBC's mediaroom.
func NewBMO(opts Options) *SiteAdapter {
	return NewSiteAdapter("bmo", types.BankBMO, []Page{
		{
			Source:     "BMO Newsroom",
			URL:        "https://newsroom.bmo.com/",
			BaseOrigin: "https://newsroom.bmo.com",
			Strategies: []Strategy{
				{Name: "widget items", Extract: widgetItems(false)},
			},
		},
	}, opts)
}

// widgetItems extracts press-release widget entries. When titleAsSummary is
// set, the title doubles as the summary because the listing page exposes no
// preview text.
func widgetItems(titleAsSummary bool) func(*goquery.Document) []normalize.Candidate {
	return func(doc *goquery.Document) []normalize.Candidate {
		var items []normalize.Candidate
		doc.Find(".wd_item").Each(func(_ int, el *goquery.Selection) {
			title := text(el, ".wd_title a")
			summary := text(el, ".wd_summary")
			if titleAsSummary && summary == "" {
				summary = title
			}
			items = append(items, normalize.Candidate{
				Title:    title,
				Link:     attr(el, ".wd_title a", "href"),
				DateText: text(el, ".wd_date"),
				Summary:  summary,
			})
		})
		return items
	}
}
