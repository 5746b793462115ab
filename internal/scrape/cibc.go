package scrape

import (
	"github.com/bmartin/banktracker/internal/types"
)

// NewCIBC covers the CIBC mediaroom. The listing exposes no preview text,
// so the title doubles as the summary, and single-digit dates arrive with
// an extra internal space ("December  5, 2024") that normalization absorbs.
func NewCIBC(opts Options) *SiteAdapter {
	return NewSiteAdapter("cibc", types.BankCIBC, []Page{
		{
			Source:     "CIBC Press Release",
			URL:        "https://cibc.mediaroom.com/",
			BaseOrigin: "https://cibc.mediaroom.com",
			Strategies: []Strategy{
				{Name: "widget items", Extract: widgetItems(true)},
			},
		},
	}, opts)
}
