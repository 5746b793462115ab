// Package scrape provides the source adapters that extract candidate articles
// from bank newsroom pages. Remote markup changes without notice, so every
// page carries an ordered list of extraction strategies and the first one
// that yields any matches wins.
package scrape

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bmartin/banktracker/internal/fetch"
	"github.com/bmartin/banktracker/internal/normalize"
	"github.com/bmartin/banktracker/internal/types"
)

// Adapter is one source of candidate articles. A bank may be covered by
// several adapters (newsroom feed, technology microsite), and one adapter
// (the filings feed) covers every bank.
type Adapter interface {
	// Name identifies the adapter in logs and progress events.
	Name() string
	// Fetch extracts candidate articles. Total failure returns an empty
	// slice, never an error the aggregator has to recover from.
	Fetch(ctx context.Context) ([]types.Article, error)
}

// Strategy is one way of extracting candidates from a parsed page. Strategies
// are pure selector functions tried in order until one yields matches.
type Strategy struct {
	Name    string
	Extract func(doc *goquery.Document) []normalize.Candidate
}

// Page is a single remote page an adapter scrapes.
type Page struct {
	// Source labels articles extracted from this page.
	Source string
	// URL is the page address.
	URL string
	// BaseOrigin resolves scheme-less links found on the page.
	BaseOrigin string
	// Strategies are tried in order; the first non-empty yield is used.
	Strategies []Strategy
}

// Options configures adapter behavior.
type Options struct {
	// UseBrowser enables the headless-browser fallback for pages that
	// render their article list client-side.
	UseBrowser bool
	// Verbose enables per-strategy diagnostic logging.
	Verbose bool
}

// SiteAdapter scrapes one or more pages for a single institution.
type SiteAdapter struct {
	name  string
	bank  types.BankCode
	pages []Page
	opts  Options
}

// NewSiteAdapter builds an adapter over the given pages.
func NewSiteAdapter(name string, bank types.BankCode, pages []Page, opts Options) *SiteAdapter {
	return &SiteAdapter{name: name, bank: bank, pages: pages, opts: opts}
}

// Name identifies the adapter.
func (a *SiteAdapter) Name() string { return a.name }

// Bank is the institution the adapter reports for.
func (a *SiteAdapter) Bank() types.BankCode { return a.bank }

// Fetch scrapes every page and unions the usable candidates. A page that
// cannot be fetched or matched contributes nothing; the failure is logged
// and the remaining pages still run.
func (a *SiteAdapter) Fetch(ctx context.Context) ([]types.Article, error) {
	var articles []types.Article

	for _, page := range a.pages {
		doc, err := a.fetchDocument(ctx, page.URL)
		if err != nil {
			log.Printf("scrape[%s]: failed to load %s: %v", a.name, page.URL, err)
			continue
		}

		candidates := runStrategies(doc, page.Strategies, a.name, a.opts.Verbose)
		for _, c := range candidates {
			if !normalize.Usable(c) {
				continue
			}
			articles = append(articles, normalize.ToArticle(c, page.BaseOrigin, page.Source, a.bank))
		}
	}

	return articles, nil
}

// fetchDocument loads a page over HTTP, falling back to headless-browser
// rendering when the fetched document carries too little content.
func (a *SiteAdapter) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	result, err := fetch.URL(ctx, url, nil)
	if err != nil {
		if result == nil {
			return nil, err
		}
		// Non-200 still carries a body; parse it, but surface the status so
		// a selector that matches nothing isn't the only clue.
		log.Printf("scrape[%s]: %s responded with an error (%v), parsing body anyway", a.name, url, err)
	}

	html := result.HTML
	if a.opts.UseBrowser {
		text, textErr := fetch.ExtractText(html)
		if textErr == nil && fetch.ShouldUseBrowser(text) {
			rendered, browserErr := fetch.BrowserSimple(ctx, url, a.opts.Verbose)
			if browserErr != nil {
				log.Printf("scrape[%s]: browser rendering failed for %s: %v, using HTTP content", a.name, url, browserErr)
			} else {
				html = rendered
			}
		}
	}

	return fetch.Document(html)
}

// runStrategies tries each strategy in order and returns the first
// non-empty yield.
func runStrategies(doc *goquery.Document, strategies []Strategy, adapterName string, verbose bool) []normalize.Candidate {
	for _, s := range strategies {
		candidates := s.Extract(doc)
		if len(candidates) > 0 {
			if verbose {
				log.Printf("scrape[%s]: strategy %q matched %d items", adapterName, s.Name, len(candidates))
			}
			return candidates
		}
		if verbose {
			log.Printf("scrape[%s]: strategy %q matched nothing, trying next", adapterName, s.Name)
		}
	}
	return nil
}

// text returns the trimmed text of the first node matching any of the
// comma-separated selectors.
func text(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

// attr returns the named attribute of the first node matching the selector.
func attr(sel *goquery.Selection, selector, name string) string {
	v, _ := sel.Find(selector).First().Attr(name)
	return strings.TrimSpace(v)
}

// All returns every configured source adapter, one per institution page set.
func All(opts Options) []Adapter {
	return []Adapter{
		NewRBC(opts),
		NewTD(opts),
		NewBMO(opts),
		NewScotia(opts),
		NewCIBC(opts),
	}
}

// ByName resolves a single adapter by its name, for targeted debugging runs.
func ByName(name string, opts Options) (Adapter, error) {
	for _, a := range All(opts) {
		if strings.EqualFold(a.Name(), name) {
			return a, nil
		}
	}
	return nil, fmt.Errorf("unknown source %q", name)
}
