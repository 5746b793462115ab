package edgar

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bmartin/banktracker/internal/fetch"
	"github.com/bmartin/banktracker/internal/normalize"
	"github.com/bmartin/banktracker/internal/types"
)

// relevantForms are the report form types worth tracking: quarterly and
// annual reports plus the foreign-private-issuer forms Canadian banks file.
var relevantForms = map[string]bool{
	"10-Q": true,
	"10-K": true,
	"6-K":  true,
	"40-F": true,
}

// filingWindow is the trailing period a filing must fall inside.
const filingWindow = 365 * 24 * time.Hour

// summaryMaxLen caps the derived filing summary length.
const summaryMaxLen = 500

// summaryLines is how many leading non-empty document lines feed the summary.
const summaryLines = 3

// Adapter is the regulatory-filings source: one adapter covering every
// tracked bank through its CIK.
type Adapter struct {
	client *Client
	now    func() time.Time
}

// NewAdapter creates the filings adapter over the given client.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client, now: time.Now}
}

// Name identifies the adapter in logs and progress events.
func (a *Adapter) Name() string { return "edgar" }

// Fetch retrieves, filters and converts recent filings for every tracked
// bank. A bank whose index cannot be fetched is skipped; a filing whose
// document cannot be fetched is skipped; neither fails the adapter.
func (a *Adapter) Fetch(ctx context.Context) ([]types.Article, error) {
	var articles []types.Article

	for _, bank := range types.Banks {
		cik, ok := CIK[bank.Code]
		if !ok {
			continue
		}

		filings, err := a.client.FetchFilings(ctx, cik)
		if err != nil {
			log.Printf("edgar: failed to fetch filings for %s (CIK %s): %v", bank.Code, cik, err)
			continue
		}

		relevant := a.filterFilings(filings)
		for _, filing := range relevant {
			article, err := a.toArticle(ctx, bank.Code, filing)
			if err != nil {
				log.Printf("edgar: skipping %s filing %s for %s: %v", filing.Form, filing.AccessionNumber, bank.Code, err)
				continue
			}
			articles = append(articles, article)
		}
	}

	return articles, nil
}

// filterFilings keeps filings of a relevant form type dated within the
// trailing window. Future-dated filings are invalid and excluded regardless
// of form type.
func (a *Adapter) filterFilings(filings []Filing) []Filing {
	now := a.now()
	cutoff := now.Add(-filingWindow)

	var relevant []Filing
	for _, f := range filings {
		filed, err := time.Parse("2006-01-02", f.FilingDate)
		if err != nil {
			continue
		}
		if filed.After(now) {
			continue
		}
		if filed.Before(cutoff) {
			continue
		}
		if !relevantForms[f.Form] {
			continue
		}
		relevant = append(relevant, f)
	}
	return relevant
}

// toArticle fetches the filing document and builds the canonical Article,
// deriving a bounded summary from the document's leading non-empty lines.
func (a *Adapter) toArticle(ctx context.Context, bank types.BankCode, filing Filing) (types.Article, error) {
	docText, err := a.client.FetchDocumentText(ctx, filing)
	if err != nil {
		return types.Article{}, err
	}

	return types.Article{
		Title:       fmt.Sprintf("%s %s Filing - %s", bank, filing.Form, filing.FilingDate),
		Link:        a.client.DocumentURL(filing),
		PublishDate: normalize.ParseDate(filing.FilingDate),
		Source:      "SEC EDGAR",
		BankCode:    bank,
		Summary:     Summarize(docText),
	}, nil
}

// Summarize derives a bounded-length summary from the leading non-empty
// lines of a filing document. HTML documents are reduced to text first.
func Summarize(docText string) string {
	if strings.Contains(docText, "<") {
		if text, err := fetch.ExtractText(docText); err == nil {
			docText = text
		}
	}

	var lines []string
	for _, line := range strings.Split(docText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == summaryLines {
			break
		}
	}

	summary := strings.Join(lines, " ")
	if len(summary) > summaryMaxLen {
		// Back up to a rune boundary so the cut never splits a multi-byte
		// character; invalid UTF-8 would be rejected on insert.
		cut := summaryMaxLen
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut] + "..."
	}
	return summary
}
