// Package normalize maps heterogeneous scraped fields into the canonical Article shape.
package normalize

import (
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/bmartin/banktracker/internal/types"
)

// Candidate is a raw record extracted by a source adapter before normalization.
type Candidate struct {
	Title    string
	Link     string
	DateText string
	Summary  string
}

// dateLayouts are the calendar formats observed on bank newsroom pages,
// tried in order after whitespace cleanup.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2006-01-02",
	"02 January 2006",
	"2 January 2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanDateText collapses internal whitespace runs to single spaces and trims.
// Some sources pad single-digit days (e.g. "December  5, 2024").
func CleanDateText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ParseDate parses a source date string into UTC time. An unparsable or
// empty date falls back to the current time; the failure is logged, never fatal.
func ParseDate(dateText string) time.Time {
	cleaned := CleanDateText(dateText)
	if cleaned != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, cleaned); err == nil {
				return t.UTC()
			}
		}
		log.Printf("normalize: unparsable date %q, falling back to current time", dateText)
	}
	return time.Now().UTC()
}

// ResolveLink resolves a possibly relative link against the source's base origin.
// Links that already carry a scheme are returned unchanged.
func ResolveLink(baseOrigin, link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	base := strings.TrimSuffix(baseOrigin, "/")
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	return base + link
}

// ToArticle composes the canonical Article from a candidate. Relevance fields
// are left zeroed for the classifier; the summary defaults to empty, never unset.
func ToArticle(c Candidate, baseOrigin, source string, bank types.BankCode) types.Article {
	return types.Article{
		Title:       strings.TrimSpace(c.Title),
		Link:        ResolveLink(baseOrigin, c.Link),
		PublishDate: ParseDate(c.DateText),
		Source:      source,
		BankCode:    bank,
		Summary:     strings.TrimSpace(c.Summary),
	}
}

// Usable reports whether a candidate carries the minimum fields to be kept.
// Candidates missing title or link are dropped silently by adapters.
func Usable(c Candidate) bool {
	return strings.TrimSpace(c.Title) != "" && strings.TrimSpace(c.Link) != ""
}
