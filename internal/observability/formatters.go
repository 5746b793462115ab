// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/bmartin/banktracker/internal/pipeline"
	"github.com/bmartin/banktracker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n bytes plus an ellipsis, backing up so the
// cut never lands inside a multi-byte character.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = truncate(line, boxWidth-7)
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunSummary outputs the result of an aggregation run.
func (p *Printer) PrintRunSummary(result *pipeline.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Scraped:   %d articles\n", result.Scraped))
	sb.WriteString(fmt.Sprintf("New:       %d\n", result.New))
	sb.WriteString(fmt.Sprintf("Saved:     %d", result.Inserted))

	p.printBox("AGGREGATION RUN", sb.String())
}

// PrintArticles outputs a human-readable listing of articles, score first.
func (p *Printer) PrintArticles(articles []types.Article) {
	if len(articles) == 0 {
		p.printBox("ARTICLES", "No articles found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d\n\n", len(articles)))

	count := min(len(articles), maxItemsToShow)
	for i := 0; i < count; i++ {
		a := articles[i]
		sb.WriteString(fmt.Sprintf("[%.2f] %s  %s\n", a.AIRelevanceScore, a.BankCode, a.Title))
		sb.WriteString(fmt.Sprintf("       %s  %s\n", a.PublishDate.Format("2006-01-02"), a.Source))
		if a.AIRelevanceReason != "" {
			reason := a.AIRelevanceReason
			if len(reason) > boxWidth-12 {
				reason = truncate(reason, boxWidth-15)
			}
			sb.WriteString(fmt.Sprintf("       %s\n", reason))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(articles) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(articles)-maxItemsToShow))
	}

	p.printBox("ARTICLES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSourceResults outputs per-source article counts after a scrape.
func (p *Printer) PrintSourceResults(counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	var sb strings.Builder
	for _, bank := range types.Banks {
		name := strings.ToLower(string(bank.Code))
		if n, ok := counts[name]; ok {
			sb.WriteString(fmt.Sprintf("%-8s %d articles\n", bank.Code, n))
		}
	}
	if n, ok := counts["edgar"]; ok {
		sb.WriteString(fmt.Sprintf("%-8s %d filings\n", "EDGAR", n))
	}

	p.printBox("SOURCES", strings.TrimSuffix(sb.String(), "\n"))
}
