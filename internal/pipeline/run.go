// Package pipeline orchestrates a full aggregation run: scrape every source,
// classify relevance, drop known links, and persist what remains.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bmartin/banktracker/internal/classify"
	"github.com/bmartin/banktracker/internal/dedupe"
	"github.com/bmartin/banktracker/internal/types"
)

// State identifies the phase an aggregation run is in. States always advance
// in order; ERROR is only reached from a run-fatal failure, never from a
// single source failing.
type State string

const (
	StateFetchingExisting State = "FETCHING_EXISTING"
	StateScraping         State = "SCRAPING"
	StateFiltering        State = "FILTERING"
	StateSaving           State = "SAVING"
	StateDone             State = "DONE"
	StateError            State = "ERROR"
)

// ProgressEvent represents a progress update during an aggregation run
type ProgressEvent struct {
	State   State  `json:"state"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// ProgressCallback is called when aggregation progress occurs
type ProgressCallback func(event ProgressEvent)

// Adapter produces candidate articles from one source.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context) ([]types.Article, error)
}

// Store is the storage surface an aggregation run needs.
type Store interface {
	ListLinks(ctx context.Context) ([]string, error)
	InsertArticle(ctx context.Context, a types.Article) (bool, error)
}

// Options holds configuration for running an aggregation
type Options struct {
	Adapters    []Adapter
	Store       Store
	Classifier  *classify.Classifier
	Concurrency int // concurrent classification calls; defaults to 4
	Verbose     bool
	OnProgress  ProgressCallback
}

// Result summarizes a completed aggregation run
type Result struct {
	Scraped  int `json:"scraped"`
	New      int `json:"new"`
	Inserted int `json:"inserted"`
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, state State, source, message string, count int) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			State:   state,
			Source:  source,
			Message: message,
			Count:   count,
		})
	}
}

// Run executes a full aggregation. Individual source failures are logged and
// skipped; the run only fails when the existing-link snapshot cannot be read
// or every insert is impossible.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("pipeline requires a store")
	}
	if opts.Classifier == nil {
		opts.Classifier = classify.New(nil)
	}

	// Phase 1: snapshot existing links before scraping so concurrent runs
	// can only over-report, never double-insert (the link UNIQUE constraint
	// catches the rest).
	emitProgress(&opts, StateFetchingExisting, "", "Fetching existing articles", 0)
	links, err := opts.Store.ListLinks(ctx)
	if err != nil {
		emitProgress(&opts, StateError, "", fmt.Sprintf("Failed to fetch existing articles: %v", err), 0)
		return nil, fmt.Errorf("failed to fetch existing links: %w", err)
	}
	existing := dedupe.NewLinkSet(links)
	if opts.Verbose {
		log.Printf("[VERBOSE] Loaded %d existing links", len(existing))
	}

	// Phase 2: run every adapter concurrently. A failing or panicking
	// adapter contributes nothing but never aborts the run.
	emitProgress(&opts, StateScraping, "", fmt.Sprintf("Scraping %d sources", len(opts.Adapters)), 0)

	var mu sync.Mutex
	var scraped []types.Article

	g, gCtx := errgroup.WithContext(ctx)
	for _, adapter := range opts.Adapters {
		adapter := adapter
		g.Go(func() error {
			articles := fetchFromAdapter(gCtx, adapter, &opts)
			mu.Lock()
			scraped = append(scraped, articles...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // adapter goroutines never return an error

	emitProgress(&opts, StateScraping, "", fmt.Sprintf("Scraped %d articles", len(scraped)), len(scraped))

	// Phase 3: drop articles whose link is already stored, then classify
	// only what is actually new.
	emitProgress(&opts, StateFiltering, "", "Filtering out known articles", 0)
	fresh := dedupe.FilterNew(scraped, existing)
	if opts.Verbose {
		log.Printf("[VERBOSE] %d of %d scraped articles are new", len(fresh), len(scraped))
	}

	if len(fresh) == 0 {
		emitProgress(&opts, StateDone, "", "No new articles", 0)
		return &Result{Scraped: len(scraped)}, nil
	}

	classified := classifyAll(ctx, &opts, fresh)

	// Phase 4: persist. Duplicate links surfacing here (a concurrent run got
	// there first) are silent no-ops.
	emitProgress(&opts, StateSaving, "", fmt.Sprintf("Saving %d new articles", len(classified)), len(classified))
	inserted := 0
	for _, a := range classified {
		ok, err := opts.Store.InsertArticle(ctx, a)
		if err != nil {
			log.Printf("Warning: failed to save article %s: %v", a.Link, err)
			continue
		}
		if ok {
			inserted++
		}
	}

	result := &Result{Scraped: len(scraped), New: len(fresh), Inserted: inserted}
	emitProgress(&opts, StateDone, "", fmt.Sprintf("Saved %d new articles", inserted), inserted)
	return result, nil
}

// fetchFromAdapter runs one adapter, converting panics and errors into an
// empty contribution.
func fetchFromAdapter(ctx context.Context, adapter Adapter, opts *Options) (articles []types.Article) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: source %s panicked: %v", adapter.Name(), r)
			emitProgress(opts, StateScraping, adapter.Name(), fmt.Sprintf("Source %s failed", adapter.Name()), 0)
			articles = nil
		}
	}()

	emitProgress(opts, StateScraping, adapter.Name(), fmt.Sprintf("Scraping %s", adapter.Name()), 0)
	articles, err := adapter.Fetch(ctx)
	if err != nil {
		log.Printf("Warning: source %s failed: %v", adapter.Name(), err)
		emitProgress(opts, StateScraping, adapter.Name(), fmt.Sprintf("Source %s failed", adapter.Name()), 0)
		return nil
	}

	emitProgress(opts, StateScraping, adapter.Name(),
		fmt.Sprintf("Found %d articles from %s", len(articles), adapter.Name()), len(articles))
	return articles
}

// classifyAll scores every article with bounded concurrency, preserving
// input order. Classification never fails; the keyword fallback always
// produces a verdict.
func classifyAll(ctx context.Context, opts *Options, articles []types.Article) []types.Article {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	out := make([]types.Article, len(articles))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, a := range articles {
		i, a := i, a
		g.Go(func() error {
			analysis := opts.Classifier.Classify(gCtx, a.Title, a.Summary)
			a.AIRelevanceScore = analysis.Score()
			a.AIRelevanceReason = analysis.Reason
			out[i] = a
			return nil
		})
	}
	_ = g.Wait()

	return out
}
