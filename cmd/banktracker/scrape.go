package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bmartin/banktracker/internal/edgar"
	"github.com/bmartin/banktracker/internal/observability"
	"github.com/bmartin/banktracker/internal/pipeline"
	"github.com/bmartin/banktracker/internal/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [source]",
	Short: "Scrape a single source without saving",
	Long: `Fetches one source and prints what it finds, without touching the
database. Useful for debugging selectors after a newsroom redesign.

Sources: rbc, td, bmo, scotia, cibc, edgar. With no argument, all sources run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var adapters []pipeline.Adapter
	if len(args) == 0 {
		adapters = buildAdapters(cfg)
	} else if strings.EqualFold(args[0], "edgar") {
		var edgarOpts []edgar.ClientOption
		if cfg.EdgarUserAgent != "" {
			edgarOpts = append(edgarOpts, edgar.WithUserAgent(cfg.EdgarUserAgent))
		}
		adapters = []pipeline.Adapter{edgar.NewAdapter(edgar.NewClient(edgarOpts...))}
	} else {
		adapter, err := scrape.ByName(args[0], scrape.Options{UseBrowser: cfg.UseBrowser, Verbose: cfg.Verbose})
		if err != nil {
			return err
		}
		adapters = []pipeline.Adapter{adapter}
	}

	ctx := context.Background()
	printer := observability.NewPrinter(os.Stdout)
	counts := make(map[string]int)

	for _, adapter := range adapters {
		articles, err := adapter.Fetch(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: source %s failed: %v\n", adapter.Name(), err)
			continue
		}
		counts[adapter.Name()] = len(articles)
		printer.PrintArticles(articles)
	}

	printer.PrintSourceResults(counts)
	return nil
}
