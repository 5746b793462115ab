// Package main provides the entry point for the bank tracker CLI and server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bmartin/banktracker/internal/classify"
	"github.com/bmartin/banktracker/internal/config"
	"github.com/bmartin/banktracker/internal/edgar"
	"github.com/bmartin/banktracker/internal/llm"
	"github.com/bmartin/banktracker/internal/pipeline"
	"github.com/bmartin/banktracker/internal/scrape"
)

var rootCmd = &cobra.Command{
	Use:   "banktracker",
	Short: "Canadian bank AI news tracker",
	Long:  "banktracker aggregates AI and technology news from the five largest Canadian banks' newsrooms and their SEC EDGAR filings, scores relevance, and stores the results in PostgreSQL.",
}

var (
	rootConfigPath string
	rootVerbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the optional config file plus environment overrides and
// folds in the persistent flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return nil, err
	}
	if rootVerbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// buildAdapters assembles every configured source: the five bank newsroom
// scrapers plus the EDGAR filings adapter.
func buildAdapters(cfg *config.Config) []pipeline.Adapter {
	opts := scrape.Options{UseBrowser: cfg.UseBrowser, Verbose: cfg.Verbose}

	var adapters []pipeline.Adapter
	for _, a := range scrape.All(opts) {
		adapters = append(adapters, a)
	}

	var edgarOpts []edgar.ClientOption
	if cfg.EdgarUserAgent != "" {
		edgarOpts = append(edgarOpts, edgar.WithUserAgent(cfg.EdgarUserAgent))
	}
	adapters = append(adapters, edgar.NewAdapter(edgar.NewClient(edgarOpts...)))

	return adapters
}

// buildClassifier creates the relevance classifier. Without an API key the
// classifier still works through its keyword fallback.
func buildClassifier(ctx context.Context, cfg *config.Config) *classify.Classifier {
	if cfg.GeminiAPIKey == "" {
		if cfg.Verbose {
			fmt.Println("[VERBOSE] No Gemini API key configured, using keyword classification")
		}
		return classify.New(nil).WithVerbose(cfg.Verbose)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create LLM client: %v\n", err)
		fmt.Fprintln(os.Stderr, "Continuing with keyword classification...")
		return classify.New(nil).WithVerbose(cfg.Verbose)
	}
	return classify.New(client).WithVerbose(cfg.Verbose)
}
