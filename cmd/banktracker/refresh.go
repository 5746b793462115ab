package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/bmartin/banktracker/internal/classify"
	"github.com/bmartin/banktracker/internal/config"
	"github.com/bmartin/banktracker/internal/db"
	"github.com/bmartin/banktracker/internal/observability"
	"github.com/bmartin/banktracker/internal/pipeline"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run one aggregation now",
	Long:  `Scrapes every configured source, classifies relevance, filters out known links, and saves new articles to the database.`,
	RunE:  runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required to run an aggregation")
	}

	ctx := context.Background()
	adapters := buildAdapters(cfg)
	classifier := buildClassifier(ctx, cfg)

	var onProgress pipeline.ProgressCallback
	if cfg.Verbose {
		onProgress = func(e pipeline.ProgressEvent) {
			log.Printf("[%s] %s", e.State, e.Message)
		}
	}

	result, err := runAggregation(ctx, cfg, adapters, classifier, onProgress)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintRunSummary(result)
	return nil
}

// runAggregation executes one recorded aggregation against the database.
func runAggregation(ctx context.Context, cfg *config.Config, adapters []pipeline.Adapter,
	classifier *classify.Classifier, onProgress pipeline.ProgressCallback) (*pipeline.Result, error) {

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	runID, err := database.CreateRun(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to record aggregation run: %w", err)
	}

	result, err := pipeline.Run(ctx, pipeline.Options{
		Adapters:    adapters,
		Store:       database,
		Classifier:  classifier,
		Concurrency: cfg.Concurrency,
		Verbose:     cfg.Verbose,
		OnProgress:  onProgress,
	})
	if err != nil {
		if completeErr := database.CompleteRun(ctx, runID, db.RunStatusError, 0); completeErr != nil {
			log.Printf("Warning: failed to finalize aggregation run: %v", completeErr)
		}
		return nil, err
	}

	if err := database.CompleteRun(ctx, runID, db.RunStatusCompleted, result.Inserted); err != nil {
		log.Printf("Warning: failed to finalize aggregation run: %v", err)
	}
	return result, nil
}
