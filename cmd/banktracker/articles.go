package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bmartin/banktracker/internal/db"
	"github.com/bmartin/banktracker/internal/observability"
)

var (
	articlesLimit int
	articlesJSON  bool
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List stored articles",
	Long:  `Lists stored articles ordered by publish date, newest first.`,
	RunE:  runArticles,
}

func init() {
	articlesCmd.Flags().IntVar(&articlesLimit, "limit", 50, "Maximum number of articles to list (0 for all)")
	articlesCmd.Flags().BoolVar(&articlesJSON, "json", false, "Output raw JSON instead of formatted text")
	rootCmd.AddCommand(articlesCmd)
}

func runArticles(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required to list articles")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	articles, err := database.ListArticles(ctx, articlesLimit)
	if err != nil {
		return err
	}

	if articlesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	}

	observability.NewPrinter(os.Stdout).PrintArticles(articles)
	return nil
}
