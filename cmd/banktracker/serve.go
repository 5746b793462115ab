package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/bmartin/banktracker/internal/scheduler"
	"github.com/bmartin/banktracker/internal/server"
)

var (
	servePort     int
	serveSchedule string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing stored articles and an SSE-streamed refresh endpoint, with a cron-scheduled background aggregation.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveSchedule, "schedule", "", "Cron schedule for background aggregation (empty disables; default "+scheduler.DefaultSchedule+" when --schedule=default)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required to run the server")
	}
	if cmd.Flags().Changed("port") || cfg.Port == 0 {
		cfg.Port = servePort
	}

	ctx := context.Background()
	adapters := buildAdapters(cfg)
	classifier := buildClassifier(ctx, cfg)

	srv, err := server.New(ctx, server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		Adapters:    adapters,
		Classifier:  classifier,
		AuthSecret:  cfg.AuthSecret,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	schedule := serveSchedule
	if schedule == "" {
		schedule = cfg.Schedule
	}
	if schedule == "default" {
		schedule = scheduler.DefaultSchedule
	}
	if schedule != "" {
		sched := scheduler.New()
		if err := sched.Schedule(schedule, func(ctx context.Context) {
			if _, err := runAggregation(ctx, cfg, adapters, classifier, nil); err != nil {
				log.Printf("Scheduled aggregation failed: %v", err)
			}
		}); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
		log.Printf("Scheduled background aggregation: %s", schedule)
	}

	return srv.Start()
}
