// Package scheduler runs aggregations on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs once daily at 06:00.
const DefaultSchedule = "0 6 * * *"

// Scheduler triggers aggregation runs on a fixed cron schedule. Overlapping
// triggers are skipped rather than queued; a run already in flight wins.
type Scheduler struct {
	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

// New creates a scheduler using the standard 5-field cron format
// (minute hour day month weekday).
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
	}
}

// Schedule registers an aggregation trigger for the given cron expression.
func (s *Scheduler) Schedule(spec string, run func(ctx context.Context)) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.mu.Lock()
		if s.running {
			s.mu.Unlock()
			log.Println("Cron triggered: previous aggregation still running, skipping")
			return
		}
		s.running = true
		s.mu.Unlock()

		log.Println("Cron triggered: starting aggregation")
		run(context.Background())

		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	return nil
}

// Start begins dispatching scheduled triggers in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for an in-flight trigger to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
