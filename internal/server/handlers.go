package server

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/bmartin/banktracker/internal/db"
	"github.com/bmartin/banktracker/internal/pipeline"
	"github.com/bmartin/banktracker/internal/types"
)

const defaultArticleLimit = 50

// handleListArticles returns stored articles, newest publish date first
func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	limit := defaultArticleLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	articles, err := s.store.ListArticles(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if articles == nil {
		articles = []types.Article{}
	}

	s.jsonResponse(w, http.StatusOK, articles)
}

// handleRefresh runs a full aggregation and streams progress via SSE.
// The run is recorded in aggregation_runs regardless of outcome.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The run is detached from the request context: a client that hangs up
	// mid-stream stops receiving events but the aggregation finishes.
	ctx := context.Background()
	runID, err := s.store.CreateRun(ctx)
	if err != nil {
		log.Printf("Warning: failed to record aggregation run: %v", err)
		runID = uuid.Nil
	}

	log.Printf("Starting aggregation run %s", runID)

	opts := pipeline.Options{
		Adapters:   s.adapters,
		Store:      s.store,
		Classifier: s.classifier,
		Verbose:    s.verbose,
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := sse.WriteEvent("progress", event); err != nil {
				log.Printf("Error writing SSE event: %v", err)
			}
		},
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		log.Printf("Aggregation run %s failed: %v", runID, err)
		s.completeRun(runID, db.RunStatusError, 0)
		sse.WriteError(err.Error())
		return
	}

	s.completeRun(runID, db.RunStatusCompleted, result.Inserted)
	sse.WriteComplete(runID.String(), result)
	log.Printf("Aggregation run %s completed: %d new articles", runID, result.Inserted)
}

// completeRun finalizes the run record, tolerating storage failures
func (s *Server) completeRun(runID uuid.UUID, status string, inserted int) {
	if runID == uuid.Nil {
		return
	}
	if err := s.store.CompleteRun(context.Background(), runID, status, inserted); err != nil {
		log.Printf("Warning: failed to finalize aggregation run %s: %v", runID, err)
	}
}
