// Package server provides the HTTP API for the bank tracker: stored article
// queries and an SSE-streamed aggregation trigger.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/bmartin/banktracker/internal/classify"
	"github.com/bmartin/banktracker/internal/db"
	"github.com/bmartin/banktracker/internal/pipeline"
	"github.com/bmartin/banktracker/internal/types"
)

// Storage is the persistence surface the server needs. *db.DB satisfies it.
type Storage interface {
	ListLinks(ctx context.Context) ([]string, error)
	InsertArticle(ctx context.Context, a types.Article) (bool, error)
	ListArticles(ctx context.Context, limit int) ([]types.Article, error)
	CreateRun(ctx context.Context) (uuid.UUID, error)
	CompleteRun(ctx context.Context, id uuid.UUID, status string, inserted int) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      Storage
	adapters   []pipeline.Adapter
	classifier *classify.Classifier
	authSecret string
	verbose    bool
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	Adapters    []pipeline.Adapter
	Classifier  *classify.Classifier
	AuthSecret  string
	Verbose     bool
}

// New creates a new server instance backed by PostgreSQL
func New(ctx context.Context, cfg Config) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	s := &Server{
		store:      database,
		adapters:   cfg.Adapters,
		classifier: cfg.Classifier,
		authSecret: cfg.AuthSecret,
		verbose:    cfg.Verbose,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for streamed aggregation runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /articles", s.handleListArticles)
	mux.HandleFunc("POST /refresh", s.requireAuth(s.handleRefresh))
	return mux
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if database, ok := s.store.(*db.DB); ok {
		database.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
