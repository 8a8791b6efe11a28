// Package api exposes the aggregation pipeline over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/aggregate"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/storage"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/telegram"
)

const timeFormat = time.RFC3339

// timeNow is swappable in tests.
var timeNow = time.Now

// Server wires the pipeline, storage and notifier into HTTP handlers.
// Storage and notifier may be nil; their endpoints then answer with a
// structured error instead of failing the whole service.
type Server struct {
	pipeline *aggregate.Pipeline
	store    storage.PredictionStorage
	notifier *telegram.Notifier
	proxy    *http.Client
}

func NewServer(pipeline *aggregate.Pipeline, store storage.PredictionStorage, notifier *telegram.Notifier) *Server {
	return &Server{
		pipeline: pipeline,
		store:    store,
		notifier: notifier,
		proxy:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Routes builds the full handler chain: mux, CORS, request logging.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ping", handlePing)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/matches", s.handleMatches)
	mux.HandleFunc("/predictions/save", s.handleSave)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/telegram/send", s.handleSend)
	mux.HandleFunc("/proxy/sofascore", s.handleProxy)

	return withRequestID(withCORS(mux))
}

// Run starts the HTTP server and shuts it down when ctx is cancelled.
func Run(ctx context.Context, addr string, service string, handler http.Handler, readHeaderTimeout time.Duration) {
	if readHeaderTimeout <= 0 {
		slog.Error("read_header_timeout must be specified in config")
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		slog.Info("API server listening", "service", service, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("API server error", "service", service, "error", err)
		}
	}()
}

func AddrFor(port int) string {
	if port <= 0 {
		slog.Error("port must be greater than 0")
		os.Exit(1)
	}
	return fmt.Sprintf(":%d", port)
}
