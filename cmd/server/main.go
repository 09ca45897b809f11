package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dgallion1/botschema/internal/api"
	"github.com/dgallion1/botschema/internal/config"
	"github.com/dgallion1/botschema/internal/extract"
	"github.com/dgallion1/botschema/internal/pipeline"
)

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize pipeline.
	stats := extract.NewStats(cfg.JobTTL)
	orch := pipeline.NewOrchestrator(cfg, stats, log)
	orch.Start(ctx)

	if cfg.DocumentPath != "" {
		preload(orch, cfg.DocumentPath, log)
	}

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
	}()

	log.Info("starting botschema", "port", cfg.Port, "workers", cfg.WorkerCount)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// preload queues the cached document so its catalogue is ready before the
// first upload. Failures are logged; the server still starts.
func preload(orch *pipeline.Orchestrator, path string, log *slog.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("preload failed", "path", path, "error", err)
		return
	}
	now := time.Now()
	job := &pipeline.Job{
		ID:          pipeline.NewJobID(),
		Status:      pipeline.StatusQueued,
		Phase:       "queued",
		Filename:    filepath.Base(path),
		ContentHash: pipeline.ContentHashHex(data),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	job.SetFileData(data)
	if err := orch.Submit(job); err != nil {
		log.Error("preload failed", "path", path, "error", err)
		return
	}
	log.Info("preloading document", "path", path, "job_id", job.ID)
}
