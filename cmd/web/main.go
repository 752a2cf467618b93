package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
	"github.com/nguyentantai21042004/slide-narrator/internal/models"
	"github.com/nguyentantai21042004/slide-narrator/internal/processor"
	"github.com/nguyentantai21042004/slide-narrator/internal/web"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadOrDefault("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	mode, err := models.ParseRenderMode(cfg.Speech.Mode)
	if err != nil {
		log.Error(ctx, "Invalid speech mode: %v", err)
		os.Exit(1)
	}

	proc, err := processor.NewFromConfig(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		os.Exit(1)
	}

	h := web.NewHandler(proc, web.Options{
		OutputDir:   cfg.Paths.Output,
		MaxUploadMB: cfg.Web.MaxUploadMB,
		DefaultMode: mode,
		Model:       cfg.Summarizer.Model,
	}, log)

	srv := &http.Server{
		Addr:    cfg.Web.Addr,
		Handler: web.NewRouter(h, cfg.Web.AllowedOrigins, cfg.Web.MaxUploadMB),
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Slide Narrator web UI")
	log.Info(ctx, "Listening on %s", cfg.Web.Addr)
	log.Info(ctx, "Model: %s (%s)", cfg.Summarizer.Model, cfg.Summarizer.Provider)
	log.Info(ctx, "========================================")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Shutdown error: %v", err)
	}
	log.Info(ctx, "Web UI stopped")
}
