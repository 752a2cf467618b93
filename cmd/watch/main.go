package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/extractor"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
	"github.com/nguyentantai21042004/slide-narrator/internal/models"
	"github.com/nguyentantai21042004/slide-narrator/internal/processor"
	"github.com/nguyentantai21042004/slide-narrator/internal/watcher"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadOrDefault("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Slide Narrator (watch mode)")
	log.Info(ctx, "========================================")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
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

	handler := func(ctx context.Context, path string) error {
		res, err := proc.Process(ctx, models.Source{Path: path}, mode)
		if err != nil {
			return err
		}
		if res.RenderErr != nil {
			log.Warn(ctx, "Narration for %s saved without audio", path)
		}
		return nil
	}

	w, err := watcher.New(watcher.Options{
		Dir:         cfg.Paths.Watch,
		Extensions:  extractor.SupportedExtensions(),
		SettleDelay: cfg.Watch.SettleDelay,
	}, handler, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Narrator is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Watch)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Model: %s (%s)", cfg.Summarizer.Model, cfg.Summarizer.Provider)
	log.Info(ctx, "Speech: %v (%s)", cfg.Speech.Enabled, mode)
	log.Info(ctx, "")
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Narrator stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	for _, dir := range []string{cfg.Paths.Watch, cfg.Paths.Output} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
