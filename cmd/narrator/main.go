package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
	"github.com/nguyentantai21042004/slide-narrator/internal/models"
	"github.com/nguyentantai21042004/slide-narrator/internal/processor"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadOrDefault("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Slide Narrator")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Input: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Model: %s (%s)", cfg.Summarizer.Model, cfg.Summarizer.Provider)
	log.Info(ctx, "Template: %s", cfg.Summarizer.Template)

	mode, err := models.ParseRenderMode(cfg.Speech.Mode)
	if err != nil {
		log.Error(ctx, "Invalid speech mode: %v", err)
		return 1
	}

	proc, err := processor.NewFromConfig(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		return 1
	}

	res, err := proc.Process(ctx, models.Source{Path: cfg.Paths.Input}, mode)
	if err != nil {
		log.Error(ctx, "%v", err)
		return 1
	}

	fmt.Println()
	fmt.Println("--- Narration ---")
	fmt.Println(res.Narration)
	fmt.Println("-----------------")
	fmt.Printf("Elapsed: %.2fs\n", res.Elapsed.Seconds())

	if res.RenderErr != nil {
		log.Error(ctx, "%v", res.RenderErr)
		return 1
	}
	return 0
}
