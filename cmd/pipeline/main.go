package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/callmepikachu/AniHub-Demo/internal/logger"
	"github.com/callmepikachu/AniHub-Demo/internal/models"
	"github.com/callmepikachu/AniHub-Demo/internal/processor"
	"github.com/callmepikachu/AniHub-Demo/internal/watcher"
)

const watchSettle = 500 * time.Millisecond

func main() {
	var (
		input      string
		output     string
		format     string
		configPath string
		watch      bool
	)
	flag.StringVar(&input, "input", "", "input text file")
	flag.StringVar(&input, "i", "", "input text file (shorthand)")
	flag.StringVar(&output, "output", "output", "output directory")
	flag.StringVar(&output, "o", "output", "output directory (shorthand)")
	flag.StringVar(&format, "format", "", "output format: html or markdown (default from config, html)")
	flag.StringVar(&format, "f", "", "output format (shorthand)")
	flag.StringVar(&configPath, "config", "config.yaml", "optional YAML config file")
	flag.BoolVar(&watch, "watch", false, "watch the input folder instead of processing one file")
	flag.Parse()

	if input == "" && !watch {
		fmt.Fprintln(os.Stderr, "either -input or -watch is required")
		flag.Usage()
		os.Exit(2)
	}

	// Missing .env is fine, the environment may already carry the keys.
	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if format == "" {
		format = cfg.Output.Format
	}
	outFormat, err := models.ParseFormat(format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	cfg.Output.Format = string(outFormat)

	log, closer, err := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Dir:    cfg.Logging.Dir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	proc := processor.NewFromConfig(cfg, log)

	if !watch {
		if _, err := proc.Run(ctx, input, output, outFormat); err != nil {
			log.Error(ctx, "Pipeline failed: %v", err)
			closer.Close()
			os.Exit(1)
		}
		return
	}

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "output" || f.Name == "o" {
			cfg.Paths.Output = output
		}
	})

	if err := runWatch(ctx, cfg, proc, log); err != nil {
		log.Error(ctx, "Watch mode failed: %v", err)
		closer.Close()
		os.Exit(1)
	}
}

func runWatch(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger) error {
	log.Info(ctx, "========================================")
	log.Info(ctx, "Text Illustration Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Extractor: %s", cfg.Extractor.Provider)
	log.Info(ctx, "Max Concurrent Files: %d", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Generation Workers: %d", cfg.Performance.GenerationWorkers)

	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, watcher.Options{
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		Settle:        watchSettle,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s (%s)", cfg.Paths.Output, cfg.Output.Format)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-ctx.Done():
		log.Info(context.Background(), "Shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("watcher: %w", err)
	}

	log.Info(context.Background(), "Pipeline stopped")
	return nil
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
