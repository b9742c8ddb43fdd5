package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/callmepikachu/AniHub-Demo/internal/logger"
	"github.com/callmepikachu/AniHub-Demo/internal/processor"
	"github.com/callmepikachu/AniHub-Demo/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "optional YAML config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

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

	if err := os.MkdirAll(cfg.Server.DataDir, 0755); err != nil {
		log.Error(ctx, "Failed to create data dir: %v", err)
		os.Exit(1)
	}

	proc := processor.NewFromConfig(cfg, log)
	srv := server.New(cfg, proc, log)

	if err := srv.Run(ctx); err != nil {
		log.Error(context.Background(), "Server stopped with error: %v", err)
		closer.Close()
		os.Exit(1)
	}
	log.Info(context.Background(), "Server stopped")
}
