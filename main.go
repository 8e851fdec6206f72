package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopsight-hq/shopsight/pkg/aiqueue"
	"github.com/shopsight-hq/shopsight/pkg/config"
	"github.com/shopsight-hq/shopsight/pkg/dashboard"
	"github.com/shopsight-hq/shopsight/pkg/genai"
	"github.com/shopsight-hq/shopsight/pkg/insights"
	"github.com/shopsight-hq/shopsight/pkg/logger"
	"github.com/shopsight-hq/shopsight/pkg/store"
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg := logger.NewStdLogger(cfg.LoggerConfig.Coloring, cfg.LoggerConfig.Level)

	// Generate the simulated store dataset
	st := store.Generate(cfg.Dataset.Seed, cfg.Dataset.ProductCount, cfg.Dataset.SalesDays)
	products, reviews, sales := st.Counts()
	lg.Info("Generated dataset: %d products, %d reviews, %d sales records", products, reviews, sales)

	// Create the AI client; a missing API key is fatal here
	client, err := genai.NewClient(cfg.APIEndpoint, cfg.APIKey, cfg.Model, lg)
	if err != nil {
		log.Fatalf("Failed to create AI client: %v", err)
	}

	// One shared request queue for all AI features
	queue := aiqueue.New(aiqueue.Config{
		MaxRetries:   cfg.Queue.MaxRetries,
		InitialDelay: cfg.Queue.InitialDelay,
		Cooldown:     cfg.Queue.Cooldown,
		Retryable:    genai.IsRetryable,
	}, lg)

	service := insights.NewService(cfg, st, client, queue, lg)
	server := dashboard.NewServer(cfg.ServerPort, st, service, lg)

	// Set up context with cancellation on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		lg.Notice("Received termination signal, shutting down gracefully...")
		cancel()
	}()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Dashboard server failed: %v", err)
		}
	}()

	lg.Info("Starting the insights service...")
	service.Start(ctx)
}
