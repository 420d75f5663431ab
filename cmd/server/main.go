package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/stylefinder/backend/config"
	httpDelivery "github.com/stylefinder/backend/internal/delivery/http"
	"github.com/stylefinder/backend/internal/infrastructure/catalog"
	"github.com/stylefinder/backend/internal/infrastructure/encoder"
	"github.com/stylefinder/backend/internal/infrastructure/ollama"
	"github.com/stylefinder/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting StyleFinder Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Load the catalog; an empty or inconsistent catalog refuses to start
	store, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog from %s: %v", cfg.Catalog.Path, err)
	}

	// Initialize infrastructure dependencies
	encoderClient := encoder.NewClient(cfg.Encoder.BaseURL, cfg.Encoder.Timeout)
	ollamaClient := ollama.NewClient(cfg.Ollama.BaseURL, cfg.Ollama.Model, cfg.Ollama.Timeout, ollama.Options{
		Temperature: cfg.Ollama.Temperature,
		TopP:        cfg.Ollama.TopP,
		MaxTokens:   cfg.Ollama.MaxTokens,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		encoderClient.SetDebug(true)
		ollamaClient.SetDebug(true)
		log.Printf("Client debug mode enabled")
	}

	// Generation backend availability is logged, not fatal; the report
	// service falls back to the deterministic template when it is down
	checkCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := ollamaClient.CheckConnection(checkCtx); err != nil {
		log.Printf("WARNING: Ollama not reachable at %s: %v", cfg.Ollama.BaseURL, err)
	}
	cancel()

	// Initialize usecase layer
	styleService := usecase.NewStyleService(
		store,
		encoderClient,
		ollamaClient,
		usecase.StyleServiceConfig{
			SimilarityThreshold: cfg.Matching.SimilarityThreshold,
			MinReportLength:     cfg.Matching.MinReportLength,
			EnableDebugLogging:  cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: threshold=%.2f, min report length=%d, debug=%v",
		cfg.Matching.SimilarityThreshold,
		cfg.Matching.MinReportLength,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(styleService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
