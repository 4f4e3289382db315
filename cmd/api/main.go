package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"titrate/adapters/api"
	"titrate/internal"
	"titrate/internal/config"
	"titrate/internal/container"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// the API never writes chart files
	appConfig.Output = config.OutputConfig{}

	logger := internal.NewLogger(appConfig.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	if err := appContainer.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	server := api.NewServer(appContainer.CurveService, appConfig.Scenario, logger)
	if err := server.ListenAndServe(ctx, ":"+appConfig.Server.Port); err != nil {
		log.Printf("Server failed: %v", err)
	}
}
