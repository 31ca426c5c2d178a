package main

import (
	"context"
	"log"

	"happydash/adapters/api"
	"happydash/internal/config"
	"happydash/internal/container"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.Warm(context.Background()); err != nil {
		log.Printf("Dataset not loaded: %v", err)
	}

	server := api.NewServer(appContainer.Runner, appContainer.Store)
	log.Printf("Starting API server on port %s", appConfig.Server.APIPort)
	log.Fatal(server.Start(":" + appConfig.Server.APIPort))
}
