package main

import (
	"log"

	"github.com/joho/godotenv"

	"investigator/adapters/boundary"
	"investigator/app"
	"investigator/internal"
	"investigator/internal/config"
	"investigator/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()
	checks := app.NewCheckService(boundary.NewRegistry(), logger)
	server := ui.NewServer(checks, logger)

	if err := server.ListenAndServe(cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
