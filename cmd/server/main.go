package main

import (
	"log"
	"net/http"

	"github.com/gustavosampaioo/statusrotas/internal/config"
	"github.com/gustavosampaioo/statusrotas/internal/logger"
	"github.com/gustavosampaioo/statusrotas/internal/middleware"
	"github.com/gustavosampaioo/statusrotas/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Load configuration and connect to the database
	cfg := config.Load()
	config.InitDB(cfg)

	// Setup Gin router (recovery + request logging registered inside)
	r := routes.SetupRouter(cfg)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Printf("🚀 Server running at %s (schema mode: %s)", cfg.HTTPAddr, cfg.Mode)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, handler))
}
