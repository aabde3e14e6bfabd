package main

import (
	"log"

	"github.com/dsavelev/postline/internal/forms"
	"github.com/dsavelev/postline/internal/handlers"
	"github.com/dsavelev/postline/internal/router"
	"github.com/dsavelev/postline/pkg/config"
	"github.com/dsavelev/postline/web"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Create Echo instance
	e := echo.New()

	// HTML rendering, validation and error pages
	e.Renderer = web.NewRenderer()
	e.Validator = forms.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(e)

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
