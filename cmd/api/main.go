package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"harborcrm/internal/app"
	"harborcrm/internal/db"
	"harborcrm/internal/http/handlers"
	"harborcrm/internal/http/middleware"
	"harborcrm/internal/importer"
	"harborcrm/internal/telemetry"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title HarborCRM API
// @version 1.0
// @description Multi-workspace CRM backend with bulk CSV import

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	// Setup logger
	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Import configurations are static; a broken registry is a
	// programming error and should stop the process here
	if err := importer.ValidateRegistry(); err != nil {
		log.Fatal().Err(err).Msg("Invalid import configuration registry")
	}

	// Tracing is opt-in via ENABLE_TELEMETRY
	shutdownTracing := telemetry.Init(context.Background())
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to flush traces on shutdown")
		}
	}()

	// Initialize database
	database, err := db.NewDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := db.RunMigrations(database); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize services
	services := app.NewServices(database)

	// Setup Echo
	e := echo.New()
	e.HideBanner = true

	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Telemetry())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger - only enabled in development environment
	if os.Getenv("ENV") == "development" {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// Setup routes
	api := e.Group("/api/v1")
	handlers.SetupRoutes(api, services)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Str("port", port).Msg("Server started")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
