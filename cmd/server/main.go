package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sar_tracker_go/config"
	"sar_tracker_go/db"
	"sar_tracker_go/handlers"
	"sar_tracker_go/middleware"
	"sar_tracker_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		Environment: cfg.Environment,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	tracker := services.NewTrackerService(services.NewGormRepository(db.DB), services.NewStorage(cfg))
	tracker.DeadlineHorizonDays = cfg.DeadlineHorizonDays
	tracker.MaxUploadSize = cfg.MaxUploadSize

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, middleware.OwnerHeader},
	}))
	// Leave room for multipart framing around the largest accepted document
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dK", cfg.MaxUploadSize/1024+512)))

	var apiMiddleware []echo.MiddlewareFunc
	if cfg.RateLimitRequests > 0 && cfg.RateLimitWindowSeconds > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
			Requests: cfg.RateLimitRequests,
			Window:   time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		})
		defer limiter.Stop()
		apiMiddleware = append(apiMiddleware, limiter.Middleware())
	} else {
		log.Println("[WARNING] API rate limiting disabled")
	}

	handlers.New(tracker).Register(e, apiMiddleware...)

	// Start server
	go func() {
		log.Printf("[INFO] Server starting on port %s (%s)", cfg.ServerPort, cfg.Environment)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("[WARNING] Server shutdown: %v", err)
	}
	log.Println("[INFO] Server stopped")
}
