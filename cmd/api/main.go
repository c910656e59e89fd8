package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/calendar/internal/config"
	"github.com/joshua-takyi/calendar/internal/connect"
	"github.com/joshua-takyi/calendar/internal/container"
	"github.com/joshua-takyi/calendar/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	logger.Info("Starting calendar API server",
		"environment", cfg.Environment,
		"store", cfg.StoreDriver,
	)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := connect.OpenStore(startupCtx, cfg, logger)
	cancelStartup()
	if err != nil {
		logger.Error("Failed to open event store", "store", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to event store", "store", cfg.StoreDriver)

	publisher, closePublisher, err := connect.OpenPublisher(cfg.AMQPURL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL != "" {
		logger.Info("Connected to RabbitMQ successfully")
	}

	appContainer := container.NewContainer(logger, store.Repo, publisher, cfg.AllowedOrigins)

	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if err := closePublisher(); err != nil {
		logger.Error("Error closing RabbitMQ connection", "error", err)
	}
	if err := store.Close(ctx); err != nil {
		logger.Error("Error closing event store", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		// Human-readable logging for development, with call sites
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     level,
			AddSource: cfg.IsDevelopment(),
		})
	}

	return slog.New(handler)
}
