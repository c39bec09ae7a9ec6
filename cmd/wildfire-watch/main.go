package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mr1hm/go-wildfire-watch/internal/api"
	"github.com/mr1hm/go-wildfire-watch/internal/config"
	"github.com/mr1hm/go-wildfire-watch/internal/logging"
	"github.com/mr1hm/go-wildfire-watch/internal/notify"
	"github.com/mr1hm/go-wildfire-watch/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port, "catalog", cfg.Catalog.Backend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog, closeCatalog, err := repository.Open(ctx, cfg.Catalog.Backend)
	if err != nil {
		logging.Fatalf("Failed to load reference data: %v", err)
	}
	defer closeCatalog()

	// Notifications are queued to the worker pool and pushed to SSE subscribers
	broadcaster := notify.NewBroadcaster()
	dispatcher := notify.NewDispatcher(cfg, broadcaster)
	dispatcher.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // must stay false with wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimit, api.StreamPaths()...))

	handler := api.NewHandler(catalog, dispatcher, broadcaster)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	// drain queued notifications before the context goes away
	dispatcher.Stop()
	cancel()
	broadcaster.Close() // ends open notification streams

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
