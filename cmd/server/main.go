package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/config"
	"movie-reviews-api/internal/handlers"
	"movie-reviews-api/pkg/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger := config.SetupLogging(cfg)

	// Initialize dependencies
	container, err := server.NewContainer(context.Background(), cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handlers.SetupMiddleware(router, handlers.MiddlewareConfig{
		RateLimitRPS:         cfg.Server.RateLimitRPS,
		RateLimitBurst:       cfg.Server.RateLimitBurst,
		SlowRequestThreshold: cfg.Server.SlowRequestThreshold,
	})

	routerConfig := &handlers.RouterConfig{
		MovieService:  container.MovieService,
		ReviewService: container.ReviewService,
		AuthService:   container.AuthService,
		SecureCookies: cfg.IsProduction(),
	}
	handlers.SetupRoutes(router, routerConfig)
	if !cfg.IsProduction() {
		handlers.SetupDevelopmentRoutes(router, routerConfig)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.InvocationTimeout,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	logger.WithFields(logrus.Fields{
		"port":    cfg.Port,
		"backend": cfg.Store.Backend,
	}).Info("Server started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
