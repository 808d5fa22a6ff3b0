package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samaj-network/app-directory/internal/config"
	"github.com/samaj-network/app-directory/internal/handlers"
	"github.com/samaj-network/app-directory/internal/logging"
	"github.com/samaj-network/app-directory/internal/middleware"
	"github.com/samaj-network/app-directory/internal/observability"
	"github.com/samaj-network/app-directory/internal/services"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/samaj-network/app-directory/docs"
)

// @title           Community Directory API
// @version         1.0
// @description     API for a community directory: public registration with photos, token-gated profile editing, searchable listing and detail views. The edit link returned at registration is shown exactly once and is the only way to mutate a profile.

// @host      localhost:8080
// @BasePath  /v1

// @tag.name profiles
// @tag.description Registration, listing and detail views

// @tag.name edit
// @tag.description Token-gated edit flows

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize external service clients, once, with fixed configuration
	config.InitMongoDB()
	config.InitRedis()
	config.InitMinio()

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger := logging.Logger
	profileService := services.NewProfileService(logger.Named("profiles"))
	photoService := services.NewPhotoService(logger.Named("photos"))
	profileHandlers := handlers.NewProfileHandlers(logger.Named("handlers"), profileService, photoService)

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		v1.POST("/profiles", profileHandlers.RegisterProfile)
		v1.GET("/profiles", profileHandlers.ListProfiles)
		v1.GET("/profiles/:id", profileHandlers.GetProfileDetail)

		v1.GET("/edit/:token", profileHandlers.ResolveEditToken)
		v1.PUT("/edit/:token", profileHandlers.UpdateProfile)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
