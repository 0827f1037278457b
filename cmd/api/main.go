package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/jearn-categorizer/config"
	"github.com/dustin/jearn-categorizer/internal/adapter"
	"github.com/dustin/jearn-categorizer/internal/auth"
	"github.com/dustin/jearn-categorizer/internal/categorize"
	"github.com/dustin/jearn-categorizer/internal/category"
	"github.com/dustin/jearn-categorizer/internal/health"
	"github.com/dustin/jearn-categorizer/internal/inference"
	"github.com/dustin/jearn-categorizer/internal/model"
	"github.com/dustin/jearn-categorizer/internal/repository"
	"github.com/dustin/jearn-categorizer/internal/worker"
	"github.com/dustin/jearn-categorizer/pkg/database"
	"github.com/dustin/jearn-categorizer/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize logger with validation and defaults
	appLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	appLogger.Info("Starting categorizer service")

	// Connect to database with validation and defaults
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database: " + err.Error())
	}

	appLogger.Info("Database connection established")

	if err := db.AutoMigrate(&category.Category{}); err != nil {
		appLogger.Fatal("Failed to migrate database: " + err.Error())
	}

	appLogger.Info("Database migration completed")

	categoryRepo := repository.NewGORMCategoryRepository(db, appLogger)
	categoryService := category.NewService(categoryRepo, appLogger)

	// Pick the prediction backend; the local one gets a reload worker
	predictor, modelPath, reloadWorker := setupPredictor(cfg, appLogger)

	labelSource := adapter.NewCategoryServiceToLabelSource(categoryService)
	categorizeService, err := categorize.NewService(&cfg.Categorizer, predictor, labelSource, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize categorize service: " + err.Error())
	}

	// Initialize HTTP handlers
	categorizeHandler := categorize.NewHandler(categorizeService, appLogger)
	categoryHandler := category.NewHandler(categoryService)

	var workerStatus health.WorkerStatus
	if reloadWorker != nil {
		if err := reloadWorker.Start(); err != nil {
			appLogger.Error("Failed to start model reload worker: " + err.Error())
		}
		workerStatus = reloadWorker
	}
	healthHandler := health.NewHandler(cfg.Logging.ServiceName, modelPath, predictor, workerStatus, func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})

	router := setupRouter()
	healthHandler.RegisterRoutes(router)

	// Unversioned routes used by the web and mobile apps
	router.POST("/categorize", categorizeHandler.Categorize)
	router.POST("/classify", categorizeHandler.Categorize)

	authMiddleware := auth.RequireRole(auth.Secret(&cfg.JWT), auth.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		categorizeHandler.RegisterRoutes(v1)
		categoryHandler.RegisterRoutes(v1, authMiddleware)
	}

	// Parse server configuration with defaults
	serverPort := cfg.Server.Port
	if serverPort == "" {
		serverPort = "8000" // default
	}

	serverReadTimeout := 30 * time.Second // default
	if cfg.Server.ReadTimeout != "" {
		if duration, err := time.ParseDuration(cfg.Server.ReadTimeout); err == nil {
			serverReadTimeout = duration
		}
	}

	serverWriteTimeout := 30 * time.Second // default
	if cfg.Server.WriteTimeout != "" {
		if duration, err := time.ParseDuration(cfg.Server.WriteTimeout); err == nil {
			serverWriteTimeout = duration
		}
	}

	serverEnvironment := cfg.Server.Environment
	if serverEnvironment == "" {
		serverEnvironment = "development" // default
	}

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
	}

	// Start server in goroutine for graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server: " + err.Error())
		}
	}()

	appLogger.Info("Server started successfully on port " + serverPort + " (" + serverEnvironment + " environment)")

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	if reloadWorker != nil {
		if err := reloadWorker.Stop(); err != nil {
			appLogger.Error("Error stopping reload worker: " + err.Error())
		}
	}

	// Shutdown server with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown: " + err.Error())
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	appLogger.Info("Server shutdown complete")
}

// setupPredictor builds the configured prediction backend.
// The returned path is what /health reports as the model location.
func setupPredictor(cfg *config.Config, appLogger *logger.Logger) (model.Predictor, string, *worker.ReloadWorker) {
	switch cfg.Model.Backend {
	case "", "local":
		holder, err := model.NewHolder(cfg.Model.Path, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to load model: " + err.Error())
		}

		reloadWorker, err := worker.NewReloadWorker(&cfg.Worker, "model-reload", holder.ReloadIfChanged, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize reload worker: " + err.Error())
		}
		return holder, holder.Path(), reloadWorker

	case "remote":
		client, err := inference.NewClient(&cfg.Model)
		if err != nil {
			appLogger.Fatal("Failed to initialize inference client: " + err.Error())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if resp, err := client.HealthCheck(ctx); err != nil {
			appLogger.Warn("Inference service health check failed: " + err.Error())
		} else {
			appLogger.Info("Inference service ready, model: " + resp.Model)
		}
		return client, client.BaseURL(), nil

	default:
		appLogger.Fatal("Unknown model backend: " + cfg.Model.Backend)
		return nil, "", nil
	}
}

// setupRouter configures the standard middleware stack
func setupRouter() *gin.Engine {
	router := gin.New()

	router.Use(requestid.New())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
	}))

	return router
}
