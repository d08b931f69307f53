package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jalvarez/washpoint-backend/config"
	"github.com/jalvarez/washpoint-backend/internal/app/controller"
	"github.com/jalvarez/washpoint-backend/internal/app/repository"
	"github.com/jalvarez/washpoint-backend/internal/app/service"
	"github.com/jalvarez/washpoint-backend/internal/db"
	"github.com/jalvarez/washpoint-backend/internal/middleware"
	"github.com/jalvarez/washpoint-backend/internal/router"
	"github.com/jalvarez/washpoint-backend/internal/scheduler"
	"github.com/jalvarez/washpoint-backend/internal/storage"
	"github.com/jalvarez/washpoint-backend/internal/websocket"
	"github.com/jalvarez/washpoint-backend/pkg/logger"
	"github.com/jalvarez/washpoint-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Washpoint Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	database, err := db.Connect(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; without it logout is a no-op and tokens simply
	// age out.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = redis.New(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn("Redis not configured, token revocation disabled", nil)
	}

	// Initialize repositories
	businessRepo := repository.NewBusinessRepository(database)
	userRepo := repository.NewUserRepository(database)
	carRepo := repository.NewCarRepository(database)
	assignmentRepo := repository.NewAssignmentRepository(database)

	// Live wash board
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	authService := service.NewAuthService(
		database,
		businessRepo,
		userRepo,
		redisClient,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
	)
	carService := service.NewCarService(carRepo, assignmentRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, carRepo, hub)
	reportService := service.NewReportService(assignmentRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	carController := controller.NewCarController(carService)
	assignmentController := controller.NewAssignmentController(assignmentService)
	reportController := controller.NewReportController(reportService)

	var uploadController *controller.UploadController
	if cfg.S3.Bucket != "" {
		uploadController = controller.NewUploadController(storage.NewPhotoStorage(&cfg.S3))
	} else {
		logger.Warn("S3 not configured, wash photo uploads disabled", nil)
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, redisClient, userRepo)

	// Nightly ledger audit
	auditScheduler := scheduler.NewAuditScheduler(assignmentRepo, carRepo)
	if err := auditScheduler.Start(); err != nil {
		logger.Fatal("Failed to start audit scheduler", err)
	}
	defer auditScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		carController,
		assignmentController,
		reportController,
		uploadController,
		hub,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
