package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentcare/records/internal/bootstrap"
	"github.com/mentcare/records/internal/iam"
	"github.com/mentcare/records/internal/records"
	"github.com/mentcare/records/internal/reports"
	"github.com/mentcare/records/pkg/config"
	"github.com/mentcare/records/pkg/csvstore"
	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/monitoring"
	"github.com/mentcare/records/pkg/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.WithField("data_dir", cfg.Storage.DataDir).Info("Starting records service")

	// Initialize flat-file store
	store := csvstore.New(cfg.Storage.DataDir, log)

	// Ensure stores exist and seed demonstration data
	bootstrapper := bootstrap.New(store, &cfg.Storage, log)
	if err := bootstrapper.Run(cfg.Bootstrap.SeedSampleData); err != nil {
		log.WithError(err).Error("Failed to bootstrap stores")
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(store, cfg.Storage.UsersFile, log)
	patientRepo := repository.NewPatientRepository(store, cfg.Storage.PatientsFile, log)
	consultationRepo := repository.NewConsultationRepository(store, cfg.Storage.ConsultationsFile, log)
	prescriptionRepo := repository.NewPrescriptionRepository(store, cfg.Storage.PrescriptionsFile, log)

	// Initialize services
	iamService := iam.NewService(cfg, log, userRepo)
	recordsService := records.NewService(log, patientRepo, consultationRepo, prescriptionRepo)
	exporter := reports.NewExporter(recordsService, log)

	// Initialize HTTP handlers
	iamHandlers := iam.NewHandlers(iamService, log)
	recordsHandlers := records.NewHandlers(recordsService, log)
	reportsHandlers := reports.NewHandlers(exporter, log)

	// Setup Gin router
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health and metrics endpoints
	health := monitoring.NewHealthChecker("records-service", cfg.Storage.DataDir)
	router.GET("/health", health.Handler())
	router.GET("/metrics", gin.WrapH(monitoring.Handler()))

	// Register API routes
	iamHandlers.RegisterRoutes(router)
	recordsHandlers.RegisterRoutes(router, iamHandlers)
	reportsHandlers.RegisterRoutes(router, iamHandlers)

	// Setup HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.WithField("address", server.Addr).Info("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start HTTP server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down records service...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		os.Exit(1)
	}

	log.Info("Records service stopped")
}
