package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/debate-analyzer-backend/internal/data/db"
	"github.com/yungbote/debate-analyzer-backend/internal/data/repos"
	apphttp "github.com/yungbote/debate-analyzer-backend/internal/http"
	httpH "github.com/yungbote/debate-analyzer-backend/internal/http/handlers"
	httpMW "github.com/yungbote/debate-analyzer-backend/internal/http/middleware"
	"github.com/yungbote/debate-analyzer-backend/internal/observability"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
	"github.com/yungbote/debate-analyzer-backend/internal/services"
	"github.com/yungbote/debate-analyzer-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	listenAddr := utils.GetEnv("LISTEN_ADDR", ":8080", log)
	adminUsername := utils.GetEnv("ADMIN_USERNAME", "", log)
	adminPassword := utils.GetEnv("ADMIN_PASSWORD", "", log)
	serviceName := utils.GetEnv("SERVICE_NAME", "debate-analyzer", log)

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: utils.GetEnv("DEPLOY_ENV", "dev", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "", log),
	})
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(ctx)
		}()
	}

	// Database
	dbService, err := db.NewService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	theDB := dbService.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		log.Fatal("Auto migration failed", "error", err)
	}
	if err := db.SeedStatCatalog(theDB); err != nil {
		log.Warn("Stat catalog seed failed", "error", err)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	transcriptRepo := repos.NewTranscriptRepo(theDB, log)
	segmentRepo := repos.NewSegmentRepo(theDB, log)
	mappingRepo := repos.NewSpeakerMappingRepo(theDB, log)
	statsRepo := repos.NewSpeakerStatsRepo(theDB, log)
	profileRepo := repos.NewSpeakerProfileRepo(theDB, log)
	catalogRepo := repos.NewStatCatalogRepo(theDB, log)

	// Services
	log.Info("Setting up Services from main...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService, gs:// sources disabled", "error", err)
		bucketService = nil
	}
	loader := services.NewPayloadLoader(log, bucketService)
	transcriptService := services.NewTranscriptService(log, theDB, loader, bucketService, transcriptRepo, segmentRepo, mappingRepo, statsRepo)
	speakerService := services.NewSpeakerService(log, profileRepo, mappingRepo, statsRepo, catalogRepo)

	// Handlers
	healthHandler := httpH.NewHealthHandler()
	transcriptHandler := httpH.NewTranscriptHandler(transcriptService)
	speakerHandler := httpH.NewSpeakerHandler(speakerService)

	if adminUsername == "" || adminPassword == "" {
		log.Warn("ADMIN_USERNAME/ADMIN_PASSWORD not set, admin endpoints will refuse all requests")
	}
	adminAuth := httpMW.NewAdminAuth(adminUsername, adminPassword)

	server := apphttp.NewServer(apphttp.RouterConfig{
		ServiceName:       serviceName,
		AdminAuth:         adminAuth,
		TranscriptHandler: transcriptHandler,
		SpeakerHandler:    speakerHandler,
		HealthHandler:     healthHandler,
	})

	log.Info("Starting API server", "addr", listenAddr)
	if err := server.Run(listenAddr); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
