package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/debate-analyzer-backend/internal/batch/statsjob"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
	"github.com/yungbote/debate-analyzer-backend/internal/services"
	"github.com/yungbote/debate-analyzer-backend/internal/utils"
)

func main() {
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

	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Fatal("Could not init BucketService", "error", err)
	}

	job := statsjob.New(log, bucketService, statsjob.Config{
		Prefix:      utils.GetEnv("TRANSCRIPTS_PREFIX", "transcripts/", log),
		Concurrency: utils.GetEnvAsInt("STATS_JOB_CONCURRENCY", 4, log),
	})
	res, err := job.Run(context.Background())
	if err != nil {
		log.Fatal("Stats job failed", "error", err)
	}
	log.Info("Stats job done", "processed", res.Processed, "skipped", res.Skipped)
	if res.Skipped > 0 {
		os.Exit(1)
	}
}
