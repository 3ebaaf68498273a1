package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/debate-analyzer-backend/internal/downloader"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
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

	if len(os.Args) < 2 {
		fmt.Println("usage: download <video-url> [video-url...]")
		os.Exit(2)
	}

	d := downloader.New(log, downloader.Config{
		OutputDir: utils.GetEnv("DOWNLOAD_DIR", "./downloads", log),
		Format:    utils.GetEnv("DOWNLOAD_FORMAT", "", log),
		Subtitles: utils.GetEnvAsBool("DOWNLOAD_SUBTITLES", true, log),
	})

	failures := 0
	for _, url := range os.Args[1:] {
		out, err := d.Download(context.Background(), url)
		if err != nil {
			log.Error("Download failed", "url", url, "error", err)
			failures++
			continue
		}
		log.Info("Download complete", "url", url, "output", out)
	}
	if failures > 0 {
		os.Exit(1)
	}
}
