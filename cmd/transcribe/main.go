package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
	"github.com/yungbote/debate-analyzer-backend/internal/services"
	"github.com/yungbote/debate-analyzer-backend/internal/transcriber"
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
		fmt.Println("usage: transcribe <video-file> [video-file...]")
		os.Exit(2)
	}

	ctx := context.Background()

	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Fatal("Could not init BucketService", "error", err)
	}

	modelName := utils.GetEnv("WHISPER_MODEL", "large-v3", log)
	whisperT, err := transcriber.NewWhisperTranscriber(log, transcriber.WhisperConfig{
		ModelPath: utils.GetEnv("WHISPER_MODEL_PATH", "", log),
		Language:  utils.GetEnv("WHISPER_LANGUAGE", "auto", log),
	})
	if err != nil {
		log.Fatal("Could not init whisper", "error", err)
	}
	defer whisperT.Close()

	var diarizer transcriber.Diarizer
	if utils.GetEnvAsBool("DIARIZATION_ENABLED", true, log) {
		diarizer, err = transcriber.NewGCPDiarizer(ctx, log, transcriber.DiarizerConfig{
			LanguageCode:    utils.GetEnv("DIARIZATION_LANGUAGE", "en-US", log),
			MinSpeakerCount: utils.GetEnvAsInt("DIARIZATION_MIN_SPEAKERS", 2, log),
			MaxSpeakerCount: utils.GetEnvAsInt("DIARIZATION_MAX_SPEAKERS", 6, log),
		})
		if err != nil {
			log.Fatal("Could not init diarizer", "error", err)
		}
		defer diarizer.Close()
	}

	pipeline := transcriber.NewPipeline(log, whisperT, diarizer, bucketService, transcriber.PipelineConfig{
		WorkDir:           utils.GetEnv("TRANSCRIBE_WORK_DIR", os.TempDir(), log),
		TranscriptsPrefix: utils.GetEnv("TRANSCRIPTS_PREFIX", "transcripts/", log),
		AudioPrefix:       utils.GetEnv("AUDIO_PREFIX", "audio/", log),
		ModelName:         modelName,
	})

	failures := 0
	for _, videoPath := range os.Args[1:] {
		uri, err := pipeline.Run(ctx, videoPath)
		if err != nil {
			log.Error("Transcription failed", "video", videoPath, "error", err)
			failures++
			continue
		}
		log.Info("Transcription complete", "video", videoPath, "uri", uri)
	}
	if failures > 0 {
		os.Exit(1)
	}
}
