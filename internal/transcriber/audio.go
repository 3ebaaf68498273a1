package transcriber

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

// ExtractAudio converts a video file into the 16kHz mono 16-bit PCM WAV
// the speech models expect, writing it to audioPath. Requires ffmpeg on
// PATH.
func ExtractAudio(ctx context.Context, log *logger.Logger, videoPath, audioPath string) error {
	args := extractAudioArgs(videoPath, audioPath)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, string(out))
	}
	log.Debug("extracted audio", "video", videoPath, "audio", audioPath)
	return nil
}

func extractAudioArgs(videoPath, audioPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		audioPath,
	}
}
