package transcriber

import (
	"context"
	"fmt"
	"os"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/go-audio/wav"

	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

// WhisperConfig configures the local speech-to-text model.
type WhisperConfig struct {
	ModelPath string
	Language  string
}

// WhisperTranscriber produces timed transcript segments from a 16kHz mono
// WAV file using a local whisper.cpp model.
type WhisperTranscriber struct {
	log   *logger.Logger
	model whisper.Model
	cfg   WhisperConfig
}

func NewWhisperTranscriber(log *logger.Logger, cfg WhisperConfig) (*WhisperTranscriber, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("whisper model path is required")
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("whisper model not found at %s: %w", cfg.ModelPath, err)
	}
	model, err := whisper.New(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model: %w", err)
	}
	if cfg.Language == "" {
		cfg.Language = "auto"
	}
	return &WhisperTranscriber{
		log:   log.With("service", "WhisperTranscriber"),
		model: model,
		cfg:   cfg,
	}, nil
}

func (wt *WhisperTranscriber) Close() error {
	if wt.model != nil {
		return wt.model.Close()
	}
	return nil
}

// Transcribe runs the model over the given WAV file and returns the timed
// segments in order. The audio must already be 16kHz mono (see ExtractAudio).
func (wt *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) ([]TranscriptSegment, error) {
	samples, err := loadWAV(audioPath)
	if err != nil {
		return nil, fmt.Errorf("load audio: %w", err)
	}
	mctx, err := wt.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("create whisper context: %w", err)
	}
	if wt.cfg.Language != "" && wt.cfg.Language != "auto" {
		if err := mctx.SetLanguage(wt.cfg.Language); err != nil {
			return nil, fmt.Errorf("set language %q: %w", wt.cfg.Language, err)
		}
	}
	if err := mctx.Process(samples, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("process audio: %w", err)
	}

	var segments []TranscriptSegment
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		segment, err := mctx.NextSegment()
		if err != nil {
			break
		}
		segments = append(segments, TranscriptSegment{
			Start: segment.Start.Seconds(),
			End:   segment.End.Seconds(),
			Text:  segment.Text,
		})
	}
	wt.log.Debug("transcription complete", "audio", audioPath, "segments", len(segments))
	return segments, nil
}

// loadWAV decodes a WAV file into normalized float32 samples at whisper's
// sample rate. The ffmpeg extraction step already produces 16kHz mono
// 16-bit PCM, so no resampling is attempted here.
func loadWAV(path string) ([]float32, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read PCM data: %w", err)
	}
	if buf.Format.SampleRate != whisper.SampleRate {
		return nil, fmt.Errorf("audio must be %dHz, got %dHz (re-run extraction)", whisper.SampleRate, buf.Format.SampleRate)
	}
	if buf.Format.NumChannels != 1 {
		return nil, fmt.Errorf("audio must be mono, got %d channels", buf.Format.NumChannels)
	}

	maxVal := float32(int64(1) << uint(decoder.BitDepth-1))
	samples := make([]float32, len(buf.Data))
	for i, sample := range buf.Data {
		v := float32(sample) / maxVal
		if v > 1.0 {
			v = 1.0
		} else if v < -1.0 {
			v = -1.0
		}
		samples[i] = v
	}
	return samples, nil
}
