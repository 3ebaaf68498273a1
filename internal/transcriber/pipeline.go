package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
	"github.com/yungbote/debate-analyzer-backend/internal/services"
)

// PipelineConfig wires the transcription pipeline's collaborators.
type PipelineConfig struct {
	// WorkDir holds the intermediate WAV extraction.
	WorkDir string
	// TranscriptsPrefix is the object-storage subtree for output artifacts.
	TranscriptsPrefix string
	// AudioPrefix is the object-storage subtree for the extracted audio the
	// diarizer reads.
	AudioPrefix string
	ModelName   string
}

// Pipeline turns a local video file into a transcription artifact in
// object storage: extract audio, transcribe, diarize, merge, upload.
type Pipeline struct {
	log      *logger.Logger
	whisper  *WhisperTranscriber
	diarizer Diarizer
	bucket   services.BucketService
	cfg      PipelineConfig
}

func NewPipeline(
	log *logger.Logger,
	whisper *WhisperTranscriber,
	diarizer Diarizer,
	bucket services.BucketService,
	cfg PipelineConfig,
) *Pipeline {
	if cfg.WorkDir == "" {
		cfg.WorkDir = os.TempDir()
	}
	if cfg.TranscriptsPrefix == "" {
		cfg.TranscriptsPrefix = "transcripts/"
	}
	if cfg.AudioPrefix == "" {
		cfg.AudioPrefix = "audio/"
	}
	return &Pipeline{
		log:      log.With("service", "TranscriptionPipeline"),
		whisper:  whisper,
		diarizer: diarizer,
		bucket:   bucket,
		cfg:      cfg,
	}
}

// Run processes one video and returns the gs:// URI of the uploaded
// transcription artifact.
func (p *Pipeline) Run(ctx context.Context, videoPath string) (string, error) {
	started := time.Now()
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := filepath.Join(p.cfg.WorkDir, stem+".wav")

	if err := ExtractAudio(ctx, p.log, videoPath, audioPath); err != nil {
		return "", err
	}
	defer os.Remove(audioPath)

	segments, err := p.whisper.Transcribe(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	var speakers []SpeakerSegment
	if p.diarizer != nil {
		audioKey := p.cfg.AudioPrefix + stem + ".wav"
		audioFile, err := os.Open(audioPath)
		if err != nil {
			return "", fmt.Errorf("reopen audio: %w", err)
		}
		err = p.bucket.UploadFile(ctx, audioKey, audioFile)
		audioFile.Close()
		if err != nil {
			return "", fmt.Errorf("upload audio: %w", err)
		}
		audioURI := fmt.Sprintf("gs://%s/%s", p.bucket.BucketName(), audioKey)
		speakers, err = p.diarizer.Diarize(ctx, audioURI)
		if err != nil {
			return "", fmt.Errorf("diarize: %w", err)
		}
	}

	merged := MergeSpeakers(segments, speakers)
	payload := p.buildPayload(videoPath, merged, time.Since(started))

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	outKey := p.cfg.TranscriptsPrefix + stem + "_transcription.json"
	if err := p.bucket.UploadFile(ctx, outKey, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("upload transcription: %w", err)
	}
	uri := fmt.Sprintf("gs://%s/%s", p.bucket.BucketName(), outKey)
	p.log.Info("transcription artifact written",
		"uri", uri,
		"segments", len(merged),
		"elapsed", time.Since(started).String())
	return uri, nil
}

func (p *Pipeline) buildPayload(videoPath string, merged []MergedSegment, elapsed time.Duration) services.TranscriptPayload {
	payload := services.TranscriptPayload{
		Transcription: make([]services.PayloadSegment, 0, len(merged)),
	}
	distinct := map[string]struct{}{}
	var maxEnd float64
	for i := range merged {
		m := merged[i]
		payload.Transcription = append(payload.Transcription, services.PayloadSegment{
			Start:   &merged[i].Start,
			End:     &merged[i].End,
			Text:    &merged[i].Text,
			Speaker: &merged[i].Speaker,
		})
		distinct[m.Speaker] = struct{}{}
		if m.End > maxEnd {
			maxEnd = m.End
		}
	}
	if maxEnd > 0 {
		payload.Duration = &maxEnd
	}
	payload.VideoPath = &videoPath
	n := len(distinct)
	payload.SpeakersCount = &n
	if p.cfg.ModelName != "" {
		model := p.cfg.ModelName
		payload.Model = &model
	}
	seconds := elapsed.Seconds()
	payload.ProcessingTime = &seconds
	return payload
}
