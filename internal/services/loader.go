package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
	"github.com/yungbote/debate-analyzer-backend/internal/stats"
)

// PayloadSegment mirrors one element of the transcription JSON's
// "transcription" array. Every field is optional in the wild, so all of
// them are pointers here and defaulted at conversion time.
type PayloadSegment struct {
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
	Text    *string  `json:"text"`
	Speaker *string  `json:"speaker"`
}

// TranscriptPayload is the decoded transcription artifact produced by the
// transcription pipeline.
type TranscriptPayload struct {
	Transcription  []PayloadSegment `json:"transcription"`
	Duration       *float64         `json:"duration"`
	VideoPath      *string          `json:"video_path"`
	SpeakersCount  *int             `json:"speakers_count"`
	Model          *string          `json:"model"`
	ProcessingTime *float64         `json:"processing_time"`
}

// Segments converts the raw payload entries into normalized segments,
// filling missing fields with their defaults.
func (p *TranscriptPayload) Segments() []stats.Segment {
	out := make([]stats.Segment, 0, len(p.Transcription))
	for _, raw := range p.Transcription {
		out = append(out, stats.NewSegment(raw.Start, raw.End, raw.Text, raw.Speaker))
	}
	return out
}

// PayloadLoader resolves a transcript source URI into its decoded payload.
// Supported forms: gs://bucket/key, file:///abs/path, and a plain local path.
type PayloadLoader interface {
	Load(ctx context.Context, sourceURI string) (*TranscriptPayload, error)
}

type payloadLoader struct {
	log    *logger.Logger
	bucket BucketService
}

// NewPayloadLoader builds a loader. bucket may be nil, in which case gs://
// URIs are rejected.
func NewPayloadLoader(log *logger.Logger, bucket BucketService) PayloadLoader {
	return &payloadLoader{
		log:    log.With("service", "PayloadLoader"),
		bucket: bucket,
	}
}

func (l *payloadLoader) Load(ctx context.Context, sourceURI string) (*TranscriptPayload, error) {
	data, err := l.fetch(ctx, sourceURI)
	if err != nil {
		return nil, err
	}
	var payload TranscriptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode transcript payload %q: %w", sourceURI, err)
	}
	return &payload, nil
}

func (l *payloadLoader) fetch(ctx context.Context, sourceURI string) ([]byte, error) {
	switch {
	case strings.HasPrefix(sourceURI, "gs://"):
		if l.bucket == nil {
			return nil, fmt.Errorf("gs:// source %q but no bucket service configured", sourceURI)
		}
		bucket, key, err := ParseGSURI(sourceURI)
		if err != nil {
			return nil, err
		}
		if bucket != l.bucket.BucketName() {
			return nil, fmt.Errorf("source bucket %q does not match configured bucket %q", bucket, l.bucket.BucketName())
		}
		return l.bucket.DownloadFile(ctx, key)
	case strings.HasPrefix(sourceURI, "file://"):
		return os.ReadFile(strings.TrimPrefix(sourceURI, "file://"))
	default:
		return os.ReadFile(sourceURI)
	}
}
