package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
	"github.com/yungbote/debate-analyzer-backend/internal/stats"
)

const samplePayload = `{
	"transcription": [
		{"start": 0, "end": 2.5, "text": "hello there", "speaker": "SPEAKER_00"},
		{"start": 2.5, "end": 4, "text": "hi", "speaker": null},
		{"text": "no timestamps"}
	],
	"duration": 4.0,
	"speakers_count": 2,
	"model": "large-v3"
}`

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestPayloadLoaderLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debate_transcription.json")
	if err := os.WriteFile(path, []byte(samplePayload), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}

	loader := NewPayloadLoader(testLogger(t), nil)
	for _, uri := range []string{path, "file://" + path} {
		payload, err := loader.Load(context.Background(), uri)
		if err != nil {
			t.Fatalf("load %q: %v", uri, err)
		}
		if payload.Duration == nil || *payload.Duration != 4.0 {
			t.Fatalf("duration: want=4.0 got=%v", payload.Duration)
		}
		if payload.SpeakersCount == nil || *payload.SpeakersCount != 2 {
			t.Fatalf("speakers_count: want=2 got=%v", payload.SpeakersCount)
		}
		segments := payload.Segments()
		if len(segments) != 3 {
			t.Fatalf("segments: want=3 got=%d", len(segments))
		}
		if segments[1].Speaker != stats.UnknownSpeaker {
			t.Fatalf("null speaker: want=%s got=%s", stats.UnknownSpeaker, segments[1].Speaker)
		}
		if segments[2].Start != 0 || segments[2].End != 0 {
			t.Fatalf("missing timestamps should default to 0, got=%+v", segments[2])
		}
	}
}

func TestPayloadLoaderRejectsGSWithoutBucket(t *testing.T) {
	loader := NewPayloadLoader(testLogger(t), nil)
	if _, err := loader.Load(context.Background(), "gs://bucket/key.json"); err == nil {
		t.Fatalf("load gs:// without bucket service: want error, got nil")
	}
}

func TestPayloadLoaderMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	loader := NewPayloadLoader(testLogger(t), nil)
	if _, err := loader.Load(context.Background(), path); err == nil {
		t.Fatalf("load malformed payload: want error, got nil")
	}
}

func TestParseGSURI(t *testing.T) {
	bucket, key, err := ParseGSURI("gs://my-bucket/transcripts/a_transcription.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if bucket != "my-bucket" || key != "transcripts/a_transcription.json" {
		t.Fatalf("parse: got bucket=%q key=%q", bucket, key)
	}
	for _, bad := range []string{"s3://b/k", "gs://", "gs://bucket", "gs://bucket/"} {
		if _, _, err := ParseGSURI(bad); err == nil {
			t.Fatalf("parse %q: want error, got nil", bad)
		}
	}
}
