package statsjob

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
	"github.com/yungbote/debate-analyzer-backend/internal/stats"
)

// fakeBucket is an in-memory object store for job tests.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeBucket(objects map[string][]byte) *fakeBucket {
	if objects == nil {
		objects = map[string][]byte{}
	}
	return &fakeBucket{objects: objects}
}

func (b *fakeBucket) UploadFile(ctx context.Context, key string, file io.Reader) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = data
	return nil
}

func (b *fakeBucket) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", key)
	}
	return data, nil
}

func (b *fakeBucket) DeleteFile(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *fakeBucket) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var keys []string
	for key := range b.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (b *fakeBucket) GetPublicURL(key string) string { return "https://example.test/" + key }

func (b *fakeBucket) BucketName() string { return "fake-bucket" }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

const goodPayload = `{
	"transcription": [
		{"start": 0, "end": 2, "text": "hello there", "speaker": "SPEAKER_00"},
		{"start": 2, "end": 5, "text": "hi", "speaker": "SPEAKER_01"}
	],
	"duration": 5.0
}`

func TestJobWritesStatsArtifacts(t *testing.T) {
	bucket := newFakeBucket(map[string][]byte{
		"transcripts/debate1_transcription.json": []byte(goodPayload),
		"transcripts/debate2_transcription.json": []byte(goodPayload),
		"transcripts/notes.txt":                  []byte("ignore me"),
	})
	job := New(testLogger(t), bucket, Config{Prefix: "transcripts/", Concurrency: 2})

	res, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Processed != 2 || res.Skipped != 0 {
		t.Fatalf("result: want processed=2 skipped=0 got=%+v", res)
	}
	for _, stem := range []string{"debate1", "debate2"} {
		key := "transcripts/" + stem + "_speaker_stats.parquet"
		data, err := bucket.DownloadFile(context.Background(), key)
		if err != nil {
			t.Fatalf("missing artifact %s: %v", key, err)
		}
		rows, err := stats.DecodeParquet(data)
		if err != nil {
			t.Fatalf("decode artifact %s: %v", key, err)
		}
		if len(rows) != 2 {
			t.Fatalf("artifact %s rows: want=2 got=%d", key, len(rows))
		}
		if rows[0].Speaker != "SPEAKER_00" || rows[1].Speaker != "SPEAKER_01" {
			t.Fatalf("artifact %s speakers: got=%s,%s", key, rows[0].Speaker, rows[1].Speaker)
		}
		if rows[0].ShareSpeakingTime == nil || *rows[0].ShareSpeakingTime != 0.4 {
			t.Fatalf("artifact %s share_speaking_time: want=0.4 got=%v", key, rows[0].ShareSpeakingTime)
		}
	}
}

func TestJobSkipsMalformedPayloads(t *testing.T) {
	bucket := newFakeBucket(map[string][]byte{
		"transcripts/good_transcription.json": []byte(goodPayload),
		"transcripts/bad_transcription.json":  []byte("{broken"),
	})
	job := New(testLogger(t), bucket, Config{Prefix: "transcripts/"})

	res, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Processed != 1 || res.Skipped != 1 {
		t.Fatalf("result: want processed=1 skipped=1 got=%+v", res)
	}
	if _, err := bucket.DownloadFile(context.Background(), "transcripts/good_speaker_stats.parquet"); err != nil {
		t.Fatalf("good artifact should still be written: %v", err)
	}
	if _, err := bucket.DownloadFile(context.Background(), "transcripts/bad_speaker_stats.parquet"); err == nil {
		t.Fatalf("bad artifact should not be written")
	}
}

func TestJobRerunOverwrites(t *testing.T) {
	bucket := newFakeBucket(map[string][]byte{
		"transcripts/one_transcription.json":    []byte(goodPayload),
		"transcripts/one_speaker_stats.parquet": []byte("stale"),
	})
	job := New(testLogger(t), bucket, Config{Prefix: "transcripts/"})
	if _, err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := bucket.DownloadFile(context.Background(), "transcripts/one_speaker_stats.parquet")
	if err != nil {
		t.Fatalf("artifact: %v", err)
	}
	if string(data) == "stale" {
		t.Fatalf("artifact was not overwritten")
	}
	if _, err := stats.DecodeParquet(data); err != nil {
		t.Fatalf("rewritten artifact should decode: %v", err)
	}
}

func TestStatsKeyFor(t *testing.T) {
	got := StatsKeyFor("transcripts/debate_2024_transcription.json")
	want := "transcripts/debate_2024_speaker_stats.parquet"
	if got != want {
		t.Fatalf("stats key: want=%s got=%s", want, got)
	}
}
