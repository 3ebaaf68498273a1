package statsjob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
	"github.com/yungbote/debate-analyzer-backend/internal/services"
	"github.com/yungbote/debate-analyzer-backend/internal/stats"
)

const transcriptionSuffix = "_transcription.json"

// Config drives one batch run.
type Config struct {
	// Prefix limits the scan to one object-storage subtree, e.g. "transcripts/".
	Prefix string
	// Concurrency bounds the number of transcripts processed in parallel.
	Concurrency int
}

// Result summarizes a run. Failed transcripts are skipped and logged, not
// fatal; re-running is idempotent because artifacts are fully overwritten.
type Result struct {
	Processed int
	Skipped   int
}

// Job scans object storage for transcription artifacts and writes one
// speaker-stats parquet artifact next to each.
type Job struct {
	log    *logger.Logger
	bucket services.BucketService
	cfg    Config
}

func New(log *logger.Logger, bucket services.BucketService, cfg Config) *Job {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &Job{
		log:    log.With("job", "SpeakerStatsJob"),
		bucket: bucket,
		cfg:    cfg,
	}
}

// Run processes every *_transcription.json under the configured prefix.
// Returns an error only for infrastructure failures (listing); per-object
// failures increment Skipped.
func (j *Job) Run(ctx context.Context) (Result, error) {
	keys, err := j.bucket.ListKeys(ctx, j.cfg.Prefix)
	if err != nil {
		return Result{}, fmt.Errorf("list transcripts under %q: %w", j.cfg.Prefix, err)
	}

	var candidates []string
	for _, key := range keys {
		if strings.HasSuffix(key, transcriptionSuffix) {
			candidates = append(candidates, key)
		}
	}
	j.log.Info("scanning transcripts", "prefix", j.cfg.Prefix, "candidates", len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.cfg.Concurrency)
	results := make([]error, len(candidates))
	for i, key := range candidates {
		g.Go(func() error {
			results[i] = j.processOne(gctx, key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var res Result
	for i, procErr := range results {
		if procErr != nil {
			res.Skipped++
			j.log.Warn("skipping transcript", "key", candidates[i], "error", procErr)
			continue
		}
		res.Processed++
	}
	j.log.Info("stats job finished", "processed", res.Processed, "skipped", res.Skipped)
	return res, nil
}

func (j *Job) processOne(ctx context.Context, key string) error {
	data, err := j.bucket.DownloadFile(ctx, key)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	var payload services.TranscriptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	rows := stats.Aggregate(payload.Segments(), payload.Duration)
	artifact, err := stats.EncodeParquet(rows)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	outKey := StatsKeyFor(key)
	if err := j.bucket.UploadFile(ctx, outKey, bytes.NewReader(artifact)); err != nil {
		return fmt.Errorf("upload %q: %w", outKey, err)
	}
	j.log.Debug("wrote stats artifact", "key", outKey, "speakers", len(rows))
	return nil
}

// StatsKeyFor derives the output artifact key from a transcription key:
// <stem>_transcription.json -> <stem>_speaker_stats.parquet.
func StatsKeyFor(transcriptionKey string) string {
	stem := strings.TrimSuffix(transcriptionKey, transcriptionSuffix)
	return stem + "_speaker_stats.parquet"
}
