package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/debate-analyzer-backend/internal/data/repos"
	types "github.com/yungbote/debate-analyzer-backend/internal/domain"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/dbctx"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
	"github.com/yungbote/debate-analyzer-backend/internal/stats"
)

// TranscriptDetail is a transcript together with its segments, speaker
// mappings, and persisted stat rows.
type TranscriptDetail struct {
	Transcript *types.Transcript       `json:"transcript"`
	Segments   []*types.Segment        `json:"segments"`
	Mappings   []*types.SpeakerMapping `json:"speaker_mappings"`
	Stats      []*types.SpeakerStats   `json:"speaker_stats"`
}

// MappingAssignment is one admin-supplied label-to-profile assignment.
type MappingAssignment struct {
	SpeakerIDInTranscript string     `json:"speaker_id_in_transcript" binding:"required"`
	SpeakerProfileID      *uuid.UUID `json:"speaker_profile_id"`
}

type TranscriptService interface {
	RegisterFromURI(ctx context.Context, sourceURI string, title *string) (*types.Transcript, bool, error)
	Get(ctx context.Context, id uuid.UUID) (*TranscriptDetail, error)
	List(ctx context.Context, limit, offset int) ([]*types.Transcript, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.Transcript, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SaveMappings(ctx context.Context, id uuid.UUID, assignments []MappingAssignment) ([]*types.SpeakerMapping, error)
	RecomputeStats(ctx context.Context, id uuid.UUID) ([]*types.SpeakerStats, error)
	VideoURL(ctx context.Context, id uuid.UUID) (*string, error)
}

type transcriptService struct {
	log         *logger.Logger
	db          *gorm.DB
	loader      PayloadLoader
	bucket      BucketService
	transcripts repos.TranscriptRepo
	segments    repos.SegmentRepo
	mappings    repos.SpeakerMappingRepo
	statRows    repos.SpeakerStatsRepo
}

func NewTranscriptService(
	log *logger.Logger,
	db *gorm.DB,
	loader PayloadLoader,
	bucket BucketService,
	transcripts repos.TranscriptRepo,
	segments repos.SegmentRepo,
	mappings repos.SpeakerMappingRepo,
	statRows repos.SpeakerStatsRepo,
) TranscriptService {
	return &transcriptService{
		log:         log.With("service", "TranscriptService"),
		db:          db,
		loader:      loader,
		bucket:      bucket,
		transcripts: transcripts,
		segments:    segments,
		mappings:    mappings,
		statRows:    statRows,
	}
}

// RegisterFromURI ingests one transcription artifact. Idempotent on
// source_uri: re-registering an already-known URI returns the existing
// transcript with created=false and changes nothing.
func (s *transcriptService) RegisterFromURI(ctx context.Context, sourceURI string, title *string) (*types.Transcript, bool, error) {
	dbc := dbctx.New(ctx)
	existing, err := s.transcripts.GetBySourceURI(dbc, sourceURI)
	if err != nil {
		return nil, false, fmt.Errorf("lookup transcript by source uri: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	payload, err := s.loader.Load(ctx, sourceURI)
	if err != nil {
		return nil, false, fmt.Errorf("load transcript payload: %w", err)
	}
	normalized := payload.Segments()
	statRows := stats.Aggregate(normalized, payload.Duration)

	var transcript *types.Transcript
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: ctx, Tx: tx}
		transcript = &types.Transcript{
			SourceType:    sourceTypeFor(sourceURI),
			SourceURI:     sourceURI,
			Title:         title,
			Duration:      payload.Duration,
			VideoPath:     payload.VideoPath,
			SpeakersCount: payload.SpeakersCount,
		}
		if transcript.SpeakersCount == nil {
			n := len(statRows)
			transcript.SpeakersCount = &n
		}
		if _, err := s.transcripts.Create(txc, transcript); err != nil {
			return fmt.Errorf("create transcript: %w", err)
		}

		segmentRows := make([]*types.Segment, 0, len(normalized))
		for _, seg := range normalized {
			segmentRows = append(segmentRows, &types.Segment{
				TranscriptID:          transcript.ID,
				Start:                 seg.Start,
				End:                   seg.End,
				Text:                  seg.Text,
				SpeakerIDInTranscript: seg.Speaker,
			})
		}
		if _, err := s.segments.CreateBatch(txc, segmentRows); err != nil {
			return fmt.Errorf("create segments: %w", err)
		}

		// One mapping row per diarization label, unassigned until an
		// admin links it to a speaker profile.
		mappingRows := make([]*types.SpeakerMapping, 0, len(statRows))
		for _, row := range statRows {
			mappingRows = append(mappingRows, &types.SpeakerMapping{
				TranscriptID:          transcript.ID,
				SpeakerIDInTranscript: row.Speaker,
			})
		}
		if _, err := s.mappings.CreateBatch(txc, mappingRows); err != nil {
			return fmt.Errorf("create speaker mappings: %w", err)
		}

		return s.statRows.ReplaceForTranscript(txc, transcript.ID, statModels(transcript.ID, statRows))
	})
	if err != nil {
		return nil, false, err
	}
	s.log.Info("registered transcript",
		"transcript_id", transcript.ID,
		"source_uri", sourceURI,
		"segments", len(normalized),
		"speakers", len(statRows))
	return transcript, true, nil
}

func (s *transcriptService) Get(ctx context.Context, id uuid.UUID) (*TranscriptDetail, error) {
	dbc := dbctx.New(ctx)
	transcript, err := s.transcripts.GetByID(dbc, id)
	if err != nil || transcript == nil {
		return nil, err
	}
	segments, err := s.segments.ListByTranscript(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	mappings, err := s.mappings.ListByTranscript(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	statRows, err := s.statRows.ListByTranscript(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	return &TranscriptDetail{
		Transcript: transcript,
		Segments:   segments,
		Mappings:   mappings,
		Stats:      statRows,
	}, nil
}

func (s *transcriptService) List(ctx context.Context, limit, offset int) ([]*types.Transcript, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.transcripts.List(dbctx.New(ctx), limit, offset)
}

func (s *transcriptService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.Transcript, error) {
	dbc := dbctx.New(ctx)
	transcript, err := s.transcripts.GetByID(dbc, id)
	if err != nil || transcript == nil {
		return nil, err
	}
	if err := s.transcripts.UpdateFields(dbc, id, updates); err != nil {
		return nil, fmt.Errorf("update transcript: %w", err)
	}
	return s.transcripts.GetByID(dbc, id)
}

func (s *transcriptService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.transcripts.Delete(dbctx.New(ctx), id)
}

// SaveMappings applies the given assignments; labels without a row in the
// transcript are rejected rather than created.
func (s *transcriptService) SaveMappings(ctx context.Context, id uuid.UUID, assignments []MappingAssignment) ([]*types.SpeakerMapping, error) {
	dbc := dbctx.New(ctx)
	transcript, err := s.transcripts.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if transcript == nil {
		return nil, nil
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: ctx, Tx: tx}
		for _, a := range assignments {
			found, err := s.mappings.Set(txc, id, a.SpeakerIDInTranscript, a.SpeakerProfileID)
			if err != nil {
				return fmt.Errorf("set mapping %q: %w", a.SpeakerIDInTranscript, err)
			}
			if !found {
				return fmt.Errorf("unknown speaker label %q for transcript %s", a.SpeakerIDInTranscript, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.mappings.ListByTranscript(dbc, id)
}

// RecomputeStats re-aggregates from the persisted segments and replaces
// the stat rows. Produces the same numbers as registration because both
// paths run the same aggregation over the same normalized segments.
func (s *transcriptService) RecomputeStats(ctx context.Context, id uuid.UUID) ([]*types.SpeakerStats, error) {
	dbc := dbctx.New(ctx)
	transcript, err := s.transcripts.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if transcript == nil {
		return nil, nil
	}
	segmentRows, err := s.segments.ListByTranscript(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	normalized := make([]stats.Segment, 0, len(segmentRows))
	for _, row := range segmentRows {
		normalized = append(normalized, stats.Segment{
			Start:   row.Start,
			End:     row.End,
			Text:    row.Text,
			Speaker: row.SpeakerIDInTranscript,
		})
	}
	statRows := stats.Aggregate(normalized, transcript.Duration)
	if err := s.statRows.ReplaceForTranscript(dbc, id, statModels(id, statRows)); err != nil {
		return nil, fmt.Errorf("replace stats: %w", err)
	}
	return s.statRows.ListByTranscript(dbc, id)
}

// VideoURL resolves the transcript's stored video path to a fetchable URL.
// gs:// paths map to their public bucket URL; other paths are returned
// as-is. Nil when the transcript is missing or has no video.
func (s *transcriptService) VideoURL(ctx context.Context, id uuid.UUID) (*string, error) {
	transcript, err := s.transcripts.GetByID(dbctx.New(ctx), id)
	if err != nil || transcript == nil {
		return nil, err
	}
	if transcript.VideoPath == nil || *transcript.VideoPath == "" {
		return nil, nil
	}
	path := *transcript.VideoPath
	if s.bucket != nil {
		if _, key, err := ParseGSURI(path); err == nil {
			url := s.bucket.GetPublicURL(key)
			return &url, nil
		}
	}
	return &path, nil
}

func statModels(transcriptID uuid.UUID, rows []stats.SpeakerStatRow) []*types.SpeakerStats {
	out := make([]*types.SpeakerStats, 0, len(rows))
	for _, r := range rows {
		turnCount := r.TurnCount
		out = append(out, &types.SpeakerStats{
			TranscriptID:             transcriptID,
			SpeakerIDInTranscript:    r.Speaker,
			TotalSeconds:             r.TotalSeconds,
			SegmentCount:             r.SegmentCount,
			WordCount:                r.WordCount,
			WPM:                      r.WPM,
			AvgSegmentDurationSec:    r.AvgSegmentDurationSec,
			ShortestTalkSec:          r.ShortestTalkSec,
			LongestTalkSec:           r.LongestTalkSec,
			MedianSegmentDurationSec: r.MedianSegmentDurationSec,
			TurnCount:                &turnCount,
			AvgTurnLengthSec:         r.AvgTurnLengthSec,
			AvgTurnLengthSegments:    r.AvgTurnLengthSegments,
			IsFirstSpeaker:           r.IsFirstSpeaker,
			IsLastSpeaker:            r.IsLastSpeaker,
			ShareSpeakingTime:        r.ShareSpeakingTime,
			ShareWords:               r.ShareWords,
		})
	}
	return out
}

func sourceTypeFor(sourceURI string) string {
	if len(sourceURI) >= 5 && sourceURI[:5] == "gs://" {
		return "gs"
	}
	return "file"
}
