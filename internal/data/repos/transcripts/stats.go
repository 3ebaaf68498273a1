package transcripts

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/debate-analyzer-backend/internal/domain"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/dbctx"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

// StatsWithTranscript joins a stat row with the transcript it came from, for
// per-speaker breakdowns across transcripts.
type StatsWithTranscript struct {
	types.SpeakerStats
	TranscriptTitle     *string    `json:"transcript_title"`
	TranscriptCreatedAt *time.Time `json:"transcript_created_at"`
	TranscriptDuration  *float64   `json:"transcript_duration"`
	SpeakerProfileID    *uuid.UUID `json:"speaker_profile_id"`
}

type SpeakerStatsRepo interface {
	ReplaceForTranscript(dbc dbctx.Context, transcriptID uuid.UUID, rows []*types.SpeakerStats) error
	ListByTranscript(dbc dbctx.Context, transcriptID uuid.UUID) ([]*types.SpeakerStats, error)
	ListByProfile(dbc dbctx.Context, speakerProfileID uuid.UUID) ([]*StatsWithTranscript, error)
}

type speakerStatsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSpeakerStatsRepo(db *gorm.DB, baseLog *logger.Logger) SpeakerStatsRepo {
	return &speakerStatsRepo{
		db:  db,
		log: baseLog.With("repo", "SpeakerStatsRepo"),
	}
}

// ReplaceForTranscript deletes the transcript's existing stat rows and
// inserts the fresh set in one transaction, so recomputation is idempotent.
func (r *speakerStatsRepo) ReplaceForTranscript(dbc dbctx.Context, transcriptID uuid.UUID, rows []*types.SpeakerStats) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
		if err := txx.Where("transcript_id = ?", transcriptID).Delete(&types.SpeakerStats{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return txx.Create(&rows).Error
	})
}

func (r *speakerStatsRepo) ListByTranscript(dbc dbctx.Context, transcriptID uuid.UUID) ([]*types.SpeakerStats, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.SpeakerStats
	if err := transaction.WithContext(dbc.Ctx).
		Where("transcript_id = ?", transcriptID).
		Order("speaker_id_in_transcript ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *speakerStatsRepo) ListByProfile(dbc dbctx.Context, speakerProfileID uuid.UUID) ([]*StatsWithTranscript, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*StatsWithTranscript
	err := transaction.WithContext(dbc.Ctx).
		Model(&types.SpeakerStats{}).
		Select(`transcript_speaker_stats.*,
			transcript.title AS transcript_title,
			transcript.created_at AS transcript_created_at,
			transcript.duration AS transcript_duration,
			speaker_mapping.speaker_profile_id AS speaker_profile_id`).
		Joins(`JOIN speaker_mapping ON speaker_mapping.transcript_id = transcript_speaker_stats.transcript_id
			AND speaker_mapping.speaker_id_in_transcript = transcript_speaker_stats.speaker_id_in_transcript`).
		Joins("JOIN transcript ON transcript.id = transcript_speaker_stats.transcript_id").
		Where("speaker_mapping.speaker_profile_id = ?", speakerProfileID).
		Order("transcript.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
