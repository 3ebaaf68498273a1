package transcripts

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/debate-analyzer-backend/internal/domain"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/dbctx"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

type SegmentRepo interface {
	CreateBatch(dbc dbctx.Context, segments []*types.Segment) ([]*types.Segment, error)
	ListByTranscript(dbc dbctx.Context, transcriptID uuid.UUID) ([]*types.Segment, error)
	ListBySpeakerProfile(dbc dbctx.Context, speakerProfileID uuid.UUID) ([]*types.Segment, error)
}

type segmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSegmentRepo(db *gorm.DB, baseLog *logger.Logger) SegmentRepo {
	return &segmentRepo{
		db:  db,
		log: baseLog.With("repo", "SegmentRepo"),
	}
}

func (r *segmentRepo) CreateBatch(dbc dbctx.Context, segments []*types.Segment) ([]*types.Segment, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(segments) == 0 {
		return []*types.Segment{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).CreateInBatches(&segments, 500).Error; err != nil {
		return nil, err
	}
	return segments, nil
}

func (r *segmentRepo) ListByTranscript(dbc dbctx.Context, transcriptID uuid.UUID) ([]*types.Segment, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Segment
	if err := transaction.WithContext(dbc.Ctx).
		Where("transcript_id = ?", transcriptID).
		Order(`"start" ASC`).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListBySpeakerProfile returns every segment attributed to a canonical
// speaker, across all transcripts, via the speaker mapping join.
func (r *segmentRepo) ListBySpeakerProfile(dbc dbctx.Context, speakerProfileID uuid.UUID) ([]*types.Segment, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Segment
	err := transaction.WithContext(dbc.Ctx).
		Model(&types.Segment{}).
		Joins(`JOIN speaker_mapping ON speaker_mapping.transcript_id = segment.transcript_id
			AND speaker_mapping.speaker_id_in_transcript = segment.speaker_id_in_transcript`).
		Where("speaker_mapping.speaker_profile_id = ?", speakerProfileID).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
