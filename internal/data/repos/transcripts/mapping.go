package transcripts

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/debate-analyzer-backend/internal/domain"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/dbctx"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

type SpeakerMappingRepo interface {
	CreateBatch(dbc dbctx.Context, mappings []*types.SpeakerMapping) ([]*types.SpeakerMapping, error)
	ListByTranscript(dbc dbctx.Context, transcriptID uuid.UUID) ([]*types.SpeakerMapping, error)
	Set(dbc dbctx.Context, transcriptID uuid.UUID, speakerIDInTranscript string, speakerProfileID *uuid.UUID) (bool, error)
	CountTranscriptsForProfile(dbc dbctx.Context, speakerProfileID uuid.UUID) (int64, error)
}

type speakerMappingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSpeakerMappingRepo(db *gorm.DB, baseLog *logger.Logger) SpeakerMappingRepo {
	return &speakerMappingRepo{
		db:  db,
		log: baseLog.With("repo", "SpeakerMappingRepo"),
	}
}

func (r *speakerMappingRepo) CreateBatch(dbc dbctx.Context, mappings []*types.SpeakerMapping) ([]*types.SpeakerMapping, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(mappings) == 0 {
		return []*types.SpeakerMapping{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *speakerMappingRepo) ListByTranscript(dbc dbctx.Context, transcriptID uuid.UUID) ([]*types.SpeakerMapping, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.SpeakerMapping
	if err := transaction.WithContext(dbc.Ctx).
		Where("transcript_id = ?", transcriptID).
		Order("speaker_id_in_transcript ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Set assigns (or clears, with nil) the speaker profile for one
// transcript/label pair. Returns false when no such mapping row exists;
// mappings are created at registration time, never here.
func (r *speakerMappingRepo) Set(dbc dbctx.Context, transcriptID uuid.UUID, speakerIDInTranscript string, speakerProfileID *uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.SpeakerMapping{}).
		Where("transcript_id = ? AND speaker_id_in_transcript = ?", transcriptID, speakerIDInTranscript).
		Update("speaker_profile_id", speakerProfileID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *speakerMappingRepo) CountTranscriptsForProfile(dbc dbctx.Context, speakerProfileID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	err := transaction.WithContext(dbc.Ctx).
		Model(&types.SpeakerMapping{}).
		Where("speaker_profile_id = ?", speakerProfileID).
		Distinct("transcript_id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
