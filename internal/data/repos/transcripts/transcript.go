package transcripts

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/debate-analyzer-backend/internal/domain"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/dbctx"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

type TranscriptRepo interface {
	Create(dbc dbctx.Context, transcript *types.Transcript) (*types.Transcript, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Transcript, error)
	GetBySourceURI(dbc dbctx.Context, sourceURI string) (*types.Transcript, error)
	List(dbc dbctx.Context, limit, offset int) ([]*types.Transcript, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type transcriptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTranscriptRepo(db *gorm.DB, baseLog *logger.Logger) TranscriptRepo {
	return &transcriptRepo{
		db:  db,
		log: baseLog.With("repo", "TranscriptRepo"),
	}
}

func (r *transcriptRepo) Create(dbc dbctx.Context, transcript *types.Transcript) (*types.Transcript, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(transcript).Error; err != nil {
		return nil, err
	}
	return transcript, nil
}

func (r *transcriptRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Transcript, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var transcript types.Transcript
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		First(&transcript).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &transcript, nil
}

func (r *transcriptRepo) GetBySourceURI(dbc dbctx.Context, sourceURI string) (*types.Transcript, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var transcript types.Transcript
	err := transaction.WithContext(dbc.Ctx).
		Where("source_uri = ?", sourceURI).
		First(&transcript).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &transcript, nil
}

func (r *transcriptRepo) List(dbc dbctx.Context, limit, offset int) ([]*types.Transcript, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Transcript
	if err := transaction.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *transcriptRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Transcript{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *transcriptRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	// Child rows are removed explicitly: the schema is migrated with
	// foreign key constraints disabled, so the CASCADE is app-side.
	var deleted bool
	err := transaction.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
		res := txx.Where("id = ?", id).Delete(&types.Transcript{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		if err := txx.Where("transcript_id = ?", id).Delete(&types.Segment{}).Error; err != nil {
			return err
		}
		if err := txx.Where("transcript_id = ?", id).Delete(&types.SpeakerMapping{}).Error; err != nil {
			return err
		}
		return txx.Where("transcript_id = ?", id).Delete(&types.SpeakerStats{}).Error
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
