package speakers

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/debate-analyzer-backend/internal/domain"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/dbctx"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

type ProfileRepo interface {
	Create(dbc dbctx.Context, profile *types.SpeakerProfile) (*types.SpeakerProfile, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.SpeakerProfile, error)
	GetBySlug(dbc dbctx.Context, slug string) (*types.SpeakerProfile, error)
	List(dbc dbctx.Context) ([]*types.SpeakerProfile, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{
		db:  db,
		log: baseLog.With("repo", "ProfileRepo"),
	}
}

func (r *profileRepo) Create(dbc dbctx.Context, profile *types.SpeakerProfile) (*types.SpeakerProfile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.SpeakerProfile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var profile types.SpeakerProfile
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.SpeakerProfile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var profile types.SpeakerProfile
	err := transaction.WithContext(dbc.Ctx).
		Where("slug = ?", slug).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) List(dbc dbctx.Context) ([]*types.SpeakerProfile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.SpeakerProfile
	if err := transaction.WithContext(dbc.Ctx).
		Order("surname ASC, first_name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *profileRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.SpeakerProfile{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *profileRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var deleted bool
	err := transaction.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
		res := txx.Where("id = ?", id).Delete(&types.SpeakerProfile{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		// Mappings keep their rows but lose the assignment.
		return txx.Model(&types.SpeakerMapping{}).
			Where("speaker_profile_id = ?", id).
			Update("speaker_profile_id", nil).Error
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
