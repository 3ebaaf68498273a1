package speakers

import (
	"gorm.io/gorm"

	types "github.com/yungbote/debate-analyzer-backend/internal/domain"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/dbctx"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

type StatCatalogRepo interface {
	ListGroups(dbc dbctx.Context) ([]*types.StatGroup, error)
}

type statCatalogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStatCatalogRepo(db *gorm.DB, baseLog *logger.Logger) StatCatalogRepo {
	return &statCatalogRepo{
		db:  db,
		log: baseLog.With("repo", "StatCatalogRepo"),
	}
}

func (r *statCatalogRepo) ListGroups(dbc dbctx.Context) ([]*types.StatGroup, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.StatGroup
	err := transaction.WithContext(dbc.Ctx).
		Preload("StatDefinitions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("sort_order ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
