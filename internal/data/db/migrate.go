package db

import (
	_ "embed"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gopkg.in/yaml.v3"

	types "github.com/yungbote/debate-analyzer-backend/internal/domain"
)

//go:embed stat_catalog.yaml
var statCatalogYAML []byte

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Speakers
		&types.SpeakerProfile{},
		&types.StatGroup{},
		&types.StatDefinition{},

		// Transcripts
		&types.Transcript{},
		&types.Segment{},
		&types.SpeakerMapping{},
		&types.SpeakerStats{},
	)
}

type statCatalog struct {
	Groups []types.StatGroup `yaml:"groups"`
}

// SeedStatCatalog upserts the display catalog of stat groups and
// definitions. Safe to run on every startup.
func SeedStatCatalog(db *gorm.DB) error {
	var catalog statCatalog
	if err := yaml.Unmarshal(statCatalogYAML, &catalog); err != nil {
		return fmt.Errorf("parse stat catalog: %w", err)
	}
	for _, group := range catalog.Groups {
		definitions := group.StatDefinitions
		group.StatDefinitions = nil
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"key", "label", "sort_order"}),
		}).Create(&group).Error; err != nil {
			return fmt.Errorf("seed stat group %q: %w", group.Key, err)
		}
		for _, def := range definitions {
			def.GroupID = group.ID
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "stat_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"group_id", "label", "sort_order"}),
			}).Create(&def).Error; err != nil {
				return fmt.Errorf("seed stat definition %q: %w", def.StatKey, err)
			}
		}
	}
	return nil
}
