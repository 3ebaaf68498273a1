package speakers

// StatGroup is a display grouping for speaker stats (e.g. "Turn-taking").
// Groups and definitions are a seeded catalog, not user data.
type StatGroup struct {
	ID        int    `gorm:"primaryKey;autoIncrement" json:"id" yaml:"id"`
	Key       string `gorm:"column:key;size:64;not null;uniqueIndex" json:"key" yaml:"key"`
	Label     string `gorm:"column:label;size:255;not null" json:"label" yaml:"label"`
	SortOrder int    `gorm:"column:sort_order;not null;default:0" json:"sort_order" yaml:"sort_order"`

	StatDefinitions []StatDefinition `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"stats,omitempty" yaml:"stats"`
}

func (StatGroup) TableName() string { return "speaker_stat_group" }

// StatDefinition describes a single stat key for display: its label and
// position within a group.
type StatDefinition struct {
	StatKey   string `gorm:"column:stat_key;size:64;primaryKey" json:"stat_key" yaml:"stat_key"`
	GroupID   int    `gorm:"column:group_id;not null" json:"group_id" yaml:"-"`
	Label     string `gorm:"column:label;size:255;not null" json:"label" yaml:"label"`
	SortOrder int    `gorm:"column:sort_order;not null;default:0" json:"sort_order" yaml:"sort_order"`
}

func (StatDefinition) TableName() string { return "speaker_stat_definition" }
