package speakers

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpeakerProfile is a canonical speaker (a person) that can appear in any
// number of transcripts via speaker mappings.
type SpeakerProfile struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName        string    `gorm:"column:first_name;size:255;not null" json:"first_name"`
	Surname          string    `gorm:"column:surname;size:255;not null" json:"surname"`
	Slug             *string   `gorm:"column:slug;size:255;uniqueIndex" json:"slug"`
	Bio              *string   `gorm:"column:bio;type:text" json:"bio"`
	ShortDescription *string   `gorm:"column:short_description;type:text" json:"short_description"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (SpeakerProfile) TableName() string { return "speaker_profile" }

func (p *SpeakerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DisplayName joins first name and surname for API responses.
func (p *SpeakerProfile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.Surname)
}
