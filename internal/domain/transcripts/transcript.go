package transcripts

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transcript is one registered transcript artifact (e.g. one object-storage
// JSON payload produced by the transcription pipeline).
type Transcript struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SourceType    string         `gorm:"column:source_type;not null;default:gs" json:"source_type"`
	SourceURI     string         `gorm:"column:source_uri;size:1024;not null;uniqueIndex" json:"source_uri"`
	Title         *string        `gorm:"column:title;size:512" json:"title"`
	Duration      *float64       `gorm:"column:duration" json:"duration"`
	VideoPath     *string        `gorm:"column:video_path;size:1024" json:"video_path"`
	SpeakersCount *int           `gorm:"column:speakers_count" json:"speakers_count"`
	Metadata      datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;index" json:"created_at"`

	Segments     []Segment        `gorm:"foreignKey:TranscriptID;constraint:OnDelete:CASCADE" json:"-"`
	Mappings     []SpeakerMapping `gorm:"foreignKey:TranscriptID;constraint:OnDelete:CASCADE" json:"-"`
	SpeakerStats []SpeakerStats   `gorm:"foreignKey:TranscriptID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Transcript) TableName() string { return "transcript" }

// BeforeCreate assigns the primary key app-side so the schema works on both
// postgres and the sqlite dev fallback.
func (t *Transcript) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Segment is one stored utterance of a transcript, kept relational for fast
// stat queries.
type Segment struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TranscriptID          uuid.UUID `gorm:"type:uuid;not null;index" json:"transcript_id"`
	Start                 float64   `gorm:"column:start;not null" json:"start"`
	End                   float64   `gorm:"column:end;not null" json:"end"`
	Text                  string    `gorm:"column:text;type:text;not null" json:"text"`
	SpeakerIDInTranscript string    `gorm:"column:speaker_id_in_transcript;size:64;not null;index" json:"speaker_id_in_transcript"`
	Confidence            *float64  `gorm:"column:confidence" json:"confidence"`
}

func (Segment) TableName() string { return "segment" }

func (s *Segment) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SpeakerMapping maps a transcript-local diarization label (e.g. SPEAKER_00)
// to a canonical speaker profile. ProfileID is nil until an admin assigns it.
type SpeakerMapping struct {
	TranscriptID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"transcript_id"`
	SpeakerIDInTranscript string     `gorm:"column:speaker_id_in_transcript;size:64;primaryKey" json:"speaker_id_in_transcript"`
	SpeakerProfileID      *uuid.UUID `gorm:"type:uuid;column:speaker_profile_id;index" json:"speaker_profile_id"`
}

func (SpeakerMapping) TableName() string { return "speaker_mapping" }

// SpeakerStats is one persisted per-transcript, per-speaker stat row (core
// counters plus the extended stats). Nullable columns stay nil when the stat
// is undefined; persistence must not collapse nil to zero.
type SpeakerStats struct {
	TranscriptID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"transcript_id"`
	SpeakerIDInTranscript    string    `gorm:"column:speaker_id_in_transcript;size:64;primaryKey" json:"speaker_id_in_transcript"`
	TotalSeconds             float64   `gorm:"column:total_seconds;not null" json:"total_seconds"`
	SegmentCount             int64     `gorm:"column:segment_count;not null" json:"segment_count"`
	WordCount                int64     `gorm:"column:word_count;not null" json:"word_count"`
	WPM                      *float64  `gorm:"column:wpm" json:"wpm"`
	AvgSegmentDurationSec    *float64  `gorm:"column:avg_segment_duration_sec" json:"avg_segment_duration_sec"`
	ShortestTalkSec          *float64  `gorm:"column:shortest_talk_sec" json:"shortest_talk_sec"`
	LongestTalkSec           *float64  `gorm:"column:longest_talk_sec" json:"longest_talk_sec"`
	MedianSegmentDurationSec *float64  `gorm:"column:median_segment_duration_sec" json:"median_segment_duration_sec"`
	TurnCount                *int64    `gorm:"column:turn_count" json:"turn_count"`
	AvgTurnLengthSec         *float64  `gorm:"column:avg_turn_length_sec" json:"avg_turn_length_sec"`
	AvgTurnLengthSegments    *float64  `gorm:"column:avg_turn_length_segments" json:"avg_turn_length_segments"`
	IsFirstSpeaker           bool      `gorm:"column:is_first_speaker;not null;default:false" json:"is_first_speaker"`
	IsLastSpeaker            bool      `gorm:"column:is_last_speaker;not null;default:false" json:"is_last_speaker"`
	ShareSpeakingTime        *float64  `gorm:"column:share_speaking_time" json:"share_speaking_time"`
	ShareWords               *float64  `gorm:"column:share_words" json:"share_words"`
}

func (SpeakerStats) TableName() string { return "transcript_speaker_stats" }
