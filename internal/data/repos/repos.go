package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/debate-analyzer-backend/internal/data/repos/speakers"
	"github.com/yungbote/debate-analyzer-backend/internal/data/repos/transcripts"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

type TranscriptRepo = transcripts.TranscriptRepo
type SegmentRepo = transcripts.SegmentRepo
type SpeakerMappingRepo = transcripts.SpeakerMappingRepo
type SpeakerStatsRepo = transcripts.SpeakerStatsRepo
type StatsWithTranscript = transcripts.StatsWithTranscript

type SpeakerProfileRepo = speakers.ProfileRepo
type StatCatalogRepo = speakers.StatCatalogRepo

func NewTranscriptRepo(db *gorm.DB, log *logger.Logger) TranscriptRepo {
	return transcripts.NewTranscriptRepo(db, log)
}

func NewSegmentRepo(db *gorm.DB, log *logger.Logger) SegmentRepo {
	return transcripts.NewSegmentRepo(db, log)
}

func NewSpeakerMappingRepo(db *gorm.DB, log *logger.Logger) SpeakerMappingRepo {
	return transcripts.NewSpeakerMappingRepo(db, log)
}

func NewSpeakerStatsRepo(db *gorm.DB, log *logger.Logger) SpeakerStatsRepo {
	return transcripts.NewSpeakerStatsRepo(db, log)
}

func NewSpeakerProfileRepo(db *gorm.DB, log *logger.Logger) SpeakerProfileRepo {
	return speakers.NewProfileRepo(db, log)
}

func NewStatCatalogRepo(db *gorm.DB, log *logger.Logger) StatCatalogRepo {
	return speakers.NewStatCatalogRepo(db, log)
}
