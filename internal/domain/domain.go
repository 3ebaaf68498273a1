package domain

import (
	"github.com/yungbote/debate-analyzer-backend/internal/domain/speakers"
	"github.com/yungbote/debate-analyzer-backend/internal/domain/transcripts"
)

type Transcript = transcripts.Transcript
type Segment = transcripts.Segment
type SpeakerMapping = transcripts.SpeakerMapping
type SpeakerStats = transcripts.SpeakerStats

type SpeakerProfile = speakers.SpeakerProfile
type StatGroup = speakers.StatGroup
type StatDefinition = speakers.StatDefinition
