package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/debate-analyzer-backend/internal/data/repos"
	types "github.com/yungbote/debate-analyzer-backend/internal/domain"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/dbctx"
	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

// SpeakerOverview is the cross-transcript stat summary for one canonical
// speaker. Counters are exact sums; the rate, median, and share fields
// are unweighted means of the per-transcript values, which is an
// approximation (a mean of medians is not a median, and a mean of shares
// ignores each transcript's volume). Kept that way for display
// compatibility with the per-transcript numbers.
type SpeakerOverview struct {
	Profile                  *types.SpeakerProfile        `json:"profile"`
	TranscriptCount          int64                        `json:"transcript_count"`
	TotalSeconds             float64                      `json:"total_seconds"`
	SegmentCount             int64                        `json:"segment_count"`
	WordCount                int64                        `json:"word_count"`
	TurnCount                int64                        `json:"turn_count"`
	FirstSpeakerIn           int64                        `json:"first_speaker_in"`
	LastSpeakerIn            int64                        `json:"last_speaker_in"`
	WPM                      *float64                     `json:"wpm"`
	AvgSegmentDurationSec    *float64                     `json:"avg_segment_duration_sec"`
	MedianSegmentDurationSec *float64                     `json:"median_segment_duration_sec"`
	ShortestTalkSec          *float64                     `json:"shortest_talk_sec"`
	LongestTalkSec           *float64                     `json:"longest_talk_sec"`
	AvgTurnLengthSec         *float64                     `json:"avg_turn_length_sec"`
	AvgTurnLengthSegments    *float64                     `json:"avg_turn_length_segments"`
	ShareSpeakingTime        *float64                     `json:"share_speaking_time"`
	ShareWords               *float64                     `json:"share_words"`
	Transcripts              []*repos.StatsWithTranscript `json:"transcripts"`
}

type SpeakerService interface {
	Create(ctx context.Context, profile *types.SpeakerProfile) (*types.SpeakerProfile, error)
	Get(ctx context.Context, idOrSlug string) (*types.SpeakerProfile, error)
	List(ctx context.Context) ([]*types.SpeakerProfile, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.SpeakerProfile, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	GetOverview(ctx context.Context, idOrSlug string) (*SpeakerOverview, error)
	StatCatalog(ctx context.Context) ([]*types.StatGroup, error)
}

type speakerService struct {
	log      *logger.Logger
	profiles repos.SpeakerProfileRepo
	mappings repos.SpeakerMappingRepo
	statRows repos.SpeakerStatsRepo
	catalog  repos.StatCatalogRepo
}

func NewSpeakerService(
	log *logger.Logger,
	profiles repos.SpeakerProfileRepo,
	mappings repos.SpeakerMappingRepo,
	statRows repos.SpeakerStatsRepo,
	catalog repos.StatCatalogRepo,
) SpeakerService {
	return &speakerService{
		log:      log.With("service", "SpeakerService"),
		profiles: profiles,
		mappings: mappings,
		statRows: statRows,
		catalog:  catalog,
	}
}

func (s *speakerService) Create(ctx context.Context, profile *types.SpeakerProfile) (*types.SpeakerProfile, error) {
	if profile.Slug == nil {
		slug := Slugify(profile.FirstName + " " + profile.Surname)
		if slug != "" {
			profile.Slug = &slug
		}
	}
	return s.profiles.Create(dbctx.New(ctx), profile)
}

// Get resolves either a profile UUID or a slug.
func (s *speakerService) Get(ctx context.Context, idOrSlug string) (*types.SpeakerProfile, error) {
	dbc := dbctx.New(ctx)
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return s.profiles.GetByID(dbc, id)
	}
	return s.profiles.GetBySlug(dbc, idOrSlug)
}

func (s *speakerService) List(ctx context.Context) ([]*types.SpeakerProfile, error) {
	return s.profiles.List(dbctx.New(ctx))
}

func (s *speakerService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.SpeakerProfile, error) {
	dbc := dbctx.New(ctx)
	profile, err := s.profiles.GetByID(dbc, id)
	if err != nil || profile == nil {
		return nil, err
	}
	if err := s.profiles.UpdateFields(dbc, id, updates); err != nil {
		return nil, fmt.Errorf("update speaker profile: %w", err)
	}
	return s.profiles.GetByID(dbc, id)
}

func (s *speakerService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.profiles.Delete(dbctx.New(ctx), id)
}

func (s *speakerService) GetOverview(ctx context.Context, idOrSlug string) (*SpeakerOverview, error) {
	profile, err := s.Get(ctx, idOrSlug)
	if err != nil || profile == nil {
		return nil, err
	}
	dbc := dbctx.New(ctx)
	perTranscript, err := s.statRows.ListByProfile(dbc, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list stats for profile: %w", err)
	}
	overview := CombineStats(perTranscript)
	overview.Profile = profile
	return overview, nil
}

// StatCatalog returns the seeded display catalog of stat groups, each
// with its ordered definitions.
func (s *speakerService) StatCatalog(ctx context.Context) ([]*types.StatGroup, error) {
	return s.catalog.ListGroups(dbctx.New(ctx))
}

// CombineStats folds per-transcript stat rows into one overview. Exported
// so the aggregation semantics are testable without a database.
func CombineStats(rows []*repos.StatsWithTranscript) *SpeakerOverview {
	o := &SpeakerOverview{
		TranscriptCount: int64(len(rows)),
		Transcripts:     rows,
	}
	if len(rows) == 0 {
		return o
	}

	type meanAcc struct {
		sum float64
		n   int64
	}
	var wpm, avgSeg, medianSeg, avgTurnSec, avgTurnSegs, shareTime, shareWords meanAcc
	add := func(acc *meanAcc, v *float64) {
		if v != nil {
			acc.sum += *v
			acc.n++
		}
	}

	for _, r := range rows {
		o.TotalSeconds += r.TotalSeconds
		o.SegmentCount += r.SegmentCount
		o.WordCount += r.WordCount
		if r.TurnCount != nil {
			o.TurnCount += *r.TurnCount
		}
		if r.IsFirstSpeaker {
			o.FirstSpeakerIn++
		}
		if r.IsLastSpeaker {
			o.LastSpeakerIn++
		}
		add(&wpm, r.WPM)
		add(&avgSeg, r.AvgSegmentDurationSec)
		add(&medianSeg, r.MedianSegmentDurationSec)
		add(&avgTurnSec, r.AvgTurnLengthSec)
		add(&avgTurnSegs, r.AvgTurnLengthSegments)
		add(&shareTime, r.ShareSpeakingTime)
		add(&shareWords, r.ShareWords)
		if r.ShortestTalkSec != nil && (o.ShortestTalkSec == nil || *r.ShortestTalkSec < *o.ShortestTalkSec) {
			v := *r.ShortestTalkSec
			o.ShortestTalkSec = &v
		}
		if r.LongestTalkSec != nil && (o.LongestTalkSec == nil || *r.LongestTalkSec > *o.LongestTalkSec) {
			v := *r.LongestTalkSec
			o.LongestTalkSec = &v
		}
	}

	mean := func(acc meanAcc) *float64 {
		if acc.n == 0 {
			return nil
		}
		m := acc.sum / float64(acc.n)
		return &m
	}
	o.WPM = mean(wpm)
	o.AvgSegmentDurationSec = mean(avgSeg)
	o.MedianSegmentDurationSec = mean(medianSeg)
	o.AvgTurnLengthSec = mean(avgTurnSec)
	o.AvgTurnLengthSegments = mean(avgTurnSegs)
	o.ShareSpeakingTime = mean(shareTime)
	o.ShareWords = mean(shareWords)
	return o
}

// Slugify lowercases and dash-joins the alphanumeric runs of a name.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
