package services

import (
	"testing"

	"github.com/yungbote/debate-analyzer-backend/internal/data/repos"
	types "github.com/yungbote/debate-analyzer-backend/internal/domain"
)

func f64(v float64) *float64 { return &v }

func i64(v int64) *int64 { return &v }

func TestCombineStatsEmpty(t *testing.T) {
	o := CombineStats(nil)
	if o.TranscriptCount != 0 {
		t.Fatalf("transcript_count: want=0 got=%d", o.TranscriptCount)
	}
	if o.WPM != nil || o.ShareWords != nil || o.ShortestTalkSec != nil {
		t.Fatalf("optional stats on empty input should be nil, got=%+v", o)
	}
}

func TestCombineStatsSumsAndMeans(t *testing.T) {
	rows := []*repos.StatsWithTranscript{
		{SpeakerStats: types.SpeakerStats{
			TotalSeconds: 60, SegmentCount: 10, WordCount: 100,
			TurnCount: i64(4), WPM: f64(100),
			ShortestTalkSec: f64(2), LongestTalkSec: f64(20),
			ShareWords:     f64(0.5),
			IsFirstSpeaker: true,
		}},
		{SpeakerStats: types.SpeakerStats{
			TotalSeconds: 40, SegmentCount: 5, WordCount: 80,
			TurnCount: i64(2), WPM: f64(120),
			ShortestTalkSec: f64(5), LongestTalkSec: f64(30),
			ShareWords:    f64(0.25),
			IsLastSpeaker: true,
		}},
	}
	o := CombineStats(rows)
	if o.TranscriptCount != 2 {
		t.Fatalf("transcript_count: want=2 got=%d", o.TranscriptCount)
	}
	if o.TotalSeconds != 100 || o.SegmentCount != 15 || o.WordCount != 180 || o.TurnCount != 6 {
		t.Fatalf("sums: got total=%v segments=%d words=%d turns=%d",
			o.TotalSeconds, o.SegmentCount, o.WordCount, o.TurnCount)
	}
	if o.FirstSpeakerIn != 1 || o.LastSpeakerIn != 1 {
		t.Fatalf("first/last counts: want=1/1 got=%d/%d", o.FirstSpeakerIn, o.LastSpeakerIn)
	}
	if o.WPM == nil || *o.WPM != 110 {
		t.Fatalf("wpm mean: want=110 got=%v", o.WPM)
	}
	if o.ShareWords == nil || *o.ShareWords != 0.375 {
		t.Fatalf("share_words mean: want=0.375 got=%v", o.ShareWords)
	}
	if o.ShortestTalkSec == nil || *o.ShortestTalkSec != 2 {
		t.Fatalf("shortest_talk_sec: want=2 got=%v", o.ShortestTalkSec)
	}
	if o.LongestTalkSec == nil || *o.LongestTalkSec != 30 {
		t.Fatalf("longest_talk_sec: want=30 got=%v", o.LongestTalkSec)
	}
}

func TestCombineStatsSkipsNilFields(t *testing.T) {
	rows := []*repos.StatsWithTranscript{
		{SpeakerStats: types.SpeakerStats{TotalSeconds: 10, SegmentCount: 1, WordCount: 5, WPM: f64(30)}},
		{SpeakerStats: types.SpeakerStats{TotalSeconds: 20, SegmentCount: 2, WordCount: 0}},
	}
	o := CombineStats(rows)
	// Mean over the rows that actually carry the stat, not over all rows.
	if o.WPM == nil || *o.WPM != 30 {
		t.Fatalf("wpm mean over non-nil rows: want=30 got=%v", o.WPM)
	}
	if o.ShareSpeakingTime != nil {
		t.Fatalf("share_speaking_time: want=nil got=%v", *o.ShareSpeakingTime)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Jane Doe", "jane-doe"},
		{"  Jean-Luc   Picard ", "jean-luc-picard"},
		{"O'Brien", "o-brien"},
		{"Speaker 2", "speaker-2"},
		{"---", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Fatalf("slugify(%q): want=%q got=%q", c.in, c.want, got)
		}
	}
}
