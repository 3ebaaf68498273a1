package stats

import (
	"math"
	"reflect"
	"testing"
)

func seg(start, end float64, text, speaker string) Segment {
	return Segment{Start: start, End: end, Text: text, Speaker: speaker}
}

func f64ptr(v float64) *float64 { return &v }

func strptr(s string) *string { return &s }

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func rowFor(t *testing.T, rows []SpeakerStatRow, speaker string) SpeakerStatRow {
	t.Helper()
	for _, r := range rows {
		if r.Speaker == speaker {
			return r
		}
	}
	t.Fatalf("no stat row for speaker %q", speaker)
	return SpeakerStatRow{}
}

func TestAggregateEmptyInput(t *testing.T) {
	rows := Aggregate(nil, nil)
	if len(rows) != 0 {
		t.Fatalf("rows: want=0 got=%d", len(rows))
	}
	rows = Aggregate([]Segment{}, f64ptr(10))
	if len(rows) != 0 {
		t.Fatalf("rows: want=0 got=%d", len(rows))
	}
}

func TestAggregateSingleSpeakerTwoSegments(t *testing.T) {
	rows := Aggregate([]Segment{
		seg(0, 3, "one two three", "S0"),
		seg(3, 6, "four five", "S0"),
	}, nil)
	if len(rows) != 1 {
		t.Fatalf("rows: want=1 got=%d", len(rows))
	}
	r := rows[0]
	if r.Speaker != "S0" {
		t.Fatalf("speaker: want=S0 got=%s", r.Speaker)
	}
	if !approxEqual(r.TotalSeconds, 6.0) {
		t.Fatalf("total_seconds: want=6.0 got=%v", r.TotalSeconds)
	}
	if r.SegmentCount != 2 {
		t.Fatalf("segment_count: want=2 got=%d", r.SegmentCount)
	}
	if r.WordCount != 5 {
		t.Fatalf("word_count: want=5 got=%d", r.WordCount)
	}
	if r.TurnCount != 1 {
		t.Fatalf("turn_count: want=1 got=%d", r.TurnCount)
	}
	if r.AvgTurnLengthSec == nil || !approxEqual(*r.AvgTurnLengthSec, 6.0) {
		t.Fatalf("avg_turn_length_sec: want=6.0 got=%v", r.AvgTurnLengthSec)
	}
	if !r.IsFirstSpeaker || !r.IsLastSpeaker {
		t.Fatalf("first/last: want=true/true got=%v/%v", r.IsFirstSpeaker, r.IsLastSpeaker)
	}
	if r.ShareSpeakingTime != nil {
		t.Fatalf("share_speaking_time: want=nil got=%v", *r.ShareSpeakingTime)
	}
	if r.ShareWords == nil || !approxEqual(*r.ShareWords, 1.0) {
		t.Fatalf("share_words: want=1.0 got=%v", r.ShareWords)
	}
}

func TestAggregateTwoSpeakersWithDuration(t *testing.T) {
	rows := Aggregate([]Segment{
		seg(0, 2, "hi", "S0"),
		seg(2, 5, "hello world", "S1"),
	}, f64ptr(5.0))
	if len(rows) != 2 {
		t.Fatalf("rows: want=2 got=%d", len(rows))
	}
	s0 := rowFor(t, rows, "S0")
	if !approxEqual(s0.TotalSeconds, 2.0) {
		t.Fatalf("S0 total_seconds: want=2.0 got=%v", s0.TotalSeconds)
	}
	if s0.ShareSpeakingTime == nil || !approxEqual(*s0.ShareSpeakingTime, 0.4) {
		t.Fatalf("S0 share_speaking_time: want=0.4 got=%v", s0.ShareSpeakingTime)
	}
	if s0.ShareWords == nil || !approxEqual(*s0.ShareWords, 1.0/3.0) {
		t.Fatalf("S0 share_words: want=1/3 got=%v", s0.ShareWords)
	}
	if !s0.IsFirstSpeaker || s0.IsLastSpeaker {
		t.Fatalf("S0 first/last: want=true/false got=%v/%v", s0.IsFirstSpeaker, s0.IsLastSpeaker)
	}
	s1 := rowFor(t, rows, "S1")
	if s1.WPM == nil || !approxEqual(*s1.WPM, 40.0) {
		t.Fatalf("S1 wpm: want=40.0 got=%v", s1.WPM)
	}
	if !s1.IsLastSpeaker {
		t.Fatalf("S1 is_last_speaker: want=true got=false")
	}
}

func TestAggregateTurnDetection(t *testing.T) {
	rows := Aggregate([]Segment{
		seg(0, 1, "a", "S0"),
		seg(1, 3, "b", "S0"),
		seg(3, 4, "c", "S1"),
		seg(4, 10, "d", "S0"),
	}, nil)
	s0 := rowFor(t, rows, "S0")
	if s0.TurnCount != 2 {
		t.Fatalf("S0 turn_count: want=2 got=%d", s0.TurnCount)
	}
	if s0.ShortestTalkSec == nil || !approxEqual(*s0.ShortestTalkSec, 3.0) {
		t.Fatalf("S0 shortest_talk_sec: want=3.0 got=%v", s0.ShortestTalkSec)
	}
	if s0.LongestTalkSec == nil || !approxEqual(*s0.LongestTalkSec, 6.0) {
		t.Fatalf("S0 longest_talk_sec: want=6.0 got=%v", s0.LongestTalkSec)
	}
	s1 := rowFor(t, rows, "S1")
	if s1.TurnCount != 1 {
		t.Fatalf("S1 turn_count: want=1 got=%d", s1.TurnCount)
	}
}

func TestAggregateUnknownSpeakerNormalization(t *testing.T) {
	rows := Aggregate([]Segment{
		NewSegment(f64ptr(0), f64ptr(1), strptr("x"), nil),
	}, nil)
	if len(rows) != 1 {
		t.Fatalf("rows: want=1 got=%d", len(rows))
	}
	r := rows[0]
	if r.Speaker != UnknownSpeaker {
		t.Fatalf("speaker: want=%s got=%s", UnknownSpeaker, r.Speaker)
	}
	if r.ShareSpeakingTime != nil {
		t.Fatalf("share_speaking_time: want=nil got=%v", *r.ShareSpeakingTime)
	}
	if r.ShareWords == nil || !approxEqual(*r.ShareWords, 1.0) {
		t.Fatalf("share_words: want=1.0 got=%v", r.ShareWords)
	}
	if !r.IsFirstSpeaker || !r.IsLastSpeaker {
		t.Fatalf("first/last: want=true/true got=%v/%v", r.IsFirstSpeaker, r.IsLastSpeaker)
	}

	empty := ""
	if got := NormalizeSpeaker(&empty); got != UnknownSpeaker {
		t.Fatalf("normalize empty: want=%s got=%s", UnknownSpeaker, got)
	}
}

func TestAggregateMedianSegmentDuration(t *testing.T) {
	// Odd count: middle value.
	rows := Aggregate([]Segment{
		seg(0, 1, "a", "S0"),
		seg(1, 4, "b", "S0"),
		seg(4, 9, "c", "S0"),
	}, nil)
	r := rows[0]
	if r.MedianSegmentDurationSec == nil || !approxEqual(*r.MedianSegmentDurationSec, 3.0) {
		t.Fatalf("median (odd): want=3.0 got=%v", r.MedianSegmentDurationSec)
	}

	// Even count: mean of the two middle values.
	rows = Aggregate([]Segment{
		seg(0, 1, "a", "S0"),
		seg(1, 3, "b", "S0"),
		seg(3, 7, "c", "S0"),
		seg(7, 13, "d", "S0"),
	}, nil)
	r = rows[0]
	if r.MedianSegmentDurationSec == nil || !approxEqual(*r.MedianSegmentDurationSec, 3.0) {
		t.Fatalf("median (even): want=3.0 got=%v", r.MedianSegmentDurationSec)
	}
}

func TestAggregateZeroDurationSpeaker(t *testing.T) {
	rows := Aggregate([]Segment{
		seg(2, 2, "some words here", "S0"),
	}, f64ptr(10))
	r := rows[0]
	if r.WPM != nil {
		t.Fatalf("wpm: want=nil got=%v", *r.WPM)
	}
	if r.ShareSpeakingTime == nil || !approxEqual(*r.ShareSpeakingTime, 0.0) {
		t.Fatalf("share_speaking_time: want=0.0 got=%v", r.ShareSpeakingTime)
	}
	if r.WordCount != 3 {
		t.Fatalf("word_count: want=3 got=%d", r.WordCount)
	}
}

func TestAggregateZeroWordsDisablesWordShare(t *testing.T) {
	rows := Aggregate([]Segment{
		seg(0, 2, "", "S0"),
		seg(2, 4, "   ", "S1"),
	}, nil)
	for _, r := range rows {
		if r.ShareWords != nil {
			t.Fatalf("%s share_words: want=nil got=%v", r.Speaker, *r.ShareWords)
		}
	}
}

func TestAggregateNonPositiveDurationDisablesTimeShare(t *testing.T) {
	segments := []Segment{seg(0, 2, "a", "S0")}
	for _, d := range []*float64{nil, f64ptr(0), f64ptr(-1)} {
		rows := Aggregate(segments, d)
		if rows[0].ShareSpeakingTime != nil {
			t.Fatalf("share_speaking_time with duration=%v: want=nil got=%v", d, *rows[0].ShareSpeakingTime)
		}
	}
}

func TestAggregateConservation(t *testing.T) {
	segments := []Segment{
		seg(0, 1.5, "a b", "S0"),
		seg(1.5, 2, "c", "S1"),
		seg(2, 4, "d e f", "S1"),
		seg(4, 7, "g", "S2"),
		seg(7, 7.25, "h i", "S0"),
		seg(7.25, 9, "", "S0"),
	}
	rows := Aggregate(segments, f64ptr(9))

	var segmentCount, turnCount int64
	var totalSeconds float64
	for _, r := range rows {
		segmentCount += r.SegmentCount
		totalSeconds += r.TotalSeconds
		turnCount += r.TurnCount
	}
	if segmentCount != int64(len(segments)) {
		t.Fatalf("sum(segment_count): want=%d got=%d", len(segments), segmentCount)
	}
	var wantSeconds float64
	for _, s := range segments {
		wantSeconds += s.Duration()
	}
	if !approxEqual(totalSeconds, wantSeconds) {
		t.Fatalf("sum(total_seconds): want=%v got=%v", wantSeconds, totalSeconds)
	}
	// Runs: S0, S1, S2, S0 -> 4 maximal contiguous runs.
	if turnCount != 4 {
		t.Fatalf("sum(turn_count): want=4 got=%d", turnCount)
	}
}

func TestAggregateSortedAndIdempotent(t *testing.T) {
	segments := []Segment{
		seg(0, 1, "z", "S2"),
		seg(1, 2, "y", "S0"),
		seg(2, 3, "x", "S1"),
	}
	first := Aggregate(segments, f64ptr(3))
	second := Aggregate(segments, f64ptr(3))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated aggregation differs:\nfirst=%+v\nsecond=%+v", first, second)
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Speaker >= first[i].Speaker {
			t.Fatalf("rows not label-sorted: %s before %s", first[i-1].Speaker, first[i].Speaker)
		}
	}
}

func TestAggregateNegativeDurationPropagates(t *testing.T) {
	rows := Aggregate([]Segment{
		seg(5, 2, "oops", "S0"),
		seg(5, 8, "fine", "S0"),
	}, nil)
	r := rows[0]
	if !approxEqual(r.TotalSeconds, 0.0) {
		t.Fatalf("total_seconds: want=0.0 got=%v", r.TotalSeconds)
	}
	if r.WPM != nil {
		t.Fatalf("wpm: want=nil got=%v", *r.WPM)
	}
}

func TestNewSegmentDefaults(t *testing.T) {
	s := NewSegment(nil, nil, nil, nil)
	if s.Start != 0 || s.End != 0 || s.Text != "" || s.Speaker != UnknownSpeaker {
		t.Fatalf("defaults: got=%+v", s)
	}
	if s.Duration() != 0 {
		t.Fatalf("duration: want=0 got=%v", s.Duration())
	}
	if s.WordCount() != 0 {
		t.Fatalf("word_count: want=0 got=%d", s.WordCount())
	}
}
