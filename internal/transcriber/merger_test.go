package transcriber

import (
	"testing"

	"github.com/yungbote/debate-analyzer-backend/internal/stats"
)

func TestMergeSpeakersPicksLargestOverlap(t *testing.T) {
	segments := []TranscriptSegment{
		{Start: 0, End: 4, Text: "mostly speaker zero"},
		{Start: 4, End: 6, Text: "entirely speaker one"},
	}
	speakers := []SpeakerSegment{
		{Start: 0, End: 3, Speaker: "SPEAKER_00"},
		{Start: 3, End: 10, Speaker: "SPEAKER_01"},
	}
	merged := MergeSpeakers(segments, speakers)
	if len(merged) != 2 {
		t.Fatalf("merged: want=2 got=%d", len(merged))
	}
	// Segment 0 overlaps SPEAKER_00 for 3s and SPEAKER_01 for 1s.
	if merged[0].Speaker != "SPEAKER_00" {
		t.Fatalf("segment 0 speaker: want=SPEAKER_00 got=%s", merged[0].Speaker)
	}
	if merged[0].Confidence == nil || *merged[0].Confidence != 0.75 {
		t.Fatalf("segment 0 confidence: want=0.75 got=%v", merged[0].Confidence)
	}
	if merged[1].Speaker != "SPEAKER_01" {
		t.Fatalf("segment 1 speaker: want=SPEAKER_01 got=%s", merged[1].Speaker)
	}
	if merged[1].Confidence == nil || *merged[1].Confidence != 1.0 {
		t.Fatalf("segment 1 confidence: want=1.0 got=%v", merged[1].Confidence)
	}
}

func TestMergeSpeakersNoOverlapYieldsUnknown(t *testing.T) {
	segments := []TranscriptSegment{{Start: 100, End: 105, Text: "orphan"}}
	speakers := []SpeakerSegment{{Start: 0, End: 10, Speaker: "SPEAKER_00"}}
	merged := MergeSpeakers(segments, speakers)
	if merged[0].Speaker != stats.UnknownSpeaker {
		t.Fatalf("speaker: want=%s got=%s", stats.UnknownSpeaker, merged[0].Speaker)
	}
	if merged[0].Confidence != nil {
		t.Fatalf("confidence: want=nil got=%v", *merged[0].Confidence)
	}
}

func TestMergeSpeakersEmptyDiarization(t *testing.T) {
	segments := []TranscriptSegment{{Start: 0, End: 2, Text: "hi"}}
	merged := MergeSpeakers(segments, nil)
	if merged[0].Speaker != stats.UnknownSpeaker {
		t.Fatalf("speaker: want=%s got=%s", stats.UnknownSpeaker, merged[0].Speaker)
	}
}

func TestOverlapSeconds(t *testing.T) {
	cases := []struct {
		aStart, aEnd, bStart, bEnd, want float64
	}{
		{0, 5, 3, 8, 2},
		{0, 5, 5, 8, 0},
		{0, 5, 6, 8, 0},
		{2, 4, 0, 10, 2},
	}
	for _, c := range cases {
		if got := overlapSeconds(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
			t.Fatalf("overlap(%v,%v,%v,%v): want=%v got=%v", c.aStart, c.aEnd, c.bStart, c.bEnd, c.want, got)
		}
	}
}
