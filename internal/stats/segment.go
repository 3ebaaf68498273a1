package stats

import "strings"

// UnknownSpeaker is the sentinel label for segments whose diarization
// label is missing or empty. Normalization happens at ingestion so every
// consumer sees identical label semantics.
const UnknownSpeaker = "SPEAKER_UNKNOWN"

// Segment is one timestamped, speaker-labeled utterance. Segments form an
// ordered sequence; ordering defines turn adjacency and first/last speaker.
type Segment struct {
	Start   float64
	End     float64
	Text    string
	Speaker string
}

// NewSegment builds a Segment from the tolerant wire shape where every
// field may be absent. Missing timestamps default to 0, missing text to
// the empty string, and a missing or empty speaker to UnknownSpeaker.
func NewSegment(start, end *float64, text, speaker *string) Segment {
	s := Segment{Speaker: NormalizeSpeaker(speaker)}
	if start != nil {
		s.Start = *start
	}
	if end != nil {
		s.End = *end
	}
	if text != nil {
		s.Text = *text
	}
	return s
}

// NormalizeSpeaker maps a nil or empty label to UnknownSpeaker.
func NormalizeSpeaker(speaker *string) string {
	if speaker == nil || *speaker == "" {
		return UnknownSpeaker
	}
	return *speaker
}

// Duration is end minus start. Inverted timestamps yield a negative
// value; the aggregator deliberately does not reject them.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// WordCount counts whitespace-delimited tokens in the segment text.
func (s Segment) WordCount() int {
	return len(strings.Fields(s.Text))
}
