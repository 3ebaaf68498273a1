package stats

import "sort"

// SpeakerStatRow is the per-speaker output of Aggregate. Pointer fields
// are null when the statistic is undefined (zero speaking time, missing
// transcript duration, zero total words); consumers must preserve the
// null vs 0 distinction.
type SpeakerStatRow struct {
	Speaker                  string
	TotalSeconds             float64
	SegmentCount             int64
	WordCount                int64
	WPM                      *float64
	AvgSegmentDurationSec    *float64
	ShortestTalkSec          *float64
	LongestTalkSec           *float64
	MedianSegmentDurationSec *float64
	TurnCount                int64
	AvgTurnLengthSec         *float64
	AvgTurnLengthSegments    *float64
	IsFirstSpeaker           bool
	IsLastSpeaker            bool
	ShareSpeakingTime        *float64
	ShareWords               *float64
}

// accumulator collects one speaker's running totals during the two passes.
type accumulator struct {
	totalSeconds     float64
	segmentCount     int64
	wordCount        int64
	segmentDurations []float64
	turnDurations    []float64
}

// Aggregate computes one stat row per distinct speaker label in segments,
// returned in label-sorted order. transcriptDuration, when present and
// positive, enables the speaking-time share; otherwise that share is null.
//
// The function is pure: no I/O, no retained state, identical output for
// identical input. Empty input yields an empty (non-nil) slice.
func Aggregate(segments []Segment, transcriptDuration *float64) []SpeakerStatRow {
	acc := make(map[string]*accumulator)
	var totalWords int64
	var firstSpeaker, lastSpeaker string

	// Pass 1: per-segment accumulation.
	for i, seg := range segments {
		a := acc[seg.Speaker]
		if a == nil {
			a = &accumulator{}
			acc[seg.Speaker] = a
		}
		d := seg.Duration()
		w := int64(seg.WordCount())
		a.totalSeconds += d
		a.segmentCount++
		a.wordCount += w
		a.segmentDurations = append(a.segmentDurations, d)
		totalWords += w
		if i == 0 {
			firstSpeaker = seg.Speaker
		}
		lastSpeaker = seg.Speaker
	}

	// Pass 2: turn detection. A turn is a maximal run of consecutive
	// same-speaker segments; its duration is the sum of member segment
	// durations, so avg_turn_length_sec stays consistent with
	// total_seconds / turn_count.
	if len(segments) > 0 {
		currentSpeaker := segments[0].Speaker
		runDuration := 0.0
		for _, seg := range segments {
			if seg.Speaker != currentSpeaker {
				acc[currentSpeaker].turnDurations = append(acc[currentSpeaker].turnDurations, runDuration)
				currentSpeaker = seg.Speaker
				runDuration = 0
			}
			runDuration += seg.Duration()
		}
		acc[currentSpeaker].turnDurations = append(acc[currentSpeaker].turnDurations, runDuration)
	}

	labels := make([]string, 0, len(acc))
	for label := range acc {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	rows := make([]SpeakerStatRow, 0, len(labels))
	for _, label := range labels {
		a := acc[label]
		row := SpeakerStatRow{
			Speaker:        label,
			TotalSeconds:   a.totalSeconds,
			SegmentCount:   a.segmentCount,
			WordCount:      a.wordCount,
			IsFirstSpeaker: label == firstSpeaker,
			IsLastSpeaker:  label == lastSpeaker,
		}
		if a.totalSeconds > 0 {
			wpm := float64(a.wordCount) / (a.totalSeconds / 60.0)
			row.WPM = &wpm
		}
		if a.segmentCount > 0 {
			avg := a.totalSeconds / float64(a.segmentCount)
			row.AvgSegmentDurationSec = &avg
			med := median(a.segmentDurations)
			row.MedianSegmentDurationSec = &med
		}
		if len(a.turnDurations) > 0 {
			shortest, longest := minMax(a.turnDurations)
			row.ShortestTalkSec = &shortest
			row.LongestTalkSec = &longest
		}
		// A speaker with segments always has at least one turn; keep a
		// defensive floor of 1 so the divisions below cannot blow up.
		row.TurnCount = int64(len(a.turnDurations))
		if row.TurnCount == 0 {
			row.TurnCount = 1
		}
		avgTurnSec := a.totalSeconds / float64(row.TurnCount)
		row.AvgTurnLengthSec = &avgTurnSec
		avgTurnSegs := float64(a.segmentCount) / float64(row.TurnCount)
		row.AvgTurnLengthSegments = &avgTurnSegs
		if transcriptDuration != nil && *transcriptDuration > 0 {
			share := a.totalSeconds / *transcriptDuration
			row.ShareSpeakingTime = &share
		}
		if totalWords > 0 {
			share := float64(a.wordCount) / float64(totalWords)
			row.ShareWords = &share
		}
		rows = append(rows, row)
	}
	return rows
}

func minMax(values []float64) (min, max float64) {
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// median returns the standard median: the middle value for odd counts,
// the mean of the two middle values for even counts.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}
