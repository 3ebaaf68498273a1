package transcriber

import "github.com/yungbote/debate-analyzer-backend/internal/stats"

// MergeSpeakers assigns each transcript segment the diarization label whose
// span overlaps it the most. Segments with no overlapping speaker span get
// the unknown-speaker sentinel and no confidence.
//
// Confidence is the overlapping fraction of the segment's own duration,
// in [0,1].
func MergeSpeakers(segments []TranscriptSegment, speakers []SpeakerSegment) []MergedSegment {
	out := make([]MergedSegment, 0, len(segments))
	for _, seg := range segments {
		best, overlap := bestSpeakerFor(seg, speakers)
		merged := MergedSegment{
			Start:   seg.Start,
			End:     seg.End,
			Text:    seg.Text,
			Speaker: stats.UnknownSpeaker,
		}
		if best != "" {
			merged.Speaker = best
			if d := seg.End - seg.Start; d > 0 {
				conf := overlap / d
				if conf > 1 {
					conf = 1
				}
				merged.Confidence = &conf
			}
		}
		out = append(out, merged)
	}
	return out
}

func bestSpeakerFor(seg TranscriptSegment, speakers []SpeakerSegment) (string, float64) {
	var bestLabel string
	var bestOverlap float64
	for _, sp := range speakers {
		o := overlapSeconds(seg.Start, seg.End, sp.Start, sp.End)
		if o > bestOverlap {
			bestOverlap = o
			bestLabel = sp.Speaker
		}
	}
	return bestLabel, bestOverlap
}

func overlapSeconds(aStart, aEnd, bStart, bEnd float64) float64 {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}
