package transcriber

// TranscriptSegment is one timed text chunk from the speech-to-text model,
// with no speaker identity attached.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// SpeakerSegment is one timed span attributed to a diarization label.
type SpeakerSegment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// MergedSegment is a transcript segment with the speaker label assigned by
// the merger, plus the overlap confidence of that assignment.
type MergedSegment struct {
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Text       string   `json:"text"`
	Speaker    string   `json:"speaker"`
	Confidence *float64 `json:"confidence,omitempty"`
}
