package stats

import (
	"bytes"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// ArtifactRow is the columnar artifact schema for persisted stat rows.
// The four core columns are required; everything else is optional so that
// readers of older artifacts (written before the extended stats existed)
// see nulls instead of errors.
type ArtifactRow struct {
	Speaker                  string   `parquet:"speaker_id_in_transcript"`
	TotalSeconds             float64  `parquet:"total_seconds"`
	SegmentCount             int64    `parquet:"segment_count"`
	WordCount                int64    `parquet:"word_count"`
	WPM                      *float64 `parquet:"wpm,optional"`
	AvgSegmentDurationSec    *float64 `parquet:"avg_segment_duration_sec,optional"`
	ShortestTalkSec          *float64 `parquet:"shortest_talk_sec,optional"`
	LongestTalkSec           *float64 `parquet:"longest_talk_sec,optional"`
	MedianSegmentDurationSec *float64 `parquet:"median_segment_duration_sec,optional"`
	TurnCount                *int64   `parquet:"turn_count,optional"`
	AvgTurnLengthSec         *float64 `parquet:"avg_turn_length_sec,optional"`
	AvgTurnLengthSegments    *float64 `parquet:"avg_turn_length_segments,optional"`
	IsFirstSpeaker           *bool    `parquet:"is_first_speaker,optional"`
	IsLastSpeaker            *bool    `parquet:"is_last_speaker,optional"`
	ShareSpeakingTime        *float64 `parquet:"share_speaking_time,optional"`
	ShareWords               *float64 `parquet:"share_words,optional"`
}

var requiredArtifactColumns = []string{
	"speaker_id_in_transcript",
	"total_seconds",
	"segment_count",
	"word_count",
}

// Artifact converts an aggregated row into the artifact shape.
func (r SpeakerStatRow) Artifact() ArtifactRow {
	turnCount := r.TurnCount
	isFirst := r.IsFirstSpeaker
	isLast := r.IsLastSpeaker
	return ArtifactRow{
		Speaker:                  r.Speaker,
		TotalSeconds:             r.TotalSeconds,
		SegmentCount:             r.SegmentCount,
		WordCount:                r.WordCount,
		WPM:                      r.WPM,
		AvgSegmentDurationSec:    r.AvgSegmentDurationSec,
		ShortestTalkSec:          r.ShortestTalkSec,
		LongestTalkSec:           r.LongestTalkSec,
		MedianSegmentDurationSec: r.MedianSegmentDurationSec,
		TurnCount:                &turnCount,
		AvgTurnLengthSec:         r.AvgTurnLengthSec,
		AvgTurnLengthSegments:    r.AvgTurnLengthSegments,
		IsFirstSpeaker:           &isFirst,
		IsLastSpeaker:            &isLast,
		ShareSpeakingTime:        r.ShareSpeakingTime,
		ShareWords:               r.ShareWords,
	}
}

// EncodeParquet serializes stat rows into a parquet file in memory.
func EncodeParquet(rows []SpeakerStatRow) ([]byte, error) {
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[ArtifactRow](&buf)
	artifacts := make([]ArtifactRow, 0, len(rows))
	for _, r := range rows {
		artifacts = append(artifacts, r.Artifact())
	}
	if len(artifacts) > 0 {
		if _, err := w.Write(artifacts); err != nil {
			return nil, fmt.Errorf("write parquet rows: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeParquet reads stat rows from a parquet artifact. Extended columns
// missing from older artifacts decode as null; missing core columns are an
// error.
func DecodeParquet(data []byte) ([]ArtifactRow, error) {
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open parquet artifact: %w", err)
	}
	fields := f.Schema().Fields()
	colIndex := make(map[string]int, len(fields))
	for i, field := range fields {
		colIndex[field.Name()] = i
	}
	for _, name := range requiredArtifactColumns {
		if _, ok := colIndex[name]; !ok {
			return nil, fmt.Errorf("parquet artifact missing required column %q", name)
		}
	}

	var out []ArtifactRow
	for _, rg := range f.RowGroups() {
		rowsReader := rg.Rows()
		buf := make([]parquet.Row, 64)
		for {
			n, err := rowsReader.ReadRows(buf)
			for _, row := range buf[:n] {
				out = append(out, artifactRowFromValues(row, colIndex))
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				rowsReader.Close()
				return nil, fmt.Errorf("read parquet rows: %w", err)
			}
		}
		if err := rowsReader.Close(); err != nil {
			return nil, fmt.Errorf("close parquet row reader: %w", err)
		}
	}
	return out, nil
}

// artifactRowFromValues maps one flat parquet row onto ArtifactRow by
// column index, treating nulls and absent columns as nil.
func artifactRowFromValues(row parquet.Row, colIndex map[string]int) ArtifactRow {
	values := make(map[int]parquet.Value, len(row))
	for _, v := range row {
		values[v.Column()] = v
	}
	str := func(name string) string {
		if i, ok := colIndex[name]; ok {
			if v, ok := values[i]; ok && !v.IsNull() {
				return v.String()
			}
		}
		return ""
	}
	f64 := func(name string) float64 {
		if i, ok := colIndex[name]; ok {
			if v, ok := values[i]; ok && !v.IsNull() {
				return v.Double()
			}
		}
		return 0
	}
	i64 := func(name string) int64 {
		if i, ok := colIndex[name]; ok {
			if v, ok := values[i]; ok && !v.IsNull() {
				return v.Int64()
			}
		}
		return 0
	}
	f64p := func(name string) *float64 {
		if i, ok := colIndex[name]; ok {
			if v, ok := values[i]; ok && !v.IsNull() {
				d := v.Double()
				return &d
			}
		}
		return nil
	}
	i64p := func(name string) *int64 {
		if i, ok := colIndex[name]; ok {
			if v, ok := values[i]; ok && !v.IsNull() {
				n := v.Int64()
				return &n
			}
		}
		return nil
	}
	boolp := func(name string) *bool {
		if i, ok := colIndex[name]; ok {
			if v, ok := values[i]; ok && !v.IsNull() {
				b := v.Boolean()
				return &b
			}
		}
		return nil
	}
	return ArtifactRow{
		Speaker:                  str("speaker_id_in_transcript"),
		TotalSeconds:             f64("total_seconds"),
		SegmentCount:             i64("segment_count"),
		WordCount:                i64("word_count"),
		WPM:                      f64p("wpm"),
		AvgSegmentDurationSec:    f64p("avg_segment_duration_sec"),
		ShortestTalkSec:          f64p("shortest_talk_sec"),
		LongestTalkSec:           f64p("longest_talk_sec"),
		MedianSegmentDurationSec: f64p("median_segment_duration_sec"),
		TurnCount:                i64p("turn_count"),
		AvgTurnLengthSec:         f64p("avg_turn_length_sec"),
		AvgTurnLengthSegments:    f64p("avg_turn_length_segments"),
		IsFirstSpeaker:           boolp("is_first_speaker"),
		IsLastSpeaker:            boolp("is_last_speaker"),
		ShareSpeakingTime:        f64p("share_speaking_time"),
		ShareWords:               f64p("share_words"),
	}
}
