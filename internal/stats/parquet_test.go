package stats

import (
	"bytes"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestParquetRoundTrip(t *testing.T) {
	rows := Aggregate([]Segment{
		seg(0, 2, "hi there", "S0"),
		seg(2, 5, "hello world again", "S1"),
	}, nil) // no duration: share_speaking_time stays nil

	data, err := EncodeParquet(rows)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeParquet(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != len(rows) {
		t.Fatalf("rows: want=%d got=%d", len(rows), len(decoded))
	}
	for i, row := range rows {
		got := decoded[i]
		if got.Speaker != row.Speaker {
			t.Fatalf("row %d speaker: want=%s got=%s", i, row.Speaker, got.Speaker)
		}
		if got.TotalSeconds != row.TotalSeconds {
			t.Fatalf("row %d total_seconds: want=%v got=%v", i, row.TotalSeconds, got.TotalSeconds)
		}
		if got.SegmentCount != row.SegmentCount || got.WordCount != row.WordCount {
			t.Fatalf("row %d counts: want=%d/%d got=%d/%d",
				i, row.SegmentCount, row.WordCount, got.SegmentCount, got.WordCount)
		}
		if got.ShareSpeakingTime != nil {
			t.Fatalf("row %d share_speaking_time: want=nil got=%v", i, *got.ShareSpeakingTime)
		}
		if got.ShareWords == nil || row.ShareWords == nil || *got.ShareWords != *row.ShareWords {
			t.Fatalf("row %d share_words: want=%v got=%v", i, row.ShareWords, got.ShareWords)
		}
		if got.TurnCount == nil || *got.TurnCount != row.TurnCount {
			t.Fatalf("row %d turn_count: want=%d got=%v", i, row.TurnCount, got.TurnCount)
		}
		if got.IsFirstSpeaker == nil || *got.IsFirstSpeaker != row.IsFirstSpeaker {
			t.Fatalf("row %d is_first_speaker: want=%v got=%v", i, row.IsFirstSpeaker, got.IsFirstSpeaker)
		}
	}
}

// legacyStatRow is the artifact shape before the extended stats existed.
type legacyStatRow struct {
	Speaker      string  `parquet:"speaker_id_in_transcript"`
	TotalSeconds float64 `parquet:"total_seconds"`
	SegmentCount int64   `parquet:"segment_count"`
	WordCount    int64   `parquet:"word_count"`
}

func TestDecodeParquetLegacyArtifact(t *testing.T) {
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[legacyStatRow](&buf)
	if _, err := w.Write([]legacyStatRow{
		{Speaker: "S0", TotalSeconds: 12.5, SegmentCount: 3, WordCount: 40},
	}); err != nil {
		t.Fatalf("write legacy rows: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close legacy writer: %v", err)
	}

	decoded, err := DecodeParquet(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("rows: want=1 got=%d", len(decoded))
	}
	got := decoded[0]
	if got.Speaker != "S0" || got.TotalSeconds != 12.5 || got.SegmentCount != 3 || got.WordCount != 40 {
		t.Fatalf("core columns: got=%+v", got)
	}
	if got.WPM != nil || got.TurnCount != nil || got.IsFirstSpeaker != nil || got.ShareWords != nil {
		t.Fatalf("extended columns on legacy artifact should decode as nil, got=%+v", got)
	}
}

func TestDecodeParquetMissingRequiredColumn(t *testing.T) {
	type badRow struct {
		Speaker string  `parquet:"speaker_id_in_transcript"`
		Seconds float64 `parquet:"total_seconds"`
	}
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[badRow](&buf)
	if _, err := w.Write([]badRow{{Speaker: "S0", Seconds: 1}}); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	if _, err := DecodeParquet(buf.Bytes()); err == nil {
		t.Fatalf("decode: want error for missing required column, got nil")
	}
}

func TestEncodeParquetEmpty(t *testing.T) {
	data, err := EncodeParquet(nil)
	if err != nil {
		t.Fatalf("encode empty: %v", err)
	}
	decoded, err := DecodeParquet(data)
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("rows: want=0 got=%d", len(decoded))
	}
}
