package transcriber

import (
	"context"
	"fmt"
	"sort"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

// DiarizerConfig bounds the speaker search for the diarization model.
type DiarizerConfig struct {
	LanguageCode    string
	MinSpeakerCount int
	MaxSpeakerCount int
}

// Diarizer produces speaker-labeled time spans for an audio object already
// uploaded to object storage (the Speech API reads gs:// URIs directly).
type Diarizer interface {
	Diarize(ctx context.Context, audioURI string) ([]SpeakerSegment, error)
	Close() error
}

type gcpDiarizer struct {
	log    *logger.Logger
	client *speech.Client
	cfg    DiarizerConfig
}

func NewGCPDiarizer(ctx context.Context, log *logger.Logger, cfg DiarizerConfig) (Diarizer, error) {
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "en-US"
	}
	if cfg.MinSpeakerCount <= 0 {
		cfg.MinSpeakerCount = 2
	}
	if cfg.MaxSpeakerCount < cfg.MinSpeakerCount {
		cfg.MaxSpeakerCount = cfg.MinSpeakerCount + 4
	}
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	return &gcpDiarizer{
		log:    log.With("service", "GCPDiarizer"),
		client: client,
		cfg:    cfg,
	}, nil
}

func (d *gcpDiarizer) Close() error { return d.client.Close() }

func (d *gcpDiarizer) Diarize(ctx context.Context, audioURI string) ([]SpeakerSegment, error) {
	req := &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: 16000,
			LanguageCode:    d.cfg.LanguageCode,
			DiarizationConfig: &speechpb.SpeakerDiarizationConfig{
				EnableSpeakerDiarization: true,
				MinSpeakerCount:          int32(d.cfg.MinSpeakerCount),
				MaxSpeakerCount:          int32(d.cfg.MaxSpeakerCount),
			},
			EnableWordTimeOffsets: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: audioURI},
		},
	}
	op, err := d.client.LongRunningRecognize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("start diarization: %w", err)
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("wait for diarization: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}

	// With diarization enabled, the final result carries every word of the
	// conversation tagged with its speaker.
	words := resp.Results[len(resp.Results)-1].GetAlternatives()
	if len(words) == 0 {
		return nil, nil
	}
	spans := speakerSpansFromWords(words[0].GetWords())
	d.log.Debug("diarization complete", "audio_uri", audioURI, "spans", len(spans))
	return spans, nil
}

// speakerSpansFromWords folds per-word speaker tags into maximal
// contiguous same-speaker spans.
func speakerSpansFromWords(words []*speechpb.WordInfo) []SpeakerSegment {
	var spans []SpeakerSegment
	for _, w := range words {
		label := fmt.Sprintf("SPEAKER_%02d", w.GetSpeakerTag())
		start := w.GetStartTime().AsDuration().Seconds()
		end := w.GetEndTime().AsDuration().Seconds()
		if n := len(spans); n > 0 && spans[n-1].Speaker == label {
			spans[n-1].End = end
			continue
		}
		spans = append(spans, SpeakerSegment{Start: start, End: end, Speaker: label})
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}
