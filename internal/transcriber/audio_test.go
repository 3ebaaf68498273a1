package transcriber

import (
	"strings"
	"testing"
)

func TestExtractAudioArgs(t *testing.T) {
	args := extractAudioArgs("videos/debate.mp4", "audio/debate.wav")
	joined := strings.Join(args, " ")
	want := "-y -i videos/debate.mp4 -vn -acodec pcm_s16le -ar 16000 -ac 1 audio/debate.wav"
	if joined != want {
		t.Fatalf("ffmpeg args:\nwant=%s\ngot= %s", want, joined)
	}
}
