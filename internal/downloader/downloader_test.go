package downloader

import (
	"strings"
	"testing"

	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=abc123",
		"https://youtu.be/abc123",
		"http://m.youtube.com/watch?v=abc123",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Fatalf("validate %q: unexpected error %v", u, err)
		}
	}
	invalid := []string{
		"ftp://youtube.com/watch?v=abc",
		"https://example.com/video.mp4",
		"file:///etc/passwd",
		"not a url at all ://",
	}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Fatalf("validate %q: want error, got nil", u)
		}
	}
}

func TestBuildArgsDefault(t *testing.T) {
	d := New(testLogger(t), Config{OutputDir: "/tmp/out"})
	args := d.buildArgs("https://youtu.be/abc", "/tmp/out/videos/%(title)s-%(id)s.%(ext)s")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "--no-playlist") {
		t.Fatalf("args missing --no-playlist: %s", joined)
	}
	if !strings.Contains(joined, "-f bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best") {
		t.Fatalf("args missing default format: %s", joined)
	}
	if strings.Contains(joined, "--write-subs") {
		t.Fatalf("subtitle flags present without Subtitles=true: %s", joined)
	}
	if args[len(args)-1] != "https://youtu.be/abc" {
		t.Fatalf("URL must be the final argument, got %s", args[len(args)-1])
	}
}

func TestBuildArgsWithSubtitles(t *testing.T) {
	d := New(testLogger(t), Config{OutputDir: "/tmp/out", Subtitles: true})
	args := d.buildArgs("https://youtu.be/abc", "template")
	joined := strings.Join(args, " ")
	for _, flag := range []string{"--write-subs", "--write-auto-subs", "--sub-langs en.*", "--convert-subs srt"} {
		if !strings.Contains(joined, flag) {
			t.Fatalf("args missing %q: %s", flag, joined)
		}
	}
}
