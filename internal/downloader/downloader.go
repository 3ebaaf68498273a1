package downloader

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/yungbote/debate-analyzer-backend/internal/pkg/logger"
)

// Config controls where downloads land and what quality is requested.
type Config struct {
	// OutputDir receives videos/ and subtitles/ subdirectories.
	OutputDir string
	// Format is a yt-dlp format selector; empty uses a sane mp4 default.
	Format string
	// Subtitles downloads available subtitle tracks alongside the video.
	Subtitles bool
}

// Downloader wraps the yt-dlp command line tool for fetching debate
// videos. Requires yt-dlp on PATH.
type Downloader struct {
	log *logger.Logger
	cfg Config
}

func New(log *logger.Logger, cfg Config) *Downloader {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Format == "" {
		cfg.Format = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	}
	return &Downloader{
		log: log.With("service", "Downloader"),
		cfg: cfg,
	}
}

// Download fetches one video and returns the output template path yt-dlp
// wrote to (with its %(ext)s placeholder intact, as the final extension
// depends on the selected format).
func (d *Downloader) Download(ctx context.Context, rawURL string) (string, error) {
	if err := ValidateURL(rawURL); err != nil {
		return "", err
	}
	videoDir := filepath.Join(d.cfg.OutputDir, "videos")
	if err := os.MkdirAll(videoDir, 0o755); err != nil {
		return "", fmt.Errorf("create video dir: %w", err)
	}
	if d.cfg.Subtitles {
		if err := os.MkdirAll(filepath.Join(d.cfg.OutputDir, "subtitles"), 0o755); err != nil {
			return "", fmt.Errorf("create subtitles dir: %w", err)
		}
	}

	outTemplate := filepath.Join(videoDir, "%(title)s-%(id)s.%(ext)s")
	args := d.buildArgs(rawURL, outTemplate)
	d.log.Info("downloading video", "url", rawURL)
	cmd := exec.CommandContext(ctx, "yt-dlp", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w: %s", err, string(out))
	}
	return outTemplate, nil
}

func (d *Downloader) buildArgs(rawURL, outTemplate string) []string {
	args := []string{
		"--no-playlist",
		"-f", d.cfg.Format,
		"-o", outTemplate,
	}
	if d.cfg.Subtitles {
		args = append(args,
			"--write-subs",
			"--write-auto-subs",
			"--sub-langs", "en.*",
			"--convert-subs", "srt",
		)
	}
	return append(args, rawURL)
}

// ValidateURL accepts http(s) URLs on known video hosts. The allow-list
// keeps the shell-out surface narrow.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	switch host {
	case "youtube.com", "m.youtube.com", "youtu.be", "youtube-nocookie.com":
		return nil
	default:
		return fmt.Errorf("unsupported video host %q", host)
	}
}
