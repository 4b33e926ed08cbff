// Package ytdlp adapts the yt-dlp executable to the VideoSource port.
package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

type Adapter struct {
	bin string
	log *zap.Logger
}

func New(binPath string, log *zap.Logger) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{bin: binPath, log: log}
}

// Download fetches a moderate-resolution MP4 into destDir; higher
// resolutions add nothing for transcription and slow the pipeline down.
func (a *Adapter) Download(ctx context.Context, url, destDir string) (string, error) {
	a.log.Info("downloading video", zap.String("url", url))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.bin,
		"-f", "best[height<=480][ext=mp4]/best[ext=mp4]/best",
		"--no-playlist",
		"--no-simulate",
		"--print", "after_move:filepath",
		"-o", filepath.Join(destDir, "%(id)s.%(ext)s"),
		url,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp download: %w\n%s", err, stderr.String())
	}

	path := lastNonEmptyLine(stdout.String())
	if path == "" {
		return "", fmt.Errorf("yt-dlp did not report a downloaded file for %s", url)
	}
	a.log.Info("download complete", zap.String("path", path))
	return path, nil
}

func lastNonEmptyLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if v := strings.TrimSpace(lines[i]); v != "" {
			return v
		}
	}
	return ""
}
