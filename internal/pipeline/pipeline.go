package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/econclip/econclip/internal/clipfind"
	"github.com/econclip/econclip/internal/domain/topics"
	"github.com/econclip/econclip/internal/ports/adapters/ffmpeg"
	"github.com/econclip/econclip/internal/ports/adapters/openaiasr"
	"github.com/econclip/econclip/internal/ports/adapters/openaillm"
	"github.com/econclip/econclip/internal/ports/adapters/ytdlp"
	"github.com/econclip/econclip/internal/types"
	"github.com/econclip/econclip/internal/usecase"
)

type Config struct {
	VideoURL     string
	Descriptions []string
	Category     string
	OutDir       string
	// CacheDir is the base directory for local artifacts (media, audio,
	// transcripts). If empty, defaults to ".cache".
	CacheDir      string
	AspectRatio   string
	Quality       string
	BurnSubtitles bool
	Refine        bool

	YTDLPPath   string
	FFmpegPath  string
	FFprobePath string

	OpenAIAPIKey string
	GPTModel     string
	WhisperModel string
	// OpenAIBaseURL optionally redirects API calls, e.g. through a proxy.
	// Hosts outside OpenAIAllowedHosts are rejected.
	OpenAIBaseURL      string
	OpenAIAllowedHosts []string

	Finder        clipfind.Config
	Categories    topics.Categories
	SpecificTerms []string

	Logger *zap.Logger
}

func (c Config) Validate() error {
	if err := c.ValidateSource(); err != nil {
		return err
	}
	if len(c.Descriptions) == 0 {
		return errors.New("at least one clip description is required")
	}
	for _, d := range c.Descriptions {
		if strings.TrimSpace(d) == "" {
			return errors.New("clip description must not be blank")
		}
	}
	switch c.AspectRatio {
	case "", "16:9", "9:16":
	default:
		return fmt.Errorf("aspect ratio must be 16:9 or 9:16, got %q", c.AspectRatio)
	}
	switch c.Quality {
	case "", "fast", "medium", "high":
	default:
		return fmt.Errorf("quality must be fast, medium or high, got %q", c.Quality)
	}
	if c.Finder.TargetMinSeconds < 0 || c.Finder.TargetMaxSeconds < 0 {
		return errors.New("target durations must not be negative")
	}
	if c.Finder.TargetMinSeconds > 0 && c.Finder.TargetMaxSeconds > 0 &&
		c.Finder.TargetMinSeconds > c.Finder.TargetMaxSeconds {
		return errors.New("target min duration must be <= target max duration")
	}
	return nil
}

// ValidateSource checks the fields every subcommand needs; topic
// extraction has no clip descriptions to check.
func (c Config) ValidateSource() error {
	if c.VideoURL == "" {
		return errors.New("video url is empty")
	}
	u, err := url.Parse(c.VideoURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid video url %q", c.VideoURL)
	}
	if c.OpenAIAPIKey == "" {
		return errors.New("openai api key is required")
	}
	return nil
}

func Run(ctx context.Context, cfg Config) error {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	uc, err := build(cfg, log)
	if err != nil {
		return err
	}

	cacheDir, err := prepareCacheDir(cfg)
	if err != nil {
		return err
	}
	log.Info("cache ready", zap.String("dir", cacheDir))

	outRoot := cfg.OutDir
	if outRoot == "" {
		outRoot = "out"
	}
	runOutDir := buildRunOutDir(outRoot, cfg.VideoURL, time.Now().UTC())
	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return err
	}
	log.Info("output run dir", zap.String("dir", runOutDir))

	res, err := uc.Run(ctx, usecase.Input{
		VideoURL:      cfg.VideoURL,
		Descriptions:  cfg.Descriptions,
		Category:      cfg.Category,
		AspectRatio:   cfg.AspectRatio,
		Quality:       cfg.Quality,
		BurnSubtitles: cfg.BurnSubtitles,
		Refine:        cfg.Refine,
		CacheDir:      cacheDir,
		OutDir:        runOutDir,
	})
	if err != nil {
		return err
	}

	for _, d := range res.NotFound {
		log.Warn("clip not found", zap.String("description", d))
	}

	b, err := json.MarshalIndent(res.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runOutDir, "manifest.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return err
	}
	log.Info("manifest written",
		zap.Int("clips", len(res.Manifest.Clips)),
		zap.String("path", manifestPath))
	return nil
}

// RunTopics downloads and transcribes the video, then extracts a
// timestamped topic outline.
func RunTopics(ctx context.Context, cfg Config) ([]types.TimestampedTopic, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	uc, err := build(cfg, log)
	if err != nil {
		return nil, err
	}
	cacheDir, err := prepareCacheDir(cfg)
	if err != nil {
		return nil, err
	}
	return uc.Topics(ctx, cfg.VideoURL, cacheDir)
}

func build(cfg Config, log *zap.Logger) (usecase.Usecase, error) {
	llm, err := openaillm.New(cfg.OpenAIAPIKey, cfg.GPTModel, cfg.OpenAIBaseURL, cfg.OpenAIAllowedHosts, log)
	if err != nil {
		return usecase.Usecase{}, fmt.Errorf("config: %w", err)
	}
	asr, err := openaiasr.New(cfg.OpenAIAPIKey, cfg.WhisperModel, log)
	if err != nil {
		return usecase.Usecase{}, fmt.Errorf("config: %w", err)
	}

	return usecase.New(usecase.Deps{
		Source:     ytdlp.New(cfg.YTDLPPath, log),
		Video:      ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath),
		ASR:        asr,
		Finder:     clipfind.New(llm, cfg.Finder, log),
		Classifier: topics.New(cfg.Categories, cfg.SpecificTerms),
		Log:        log,
	}), nil
}

func prepareCacheDir(cfg Config) (string, error) {
	base := cfg.CacheDir
	if base == "" {
		base = ".cache"
	}
	dir := filepath.Join(base, "runs", hash(cfg.VideoURL))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func buildRunOutDir(outRoot, videoURL string, now time.Time) string {
	name := normalizePathSegment(videoName(videoURL))
	if name == "" {
		name = "video"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", videoURL, now.UTC().UnixNano())
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, hash(runSeed)[:6]))
}

// videoName extracts a short identifier from the video URL: the v query
// parameter for watch-style URLs, otherwise the last path segment.
func videoName(videoURL string) string {
	u, err := url.Parse(videoURL)
	if err != nil {
		return videoURL
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) > 0 && segs[len(segs)-1] != "" {
		return segs[len(segs)-1]
	}
	return u.Host
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}
