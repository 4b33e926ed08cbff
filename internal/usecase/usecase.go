package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/econclip/econclip/internal/clipfind"
	"github.com/econclip/econclip/internal/domain/topics"
	"github.com/econclip/econclip/internal/ports"
	"github.com/econclip/econclip/internal/types"
)

type Deps struct {
	Source     ports.VideoSource
	Video      ports.VideoTool
	ASR        ports.ASR
	Finder     *clipfind.Finder
	Classifier *topics.Classifier
	Log        *zap.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return Usecase{d: d}
}

type Input struct {
	VideoURL     string
	Descriptions []string
	// Category is an optional manual override, validated against the
	// automatic classification before use.
	Category      string
	AspectRatio   string
	Quality       string
	BurnSubtitles bool
	Refine        bool
	CacheDir      string
	OutDir        string
}

type Result struct {
	Manifest types.Manifest
	// NotFound lists descriptions that resolved cleanly to "no match".
	NotFound []string
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	log := u.d.Log

	mediaPath, err := u.d.Source.Download(ctx, in.VideoURL, in.CacheDir)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if rmErr := os.Remove(mediaPath); rmErr != nil {
			log.Warn("could not remove downloaded media", zap.Error(rmErr))
		}
	}()

	transcript, err := u.transcript(ctx, mediaPath, in.CacheDir)
	if err != nil {
		return Result{}, err
	}

	srtPath := ""
	if in.BurnSubtitles {
		srtPath, err = u.subtitles(ctx, mediaPath, in.CacheDir)
		if err != nil {
			// Subtitles are an extra; the clip is still worth rendering.
			log.Warn("subtitle transcription failed, rendering without subtitles", zap.Error(err))
			srtPath = ""
		}
	}

	items := u.resolve(ctx, transcript, in.Descriptions)

	res := Result{Manifest: types.Manifest{Source: in.VideoURL}}
	for _, item := range items {
		if item.Err != nil {
			return Result{}, item.Err
		}
		if !item.Found {
			log.Warn("no clip found", zap.String("description", item.Description))
			res.NotFound = append(res.NotFound, item.Description)
			continue
		}

		r := item.Range
		refined := false
		if in.Refine {
			ref := u.d.Finder.RefineBoundaries(ctx, transcript, r.Start, r.End)
			if ref.Changed && ref.Confidence != types.ConfidenceLow && ref.End > ref.Start {
				log.Info("adopting refined boundaries",
					zap.Float64("start_sec", ref.Start),
					zap.Float64("end_sec", ref.End),
					zap.String("confidence", ref.Confidence),
					zap.String("reason", ref.Reason))
				r = types.TimeRange{Start: ref.Start, End: ref.End}
				refined = true
			}
		}

		category, confidence := u.categorize(in.Category, item.Description, transcript, r)

		clipName := fmt.Sprintf("%s_%.0fs_%.0fs.mp4", safeFileName(item.Description, 30), r.Start, r.End)
		relPath := filepath.Join(category, clipName)
		outPath := filepath.Join(in.OutDir, relPath)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return Result{}, err
		}

		err := u.d.Video.RenderClip(ctx, mediaPath, r.Start, r.End, outPath, ports.RenderOptions{
			AspectRatio: in.AspectRatio,
			Quality:     in.Quality,
			BurnSRT:     srtPath,
		})
		if err != nil {
			return Result{}, err
		}

		var suggested []string
		for _, s := range u.d.Classifier.Suggest(item.Description, transcript) {
			suggested = append(suggested, s.Category)
		}

		res.Manifest.Clips = append(res.Manifest.Clips, types.ManifestClip{
			Description: item.Description,
			StartSec:    r.Start,
			EndSec:      r.End,
			Category:    category,
			Confidence:  confidence,
			File:        filepath.ToSlash(relPath),
			Subtitles:   srtPath,
			Refined:     refined,
			Suggestions: suggested,
		})
	}
	return res, nil
}

// Topics produces a timestamped outline of the video without rendering
// anything. The downloaded media is kept only long enough to transcribe.
func (u Usecase) Topics(ctx context.Context, videoURL, cacheDir string) ([]types.TimestampedTopic, error) {
	mediaPath, err := u.d.Source.Download(ctx, videoURL, cacheDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.Remove(mediaPath); rmErr != nil {
			u.d.Log.Warn("could not remove downloaded media", zap.Error(rmErr))
		}
	}()

	transcript, err := u.transcript(ctx, mediaPath, cacheDir)
	if err != nil {
		return nil, err
	}
	return u.d.Finder.ExtractTopics(ctx, transcript), nil
}

// resolve uses the hard-failing single path for one description and the
// per-item isolated batch path for several.
func (u Usecase) resolve(ctx context.Context, transcript string, descriptions []string) []types.ClipSearchResult {
	if len(descriptions) == 1 {
		r, found, err := u.d.Finder.FindClipTimestamps(ctx, transcript, descriptions[0])
		return []types.ClipSearchResult{{Description: descriptions[0], Range: r, Found: found, Err: err}}
	}
	items := u.d.Finder.FindMultipleClips(ctx, transcript, descriptions)
	// Batch items keep their errors per-item so one bad description does
	// not abort the run.
	for i := range items {
		if items[i].Err != nil {
			u.d.Log.Error("batch item failed", zap.String("description", items[i].Description), zap.Error(items[i].Err))
			items[i].Err = nil
		}
	}
	return items
}

// categorize applies the manual override when it validates, otherwise
// the automatic classification.
func (u Usecase) categorize(override, description, transcript string, r types.TimeRange) (string, float64) {
	auto := u.d.Classifier.ClassifyCombined(description, transcript, r.Start, r.End)
	if override == "" {
		return auto.Primary, auto.Confidence
	}
	v := u.d.Classifier.Validate(override, description, transcript)
	if v.Valid {
		return override, v.Confidence
	}
	u.d.Log.Warn("manual category rejected",
		zap.String("category", override),
		zap.String("reason", v.Reason),
		zap.String("auto_category", auto.Primary))
	return auto.Primary, auto.Confidence
}

func (u Usecase) transcript(ctx context.Context, mediaPath, cacheDir string) (string, error) {
	cached := filepath.Join(cacheDir, "transcript.txt")
	if b, err := os.ReadFile(cached); err == nil && len(b) > 0 {
		u.d.Log.Info("using cached transcript", zap.String("path", cached))
		return string(b), nil
	}

	wav := filepath.Join(cacheDir, "audio.wav")
	if err := u.d.Video.ExtractAudioMono16k(ctx, mediaPath, wav); err != nil {
		return "", err
	}
	text, err := u.d.ASR.Transcribe(ctx, wav)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cached, []byte(text), 0o644); err != nil {
		u.d.Log.Warn("could not cache transcript", zap.Error(err))
	}
	return text, nil
}

func (u Usecase) subtitles(ctx context.Context, mediaPath, cacheDir string) (string, error) {
	cached := filepath.Join(cacheDir, "subtitles.srt")
	if b, err := os.ReadFile(cached); err == nil && len(b) > 0 {
		return cached, nil
	}
	wav := filepath.Join(cacheDir, "audio.wav")
	if _, err := os.Stat(wav); err != nil {
		if err := u.d.Video.ExtractAudioMono16k(ctx, mediaPath, wav); err != nil {
			return "", err
		}
	}
	srt, err := u.d.ASR.TranscribeSRT(ctx, wav)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cached, []byte(srt), 0o644); err != nil {
		return "", err
	}
	return cached, nil
}

// safeFileName reduces a description to a filesystem-friendly slug of at
// most maxRunes runes.
func safeFileName(s string, maxRunes int) string {
	var b strings.Builder
	prevDash := false
	n := 0
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if n >= maxRunes {
			break
		}
		n++
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
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "clip"
	}
	return out
}
