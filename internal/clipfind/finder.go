// Package clipfind resolves free-text clip descriptions into validated
// timestamp ranges by querying a language model over a prepared
// transcript. Parse failures degrade to "not found"; only transport
// failures on the single-clip path surface as errors.
package clipfind

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/econclip/econclip/internal/domain/oracletext"
	"github.com/econclip/econclip/internal/ports"
	"github.com/econclip/econclip/internal/types"
)

// Config tunes transcript preparation and prompt construction. Zero
// values fall back to defaults.
type Config struct {
	// MaxTranscriptChars bounds the prepared transcript embedded in the
	// prompt; longer transcripts are reduced to head/middle/tail thirds.
	MaxTranscriptChars int
	// AssumedMaxDuration scales the per-line position hints, in seconds.
	AssumedMaxDuration float64
	// Target duration band; out-of-band clips are advisory only.
	TargetMinSeconds float64
	TargetMaxSeconds float64
	Temperature      float32
	MaxTokens        int
}

func (c Config) withDefaults() Config {
	if c.MaxTranscriptChars <= 0 {
		c.MaxTranscriptChars = 12000
	}
	if c.AssumedMaxDuration <= 0 {
		c.AssumedMaxDuration = 1800
	}
	if c.TargetMinSeconds <= 0 {
		c.TargetMinSeconds = 30
	}
	if c.TargetMaxSeconds <= 0 {
		c.TargetMaxSeconds = 120
	}
	if c.Temperature == 0 {
		c.Temperature = 0.3
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 500
	}
	return c
}

type Finder struct {
	llm ports.LLM
	cfg Config
	log *zap.Logger
}

func New(llm ports.LLM, cfg Config, log *zap.Logger) *Finder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Finder{llm: llm, cfg: cfg.withDefaults(), log: log}
}

// FindClipTimestamps resolves one description against the transcript.
// found=false with a nil error means the model reported no suitable
// match or its answer could not be parsed; err is reserved for transport
// failures.
func (f *Finder) FindClipTimestamps(ctx context.Context, transcript, description string) (r types.TimeRange, found bool, err error) {
	prepared := prepareTranscript(transcript, f.cfg)
	resp, err := f.llm.Complete(ctx, findSystemRole, findPrompt(prepared, description, f.cfg), f.cfg.Temperature, f.cfg.MaxTokens)
	if err != nil {
		return types.TimeRange{}, false, fmt.Errorf("locate clip %q: %w", description, err)
	}

	r, found = parseTimestamps(resp)
	if !found {
		f.log.Warn("could not identify clip timestamps from model response",
			zap.String("description", description))
		return types.TimeRange{}, false, nil
	}

	if d := r.Duration(); d < f.cfg.TargetMinSeconds || d > f.cfg.TargetMaxSeconds {
		f.log.Warn("clip duration outside target band",
			zap.Float64("duration_sec", d),
			zap.Float64("target_min_sec", f.cfg.TargetMinSeconds),
			zap.Float64("target_max_sec", f.cfg.TargetMaxSeconds))
	}
	f.log.Info("resolved clip",
		zap.String("description", description),
		zap.Float64("start_sec", r.Start),
		zap.Float64("end_sec", r.End))
	return r, true, nil
}

// parseTimestamps applies the strict field extraction and, only when the
// strict fields are wholly absent, the loose prose fallback. When both
// strict fields match, their verdict is final: sentinels and inverted
// ranges read as not found without consulting the fallback.
func parseTimestamps(resp string) (types.TimeRange, bool) {
	rawStart, okStart := oracletext.Field(resp, "START_TIME")
	rawEnd, okEnd := oracletext.Field(resp, "END_TIME")
	if okStart && okEnd {
		start, ok1 := oracletext.Seconds(rawStart)
		end, ok2 := oracletext.Seconds(rawEnd)
		if !ok1 || !ok2 {
			return types.TimeRange{}, false
		}
		if end <= start {
			return types.TimeRange{}, false
		}
		return types.TimeRange{Start: start, End: end}, true
	}

	if start, end, ok := oracletext.TimePair(resp); ok {
		return types.TimeRange{Start: start, End: end}, true
	}
	return types.TimeRange{}, false
}

// RefineBoundaries asks the model for improved clip boundaries. It never
// fails: any transport or parse problem degrades to "no change, LOW
// confidence".
func (f *Finder) RefineBoundaries(ctx context.Context, transcript string, startSec, endSec float64) types.Refinement {
	resp, err := f.llm.Complete(ctx, refineSystemRole, refinePrompt(transcript, startSec, endSec), 0.1, 200)
	if err != nil {
		f.log.Warn("boundary refinement unavailable", zap.Error(err))
		return types.Refinement{
			Start:      startSec,
			End:        endSec,
			Reason:     "could not analyze improvements",
			Confidence: types.ConfidenceLow,
		}
	}
	return parseRefinement(resp, startSec, endSec)
}

func parseRefinement(resp string, startSec, endSec float64) types.Refinement {
	start := suggestedBoundary(resp, "SUGGESTED_START", startSec)
	end := suggestedBoundary(resp, "SUGGESTED_END", endSec)

	reason, ok := oracletext.FreeText(resp, "IMPROVEMENT_REASON")
	if !ok {
		reason = "no specific improvements suggested"
	}
	return types.Refinement{
		Start:      start,
		End:        end,
		Reason:     reason,
		Confidence: oracletext.Tier(resp),
		Changed:    start != startSec || end != endSec,
	}
}

// suggestedBoundary resolves one suggested field, defaulting to the
// original value on KEEP_CURRENT or any parse failure.
func suggestedBoundary(resp, field string, original float64) float64 {
	raw, ok := oracletext.Field(resp, field)
	if !ok {
		return original
	}
	if strings.EqualFold(raw, oracletext.KeepCurrent) {
		return original
	}
	if v, ok := oracletext.Seconds(raw); ok {
		return v
	}
	return original
}

// FindMultipleClips resolves each description in order. Per-item failures
// are recorded on the item; the batch itself always completes.
func (f *Finder) FindMultipleClips(ctx context.Context, transcript string, descriptions []string) []types.ClipSearchResult {
	out := make([]types.ClipSearchResult, 0, len(descriptions))
	for i, description := range descriptions {
		f.log.Info("finding clip",
			zap.Int("item", i+1),
			zap.Int("total", len(descriptions)),
			zap.String("description", description))

		r, found, err := f.FindClipTimestamps(ctx, transcript, description)
		if err != nil {
			f.log.Error("clip resolution failed", zap.Int("item", i+1), zap.Error(err))
			out = append(out, types.ClipSearchResult{Description: description, Err: err})
			continue
		}
		out = append(out, types.ClipSearchResult{Description: description, Range: r, Found: found})
	}
	return out
}

// ExtractTopics asks the model for a timestamped topic outline of the
// transcript. Best-effort: an empty slice on any failure.
func (f *Finder) ExtractTopics(ctx context.Context, transcript string) []types.TimestampedTopic {
	prepared := prepareTranscript(transcript, f.cfg)
	resp, err := f.llm.Complete(ctx, topicsSystemRole, topicsPrompt(prepared), 0.1, 300)
	if err != nil {
		f.log.Warn("topic extraction unavailable", zap.Error(err))
		return nil
	}
	return oracletext.Topics(resp)
}
