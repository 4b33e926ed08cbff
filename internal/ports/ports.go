package ports

import "context"

// LLM is the text-understanding service the clip finder queries with
// free-form prompts. Implementations own transport concerns (timeouts,
// retries); the core maps their errors to extraction failures.
type LLM interface {
	Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error)
}

type VideoSource interface {
	// Download fetches the video behind url into destDir and returns the
	// local file path.
	Download(ctx context.Context, url, destDir string) (string, error)
}

type ASR interface {
	Transcribe(ctx context.Context, mediaPath string) (string, error)
	TranscribeSRT(ctx context.Context, mediaPath string) (string, error)
}

type RenderOptions struct {
	AspectRatio string // "16:9" (default) or "9:16"
	Quality     string // fast | medium | high
	BurnSRT     string // path to an .srt to burn in, empty to skip
}

type VideoTool interface {
	RenderClip(ctx context.Context, inPath string, startSec, endSec float64, outPath string, opts RenderOptions) error
	ExtractAudioMono16k(ctx context.Context, inPath, outWav string) error
	ProbeDuration(ctx context.Context, inPath string) (float64, error)
}
