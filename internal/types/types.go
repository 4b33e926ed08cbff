package types

// TimeRange is a resolved clip boundary pair in seconds of source time.
// End is always strictly greater than Start: any parse that would violate
// this is discarded upstream and reported as "not found".
type TimeRange struct {
	Start float64
	End   float64
}

func (r TimeRange) Duration() float64 { return r.End - r.Start }

// Confidence tiers reported by boundary refinement.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// Refinement is the outcome of a boundary refinement round. Start/End hold
// the suggested boundaries, falling back to the originals whenever the
// model kept them or the suggestion could not be parsed.
type Refinement struct {
	Start      float64
	End        float64
	Reason     string
	Confidence string
	Changed    bool
}

// ClipSearchResult is one item of a batch resolution. Err is set only on
// transport failure for that item; a clean "no match" has Found=false and
// Err=nil.
type ClipSearchResult struct {
	Description string
	Range       TimeRange
	Found       bool
	Err         error
}

// TimestampedTopic is one entry of an extracted topic outline.
type TimestampedTopic struct {
	Timestamp   float64
	Description string
}

type Manifest struct {
	Source string         `json:"source"`
	Clips  []ManifestClip `json:"clips"`
}

type ManifestClip struct {
	Description string   `json:"description"`
	StartSec    float64  `json:"start_sec"`
	EndSec      float64  `json:"end_sec"`
	Category    string   `json:"category"`
	Confidence  float64  `json:"confidence"`
	File        string   `json:"file"`
	Subtitles   string   `json:"subtitles,omitempty"`
	Refined     bool     `json:"refined,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
