package clipfind

import (
	"fmt"
	"strings"
)

// prepareTranscript shortens an over-long transcript to head, middle and
// tail thirds with explicit section markers, then prefixes each non-blank
// line with an estimated position hint. The hint is a heuristic for the
// model, not a real timestamp: line_index/total_lines scaled by the
// assumed maximum duration.
func prepareTranscript(transcript string, cfg Config) string {
	runes := []rune(transcript)
	if len(runes) > cfg.MaxTranscriptChars {
		part := cfg.MaxTranscriptChars / 3
		head := string(runes[:part])
		tail := string(runes[len(runes)-part:])
		midStart := len(runes)/2 - part/2
		middle := string(runes[midStart : midStart+part])
		transcript = head + "\n\n[... MIDDLE SECTION ...]\n" + middle + "\n\n[... END SECTION ...]\n" + tail
	}

	lines := strings.Split(transcript, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, "")
			continue
		}
		estimated := float64(i) / float64(len(lines)) * cfg.AssumedMaxDuration
		out = append(out, fmt.Sprintf("[~%.0fs] %s", estimated, trimmed))
	}
	return strings.Join(out, "\n")
}
