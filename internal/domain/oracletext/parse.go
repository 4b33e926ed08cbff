// Package oracletext extracts structured fields from the free-form text
// the language model returns. Every extractor is a pure function over a
// string: absence is reported through an ok flag, never an error, so the
// calling pipelines can degrade instead of aborting when the model strays
// from the requested format.
package oracletext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/econclip/econclip/internal/types"
)

// Sentinel tokens the model may return in place of a number.
const (
	NotFound    = "NOT_FOUND"
	KeepCurrent = "KEEP_CURRENT"
)

var (
	timePairRE = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:seconds?|s)\s*(?:to|-)?\s*(\d+\.?\d*)\s*(?:seconds?|s)`)
	tierRE     = regexp.MustCompile(`(?i)CONFIDENCE:\s*(HIGH|MEDIUM|LOW)`)
	topicRE    = regexp.MustCompile(`(?i)TOPIC\s+\d+:\s*([0-9]+\.?[0-9]*)\s*s\s*-\s*([^\n]+)`)
)

// Field locates "NAME: value" case-insensitively, where value is a float
// literal or one of the sentinel tokens. The raw capture is returned so
// callers can distinguish sentinels from numbers.
func Field(text, name string) (string, bool) {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `:\s*([0-9]+\.?[0-9]*|NOT_FOUND|KEEP_CURRENT)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Seconds coerces a Field capture to a float. Sentinels and malformed
// numbers both read as absent.
func Seconds(raw string) (float64, bool) {
	if strings.EqualFold(raw, NotFound) || strings.EqualFold(raw, KeepCurrent) {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// TimePair is the loose fallback for responses that describe a range in
// prose, e.g. "the clip runs from 12.5 seconds to 45 seconds". Only an
// ordered pair (end > start) is accepted.
func TimePair(text string) (start, end float64, ok bool) {
	m := timePairRE.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	start, err1 := strconv.ParseFloat(m[1], 64)
	end, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil || end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// FreeText captures the remainder of the line after "NAME:".
func FreeText(text, name string) (string, bool) {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `:\s*([^\n]+)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Tier reads a CONFIDENCE marker, defaulting to MEDIUM when absent.
func Tier(text string) string {
	m := tierRE.FindStringSubmatch(text)
	if m == nil {
		return types.ConfidenceMedium
	}
	return strings.ToUpper(m[1])
}

// Topics parses a numbered "TOPIC N: <sec>s - <description>" outline.
// Malformed entries are skipped individually.
func Topics(text string) []types.TimestampedTopic {
	matches := topicRE.FindAllStringSubmatch(text, -1)
	out := make([]types.TimestampedTopic, 0, len(matches))
	for _, m := range matches {
		ts, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		desc := strings.TrimSpace(m[2])
		if desc == "" {
			continue
		}
		out = append(out, types.TimestampedTopic{Timestamp: ts, Description: desc})
	}
	return out
}
