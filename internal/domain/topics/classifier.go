// Package topics classifies clip descriptions and transcript slices into
// a fixed economic taxonomy using weighted keyword scoring. Two
// independent signals (user description vs. transcript content) are
// scored separately and reconciled into a single decision with a
// confidence value.
package topics

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// CategoryScore is the per-category breakdown kept for traceability.
type CategoryScore struct {
	Score           float64
	BaseScore       float64
	DensityBonus    float64
	ClusteringBonus float64
	MatchedKeywords []string
}

// Classification is produced fresh per call and never cached.
type Classification struct {
	Primary      string
	Confidence   float64
	Scores       map[string]CategoryScore
	Method       string
	Disagreement bool
	ClipDuration float64

	// Sub-results retained when produced by ClassifyCombined.
	Description *Classification
	Content     *Classification
}

type Suggestion struct {
	Category         string
	Confidence       float64
	DescriptionScore float64
	ContentScore     float64
}

type Validation struct {
	Valid        bool
	Reason       string
	Confidence   float64
	Agreement    bool
	AutoCategory string
}

// Classifier owns an immutable weight table built once at construction.
// It is safe for concurrent use after New returns.
type Classifier struct {
	categories Categories
	order      []string // deterministic scoring/tie-break order
	weights    map[string]map[string]float64
	matchers   map[string]map[string]*regexp.Regexp
}

func New(cats Categories, specificTerms []string) *Classifier {
	if cats == nil {
		cats = DefaultCategories()
	}
	if specificTerms == nil {
		specificTerms = DefaultSpecificTerms
	}

	normalized := make(Categories, len(cats))
	order := make([]string, 0, len(cats))
	for category, keywords := range cats {
		kws := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		normalized[category] = kws
		if category != General {
			order = append(order, category)
		}
	}
	sort.Strings(order)

	matchers := make(map[string]map[string]*regexp.Regexp, len(order))
	for _, category := range order {
		m := make(map[string]*regexp.Regexp, len(normalized[category]))
		for _, kw := range normalized[category] {
			m[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
		matchers[category] = m
	}

	return &Classifier{
		categories: normalized,
		order:      order,
		weights:    buildWeights(normalized, specificTerms),
		matchers:   matchers,
	}
}

// Known reports whether the category exists in the taxonomy.
func (c *Classifier) Known(category string) bool {
	_, ok := c.categories[category]
	return ok
}

// Keywords returns the configured keyword list for a category.
func (c *Classifier) Keywords(category string) []string {
	return c.categories[category]
}

// ClassifyByDescription scores the user's free-text description with
// plain substring matches; each keyword counts once.
func (c *Classifier) ClassifyByDescription(description string) Classification {
	lower := strings.ToLower(description)
	scores := make(map[string]CategoryScore)

	for _, category := range c.order {
		var score float64
		var matched []string
		for _, kw := range c.categories[category] {
			if strings.Contains(lower, kw) {
				score += c.weights[category][kw]
				matched = append(matched, kw)
			}
		}
		if score > 0 {
			scores[category] = CategoryScore{Score: score, BaseScore: score, MatchedKeywords: matched}
		}
	}

	best, ok := c.best(scores)
	if !ok {
		return Classification{Primary: General, Scores: scores, Method: "default_fallback"}
	}
	return Classification{
		Primary:    best,
		Confidence: clamp01(scores[best].Score / 5.0),
		Scores:     scores,
		Method:     "description_keywords",
	}
}

// ClassifyByContent scores a transcript slice with word-boundary
// occurrence counts plus density and clustering bonuses.
func (c *Classifier) ClassifyByContent(content string) Classification {
	if strings.TrimSpace(content) == "" {
		return Classification{Primary: General, Scores: map[string]CategoryScore{}, Method: "empty_content"}
	}

	lower := strings.ToLower(content)
	scores := make(map[string]CategoryScore)

	for _, category := range c.order {
		var base float64
		var matched []string
		var positions []int
		for _, kw := range c.categories[category] {
			locs := c.matchers[category][kw].FindAllStringIndex(lower, -1)
			if len(locs) == 0 {
				continue
			}
			base += c.weights[category][kw] * float64(len(locs))
			matched = append(matched, kw)
			for _, loc := range locs {
				positions = append(positions, loc[0])
			}
		}
		if base == 0 {
			continue
		}
		density := base / float64(len(lower)) * 1000 // keyword pressure per 1000 chars
		clustering := clusteringBonus(positions)
		scores[category] = CategoryScore{
			Score:           base + density + clustering,
			BaseScore:       base,
			DensityBonus:    density,
			ClusteringBonus: clustering,
			MatchedKeywords: matched,
		}
	}

	best, ok := c.best(scores)
	if !ok {
		return Classification{Primary: General, Scores: scores, Method: "no_keywords_found"}
	}
	diversity := float64(len(scores[best].MatchedKeywords))
	return Classification{
		Primary:    best,
		Confidence: clamp01(scores[best].Score / 10.0 * (1 + diversity*0.1)),
		Scores:     scores,
		Method:     "content_analysis",
	}
}

// ClassifyCombined runs both signals and reconciles them. Agreement earns
// a confidence boost (divisor 1.5 instead of 2); disagreement keeps the
// stronger signal at a 0.7 penalty and flags the conflict.
func (c *Classifier) ClassifyCombined(description, content string, startSec, endSec float64) Classification {
	desc := c.ClassifyByDescription(description)
	cont := c.ClassifyByContent(content)
	duration := endSec - startSec

	if desc.Primary == cont.Primary {
		return Classification{
			Primary:      desc.Primary,
			Confidence:   clamp01((desc.Confidence + cont.Confidence) / 1.5),
			Method:       "combined_agreement",
			ClipDuration: duration,
			Description:  &desc,
			Content:      &cont,
		}
	}

	primary, method := cont, "content_primary"
	if desc.Confidence > cont.Confidence {
		primary, method = desc, "description_primary"
	}
	return Classification{
		Primary:      primary.Primary,
		Confidence:   primary.Confidence * 0.7,
		Method:       method,
		Disagreement: true,
		ClipDuration: duration,
		Description:  &desc,
		Content:      &cont,
	}
}

// Suggest merges per-category scores from both signals (description x0.6,
// content x0.8) and returns the top 3 categories by combined confidence.
func (c *Classifier) Suggest(description, content string) []Suggestion {
	desc := c.ClassifyByDescription(description)
	cont := c.ClassifyByContent(content)

	out := make([]Suggestion, 0, len(c.order))
	for _, category := range c.order {
		ds, okD := desc.Scores[category]
		cs, okC := cont.Scores[category]
		if !okD && !okC {
			continue
		}
		combined := ds.Score*0.6 + cs.Score*0.8
		out = append(out, Suggestion{
			Category:         category,
			Confidence:       clamp01(combined / 10.0),
			DescriptionScore: ds.Score,
			ContentScore:     cs.Score,
		})
	}

	// Stable sort keeps taxonomy order for equal confidences.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// Validate checks whether a manually proposed category is defensible
// against the automatic analysis.
func (c *Classifier) Validate(category, description, content string) Validation {
	if !c.Known(category) {
		return Validation{Reason: fmt.Sprintf("category %q does not exist", category)}
	}

	auto := c.ClassifyCombined(description, content, 0, 60)
	if auto.Primary == category {
		return Validation{
			Valid:        true,
			Reason:       "manual classification matches automatic analysis",
			Confidence:   auto.Confidence,
			Agreement:    true,
			AutoCategory: auto.Primary,
		}
	}

	for _, s := range c.Suggest(description, content) {
		if s.Category == category && s.Confidence > 0.3 {
			return Validation{
				Valid:        true,
				Reason:       fmt.Sprintf("manual category is a reasonable alternative (confidence: %.2f)", s.Confidence),
				Confidence:   s.Confidence,
				AutoCategory: auto.Primary,
			}
		}
	}
	return Validation{
		Reason:       fmt.Sprintf("manual category does not match content, suggested: %s", auto.Primary),
		AutoCategory: auto.Primary,
	}
}

// best picks the highest-scoring category, ties resolved by taxonomy
// order so results are deterministic across runs.
func (c *Classifier) best(scores map[string]CategoryScore) (string, bool) {
	var best string
	var bestScore float64
	found := false
	for _, category := range c.order {
		s, ok := scores[category]
		if !ok {
			continue
		}
		if !found || s.Score > bestScore {
			best, bestScore, found = category, s.Score, true
		}
	}
	return best, found
}

// clusteringBonus rewards keyword occurrences that sit near each other.
// Adjacent pairs within 100 chars contribute (100-d)/100; farther pairs
// contribute nothing.
func clusteringBonus(positions []int) float64 {
	if len(positions) < 2 {
		return 0
	}
	sort.Ints(positions)
	var bonus float64
	for i := 1; i < len(positions); i++ {
		d := positions[i] - positions[i-1]
		if d <= 100 {
			bonus += float64(100-d) / 100.0
		}
	}
	return bonus
}

func clamp01(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < 0 {
		return 0
	}
	return x
}
