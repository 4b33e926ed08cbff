package topics

import "testing"

func TestBuildWeights(t *testing.T) {
	cats := Categories{
		"fed":     {"federal reserve", "fed", "rate hike"},
		"markets": {"stocks"},
		General:   {},
	}
	w := buildWeights(cats, DefaultSpecificTerms)

	if _, ok := w[General]; ok {
		t.Fatalf("general category must be excluded from the weight table")
	}

	tests := []struct {
		category string
		keyword  string
		want     float64
	}{
		{"fed", "federal reserve", 3.0}, // multi-word and specific
		{"fed", "rate hike", 1.5},       // multi-word only
		{"fed", "fed", 1.0},             // base
		{"markets", "stocks", 1.0},
	}
	for _, tt := range tests {
		if got := w[tt.category][tt.keyword]; got != tt.want {
			t.Fatalf("weight(%s, %q) = %v, want %v", tt.category, tt.keyword, got, tt.want)
		}
	}
}

func TestBuildWeights_SpecificTermsConfigured(t *testing.T) {
	cats := Categories{"fed": {"fomc"}}
	w := buildWeights(cats, []string{"fomc"})
	if got := w["fed"]["fomc"]; got != 2.0 {
		t.Fatalf("expected configured specific term bonus, got %v", got)
	}
	w = buildWeights(cats, []string{})
	if got := w["fed"]["fomc"]; got != 1.0 {
		t.Fatalf("expected base weight without specific term, got %v", got)
	}
}
