package oracletext

import "testing"

func TestField(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		field  string
		want   string
		wantOK bool
	}{
		{"numeric", "START_TIME: 245.5\nEND_TIME: 298.2", "START_TIME", "245.5", true},
		{"integer", "END_TIME: 40", "END_TIME", "40", true},
		{"case insensitive", "start_time: 12.5", "START_TIME", "12.5", true},
		{"not found sentinel", "START_TIME: NOT_FOUND", "START_TIME", "NOT_FOUND", true},
		{"keep current sentinel", "SUGGESTED_START: KEEP_CURRENT", "SUGGESTED_START", "KEEP_CURRENT", true},
		{"absent", "no fields here", "START_TIME", "", false},
		{"non numeric value", "START_TIME: soon", "START_TIME", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Field(tt.text, tt.field)
			if ok != tt.wantOK {
				t.Fatalf("Field ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("Field = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"245.5", 245.5, true},
		{"40", 40, true},
		{"NOT_FOUND", 0, false},
		{"not_found", 0, false},
		{"KEEP_CURRENT", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Seconds(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("Seconds(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTimePair(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantStart float64
		wantEnd   float64
		wantOK    bool
	}{
		{"prose range", "the clip runs from 12.5 seconds to 45.0 seconds", 12.5, 45.0, true},
		{"dash range", "roughly 30s - 75s of the recording", 30, 75, true},
		{"inverted rejected", "from 50 seconds to 40 seconds", 0, 0, false},
		{"no match", "somewhere in the middle", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := TimePair(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("TimePair ok = %v, want %v", ok, tt.wantOK)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("TimePair = (%v, %v), want (%v, %v)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestFreeText(t *testing.T) {
	text := "SUGGESTED_START: 10\nIMPROVEMENT_REASON: extends into the payoff sentence\nCONFIDENCE: HIGH"
	got, ok := FreeText(text, "IMPROVEMENT_REASON")
	if !ok || got != "extends into the payoff sentence" {
		t.Fatalf("FreeText = (%q, %v)", got, ok)
	}
	if _, ok := FreeText(text, "MISSING"); ok {
		t.Fatalf("expected absent field")
	}
}

func TestTier(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"CONFIDENCE: HIGH", "HIGH"},
		{"confidence: low", "LOW"},
		{"no marker at all", "MEDIUM"},
	}
	for _, tt := range tests {
		if got := Tier(tt.text); got != tt.want {
			t.Fatalf("Tier(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestTopics(t *testing.T) {
	text := "TOPIC 1: 45s - Discussion of inflation trends and CPI data\n" +
		"TOPIC 2: 128s - Federal Reserve policy implications\n" +
		"TOPIC 3: soon - malformed timestamp\n" +
		"TOPIC 4: 267s - Impact on housing market\n"
	got := Topics(text)
	if len(got) != 3 {
		t.Fatalf("expected 3 topics, got %d", len(got))
	}
	if got[0].Timestamp != 45 || got[1].Timestamp != 128 || got[2].Timestamp != 267 {
		t.Fatalf("unexpected timestamps: %+v", got)
	}
	if got[1].Description != "Federal Reserve policy implications" {
		t.Fatalf("unexpected description: %q", got[1].Description)
	}
}

func TestTopics_Empty(t *testing.T) {
	if got := Topics("nothing useful here"); len(got) != 0 {
		t.Fatalf("expected no topics, got %v", got)
	}
}
