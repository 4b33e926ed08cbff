package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenAI.GPTModel != "gpt-4" {
		t.Fatalf("unexpected default model %q", cfg.OpenAI.GPTModel)
	}
	if cfg.Clips.TargetMinSeconds != 30 || cfg.Clips.TargetMaxSeconds != 120 {
		t.Fatalf("unexpected target band: %+v", cfg.Clips)
	}
	if cfg.Clips.MaxTranscriptChars != 12000 {
		t.Fatalf("unexpected transcript cap %d", cfg.Clips.MaxTranscriptChars)
	}
	if cfg.Render.AspectRatio != "16:9" || cfg.Render.Quality != "medium" {
		t.Fatalf("unexpected render defaults: %+v", cfg.Render)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "econclip.yaml")
	body := `
openai:
  gpt_model: gpt-4o
  temperature: 0.1
clips:
  target_max_seconds: 90
categories:
  mining:
    - copper
    - lithium
specific_terms:
  - rare earth
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenAI.GPTModel != "gpt-4o" {
		t.Fatalf("file model not applied: %q", cfg.OpenAI.GPTModel)
	}
	if cfg.OpenAI.Temperature != 0.1 {
		t.Fatalf("file temperature not applied: %v", cfg.OpenAI.Temperature)
	}
	if cfg.Clips.TargetMaxSeconds != 90 {
		t.Fatalf("file target max not applied: %v", cfg.Clips.TargetMaxSeconds)
	}
	// Untouched keys keep their defaults.
	if cfg.Clips.TargetMinSeconds != 30 {
		t.Fatalf("default target min lost: %v", cfg.Clips.TargetMinSeconds)
	}
	if got := cfg.Categories["mining"]; len(got) != 2 || got[0] != "copper" {
		t.Fatalf("categories not loaded: %+v", cfg.Categories)
	}
	if len(cfg.SpecificTerms) != 1 || cfg.SpecificTerms[0] != "rare earth" {
		t.Fatalf("specific terms not loaded: %+v", cfg.SpecificTerms)
	}
}

func TestLoadEnvAPIKeyWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "econclip.yaml")
	if err := os.WriteFile(path, []byte("openai:\n  api_key: from-file\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OPENAI_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenAI.APIKey != "from-env" {
		t.Fatalf("env key must win, got %q", cfg.OpenAI.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
