// Package config loads tool configuration from an optional YAML file
// and the environment.
package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Clips  ClipsConfig  `mapstructure:"clips"`
	Render RenderConfig `mapstructure:"render"`
	Tools  ToolsConfig  `mapstructure:"tools"`
	// Categories maps a category name to its keyword list. When empty the
	// built-in economic taxonomy is used.
	Categories map[string][]string `mapstructure:"categories"`
	// SpecificTerms get a higher keyword weight during content scoring.
	SpecificTerms []string `mapstructure:"specific_terms"`
}

type OpenAIConfig struct {
	APIKey       string  `mapstructure:"api_key"`
	GPTModel     string  `mapstructure:"gpt_model"`
	WhisperModel string  `mapstructure:"whisper_model"`
	Temperature  float64 `mapstructure:"temperature"`
	MaxTokens    int     `mapstructure:"max_tokens"`
	// BaseURL redirects API calls, e.g. through a proxy; hosts outside
	// AllowedHosts are rejected at startup.
	BaseURL      string   `mapstructure:"base_url"`
	AllowedHosts []string `mapstructure:"allowed_hosts"`
}

type ClipsConfig struct {
	TargetMinSeconds   float64 `mapstructure:"target_min_seconds"`
	TargetMaxSeconds   float64 `mapstructure:"target_max_seconds"`
	MaxTranscriptChars int     `mapstructure:"max_transcript_chars"`
	AssumedMaxDuration float64 `mapstructure:"assumed_max_duration"`
}

type RenderConfig struct {
	AspectRatio string `mapstructure:"aspect_ratio"`
	Quality     string `mapstructure:"quality"`
}

type ToolsConfig struct {
	YTDLPPath   string `mapstructure:"ytdlp_path"`
	FFmpegPath  string `mapstructure:"ffmpeg_path"`
	FFprobePath string `mapstructure:"ffprobe_path"`
}

// Load reads the config file at path when non-empty, otherwise only
// defaults and environment variables apply. OPENAI_API_KEY always wins
// over the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("openai.gpt_model", "gpt-4")
	v.SetDefault("openai.whisper_model", "whisper-1")
	v.SetDefault("openai.temperature", 0.3)
	v.SetDefault("openai.max_tokens", 500)
	v.SetDefault("clips.target_min_seconds", 30)
	v.SetDefault("clips.target_max_seconds", 120)
	v.SetDefault("clips.max_transcript_chars", 12000)
	v.SetDefault("clips.assumed_max_duration", 1800)
	v.SetDefault("render.aspect_ratio", "16:9")
	v.SetDefault("render.quality", "medium")

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		cfg.OpenAI.APIKey = apiKey
	}
	if baseURL := v.GetString("OPENAI_BASE_URL"); baseURL != "" {
		cfg.OpenAI.BaseURL = baseURL
	}
	return &cfg, nil
}
