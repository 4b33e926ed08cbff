package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/econclip/econclip/internal/clipfind"
	"github.com/econclip/econclip/internal/config"
	"github.com/econclip/econclip/internal/domain/topics"
	"github.com/econclip/econclip/internal/pipeline"
	"github.com/econclip/econclip/internal/types"
)

func newClipCmd(log *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clip <video-url>",
		Short: "Find, cut and categorize clips from a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClip(cmd, args[0], log)
		},
	}

	cmd.Flags().StringArray("desc", nil, "Clip description (repeat for several clips)")
	cmd.Flags().String("category", "", "Manual category, validated against the content")
	cmd.Flags().String("out", "out", "Output directory")
	cmd.Flags().String("aspect", "", "Aspect ratio: 16:9 or 9:16")
	cmd.Flags().String("quality", "", "Encoding quality: fast, medium or high")
	cmd.Flags().Bool("subtitles", false, "Burn subtitles into the clip")
	cmd.Flags().Bool("refine", false, "Ask the model to refine clip boundaries")
	_ = cmd.MarkFlagRequired("desc")
	return cmd
}

func newTopicsCmd(log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "topics <video-url>",
		Short: "List the main topics of a video with timestamps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTopics(cmd, args[0], log)
		},
	}
}

func runClip(cmd *cobra.Command, videoURL string, log *zap.Logger) error {
	descs, _ := cmd.Flags().GetStringArray("desc")
	category, _ := cmd.Flags().GetString("category")
	outDir, _ := cmd.Flags().GetString("out")
	aspect, _ := cmd.Flags().GetString("aspect")
	quality, _ := cmd.Flags().GetString("quality")
	subtitles, _ := cmd.Flags().GetBool("subtitles")
	refine, _ := cmd.Flags().GetBool("refine")

	cfg, err := buildConfig(cmd, videoURL, log)
	if err != nil {
		return err
	}
	cfg.Descriptions = descs
	cfg.Category = category
	cfg.OutDir = outDir
	if aspect != "" {
		cfg.AspectRatio = aspect
	}
	if quality != "" {
		cfg.Quality = quality
	}
	cfg.BurnSubtitles = subtitles
	cfg.Refine = refine

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Hour)
	defer cancel()
	return pipeline.Run(ctx, cfg)
}

func runTopics(cmd *cobra.Command, videoURL string, log *zap.Logger) error {
	cfg, err := buildConfig(cmd, videoURL, log)
	if err != nil {
		return err
	}
	if err := cfg.ValidateSource(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Hour)
	defer cancel()

	found, err := pipeline.RunTopics(ctx, cfg)
	if err != nil {
		return err
	}
	cmd.Print(formatTopics(found))
	return nil
}

func formatTopics(list []types.TimestampedTopic) string {
	if len(list) == 0 {
		return "no topics found\n"
	}
	var b strings.Builder
	for _, t := range list {
		min := int(t.Timestamp) / 60
		sec := int(t.Timestamp) % 60
		fmt.Fprintf(&b, "%3d:%02d  %s\n", min, sec, t.Description)
	}
	return b.String()
}

func buildConfig(cmd *cobra.Command, videoURL string, log *zap.Logger) (pipeline.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cacheDir, _ := cmd.Flags().GetString("cache")
	modelOverride, _ := cmd.Flags().GetString("model")

	fileCfg, err := config.Load(configPath)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("load config: %w", err)
	}

	gptModel := fileCfg.OpenAI.GPTModel
	if modelOverride != "" {
		gptModel = modelOverride
	}

	return pipeline.Config{
		VideoURL: videoURL,
		CacheDir: cacheDir,

		AspectRatio: fileCfg.Render.AspectRatio,
		Quality:     fileCfg.Render.Quality,

		YTDLPPath:   fileCfg.Tools.YTDLPPath,
		FFmpegPath:  fileCfg.Tools.FFmpegPath,
		FFprobePath: fileCfg.Tools.FFprobePath,

		OpenAIAPIKey:       fileCfg.OpenAI.APIKey,
		GPTModel:           gptModel,
		WhisperModel:       fileCfg.OpenAI.WhisperModel,
		OpenAIBaseURL:      fileCfg.OpenAI.BaseURL,
		OpenAIAllowedHosts: fileCfg.OpenAI.AllowedHosts,

		Finder: clipfind.Config{
			MaxTranscriptChars: fileCfg.Clips.MaxTranscriptChars,
			AssumedMaxDuration: fileCfg.Clips.AssumedMaxDuration,
			TargetMinSeconds:   fileCfg.Clips.TargetMinSeconds,
			TargetMaxSeconds:   fileCfg.Clips.TargetMaxSeconds,
			Temperature:        float32(fileCfg.OpenAI.Temperature),
			MaxTokens:          fileCfg.OpenAI.MaxTokens,
		},
		Categories:    topics.Categories(fileCfg.Categories),
		SpecificTerms: fileCfg.SpecificTerms,

		Logger: log,
	}, nil
}
