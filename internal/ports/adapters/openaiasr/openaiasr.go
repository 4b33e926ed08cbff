// Package openaiasr adapts the OpenAI Whisper transcription API to the
// ASR port.
package openaiasr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Whisper API upload limit.
const maxUploadBytes = 25 << 20

type Adapter struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

func New(apiKey, model string, log *zap.Logger) (*Adapter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if model == "" {
		model = openai.Whisper1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{client: openai.NewClient(apiKey), model: model, log: log}, nil
}

func (a *Adapter) Transcribe(ctx context.Context, mediaPath string) (string, error) {
	return a.transcribe(ctx, mediaPath, openai.AudioResponseFormatText)
}

func (a *Adapter) TranscribeSRT(ctx context.Context, mediaPath string) (string, error) {
	return a.transcribe(ctx, mediaPath, openai.AudioResponseFormatSRT)
}

func (a *Adapter) transcribe(ctx context.Context, mediaPath string, format openai.AudioResponseFormat) (string, error) {
	if err := checkUploadSize(mediaPath); err != nil {
		return "", err
	}
	a.log.Info("transcribing media", zap.String("path", mediaPath), zap.String("format", string(format)))

	resp, err := a.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    a.model,
		FilePath: mediaPath,
		Format:   format,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", errors.New("whisper transcription returned empty result")
	}
	return text, nil
}

func checkUploadSize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat media: %w", err)
	}
	if info.Size() > maxUploadBytes {
		return fmt.Errorf("media file %.1fMB exceeds the %dMB transcription limit",
			float64(info.Size())/(1<<20), maxUploadBytes>>20)
	}
	return nil
}
