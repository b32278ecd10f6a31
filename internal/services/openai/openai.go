package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/quoteforge/quoteforge/internal/utils"
)

const (
	// DefaultSpeechModel is the text-to-speech model used for narration
	DefaultSpeechModel = "tts-1"
	// DefaultVoice is the narration voice preset
	DefaultVoice = "alloy"
	// DefaultImageModel is the image generation model for backgrounds
	DefaultImageModel = "dall-e-3"
	// DefaultImageSize is a portrait canvas suited to vertical video
	DefaultImageSize = "1024x1792"
)

// Service wraps the OpenAI API client for speech and image generation
type Service struct {
	client *goopenai.Client
}

// NewService creates a Service using the OPENAI_API_KEY environment variable
func NewService() (*Service, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	return &Service{client: goopenai.NewClient(apiKey)}, nil
}

// NewServiceWithConfig creates a Service against a custom endpoint.
// Used in tests to point the client at a local server.
func NewServiceWithConfig(apiKey, baseURL string) *Service {
	config := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Service{client: goopenai.NewClientWithConfig(config)}
}

// SynthesizeSpeech renders text to an MP3 file at outPath
func (s *Service) SynthesizeSpeech(ctx context.Context, req SpeechRequest, outPath string) error {
	if req.Text == "" {
		return fmt.Errorf("speech text is empty")
	}

	model := req.Model
	if model == "" {
		model = DefaultSpeechModel
	}
	voice := req.Voice
	if voice == "" {
		voice = DefaultVoice
	}

	utils.LogVerbose("Synthesizing narration (%d characters, voice %s)", len(req.Text), voice)

	resp, err := s.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
		Model: goopenai.SpeechModel(model),
		Input: req.Text,
		Voice: goopenai.SpeechVoice(voice),
		Speed: req.Speed,
	})
	if err != nil {
		return fmt.Errorf("failed to synthesize speech: %w", err)
	}
	defer resp.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// GenerateImage renders a prompt to a PNG file at outPath
func (s *Service) GenerateImage(ctx context.Context, req ImageRequest, outPath string) error {
	if req.Prompt == "" {
		return fmt.Errorf("image prompt is empty")
	}

	model := req.Model
	if model == "" {
		model = DefaultImageModel
	}
	size := req.Size
	if size == "" {
		size = DefaultImageSize
	}

	utils.LogVerbose("Generating background image (%s, %s)", model, size)

	resp, err := s.client.CreateImage(ctx, goopenai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          model,
		Size:           size,
		ResponseFormat: goopenai.CreateImageResponseFormatB64JSON,
		N:              1,
	})
	if err != nil {
		return fmt.Errorf("failed to generate image: %w", err)
	}
	if len(resp.Data) == 0 {
		return fmt.Errorf("image API returned no data")
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return fmt.Errorf("failed to decode image data: %w", err)
	}

	if err := os.WriteFile(outPath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	return nil
}
