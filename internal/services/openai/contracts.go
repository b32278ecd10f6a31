package openai

import (
	"context"
)

// SpeechService defines the interface for narration synthesis
type SpeechService interface {
	// SynthesizeSpeech renders text to an MP3 file at outPath
	SynthesizeSpeech(ctx context.Context, req SpeechRequest, outPath string) error
}

// ImageService defines the interface for background image generation
type ImageService interface {
	// GenerateImage renders a prompt to a PNG file at outPath
	GenerateImage(ctx context.Context, req ImageRequest, outPath string) error
}

// SpeechRequest contains the parameters for a narration synthesis call
type SpeechRequest struct {
	Text  string  // Text to narrate
	Voice string  // Voice preset (default: alloy)
	Model string  // Speech model (default: tts-1)
	Speed float64 // Playback speed multiplier (0 means API default)
}

// ImageRequest contains the parameters for an image generation call
type ImageRequest struct {
	Prompt string // Image prompt
	Size   string // Image size (default: 1024x1792, portrait)
	Model  string // Image model (default: dall-e-3)
}

// Ensure Service implements both contracts
var (
	_ SpeechService = (*Service)(nil)
	_ ImageService  = (*Service)(nil)
)
