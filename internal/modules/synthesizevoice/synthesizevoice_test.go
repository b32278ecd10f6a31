package synthesizevoice

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	openaisvc "github.com/quoteforge/quoteforge/internal/services/openai"
	openaimocks "github.com/quoteforge/quoteforge/internal/services/openai/mocks"
	"github.com/quoteforge/quoteforge/internal/utils"
)

// writeTestDeck creates a deck file with the given narrations
func writeTestDeck(t *testing.T, dir string, narrations ...string) string {
	t.Helper()

	deck := utils.QuoteDeck{Source: "test"}
	for _, narration := range narrations {
		deck.Quotes = append(deck.Quotes, utils.QuoteEntry{
			Text:      "text",
			Author:    "author",
			Title:     "Inspiration: author",
			Narration: narration,
		})
	}

	deckPath := filepath.Join(dir, "quotes.yaml")
	require.NoError(t, utils.WriteDeckFile(deckPath, &deck))
	return deckPath
}

func TestModule_Name(t *testing.T) {
	module := New()
	assert.Equal(t, "synthesizevoice", module.Name())
}

func TestModule_Validate(t *testing.T) {
	tempDir := t.TempDir()
	deckPath := writeTestDeck(t, tempDir, "narration")

	tests := []struct {
		name    string
		params  map[string]interface{}
		wantErr bool
	}{
		{
			name: "valid parameters",
			params: map[string]interface{}{
				"input":  deckPath,
				"output": tempDir,
			},
			wantErr: false,
		},
		{
			name: "missing input",
			params: map[string]interface{}{
				"output": tempDir,
			},
			wantErr: true,
		},
		{
			name: "wrong input extension",
			params: map[string]interface{}{
				"input":  filepath.Join(tempDir, "quotes.txt"),
				"output": tempDir,
			},
			wantErr: true,
		},
	}

	module := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := module.Validate(tt.params)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestModule_Execute(t *testing.T) {
	tempDir := t.TempDir()
	deckPath := writeTestDeck(t, tempDir, "First narration", "Second narration")

	mockService := openaimocks.NewMockSpeechService(t)
	mockService.On("SynthesizeSpeech", mock.Anything, openaisvc.SpeechRequest{
		Text:  "First narration",
		Voice: "nova",
	}, filepath.Join(tempDir, "voice_00.mp3")).Return(nil)
	mockService.On("SynthesizeSpeech", mock.Anything, openaisvc.SpeechRequest{
		Text:  "Second narration",
		Voice: "nova",
	}, filepath.Join(tempDir, "voice_01.mp3")).Return(nil)

	module := NewWithService(mockService)
	result, err := module.Execute(context.Background(), map[string]interface{}{
		"input":  deckPath,
		"output": tempDir,
		"voice":  "nova",
	})
	require.NoError(t, err)
	assert.Equal(t, tempDir, result.Outputs["audio"])
	assert.Equal(t, 2, result.Statistics["narrationCount"])
}

func TestModule_ExecuteMissingNarration(t *testing.T) {
	tempDir := t.TempDir()
	deckPath := writeTestDeck(t, tempDir, "")

	mockService := openaimocks.NewMockSpeechService(t)

	module := NewWithService(mockService)
	_, err := module.Execute(context.Background(), map[string]interface{}{
		"input":  deckPath,
		"output": tempDir,
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no narration text")
}

func TestModule_ExecuteServiceError(t *testing.T) {
	tempDir := t.TempDir()
	deckPath := writeTestDeck(t, tempDir, "First narration")

	mockService := openaimocks.NewMockSpeechService(t)
	mockService.On("SynthesizeSpeech", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	module := NewWithService(mockService)
	_, err := module.Execute(context.Background(), map[string]interface{}{
		"input":  deckPath,
		"output": tempDir,
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to synthesize quote 0")
}
