package generatebackground

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

// writeTestDeck creates a deck file with the given image prompts
func writeTestDeck(t *testing.T, dir string, prompts ...string) string {
	t.Helper()

	deck := utils.QuoteDeck{Source: "test"}
	for _, prompt := range prompts {
		deck.Quotes = append(deck.Quotes, utils.QuoteEntry{
			Text:        "text",
			Author:      "author",
			ImagePrompt: prompt,
		})
	}

	deckPath := filepath.Join(dir, "quotes.yaml")
	require.NoError(t, utils.WriteDeckFile(deckPath, &deck))
	return deckPath
}

func TestModule_Name(t *testing.T) {
	module := New()
	assert.Equal(t, "generatebackground", module.Name())
}

func TestModule_Validate(t *testing.T) {
	tempDir := t.TempDir()
	deckPath := writeTestDeck(t, tempDir, "zen garden with raked sand and soft morning light")

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
			name: "missing output",
			params: map[string]interface{}{
				"input": deckPath,
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
	deckPath := writeTestDeck(t, tempDir, "forest path at dawn with gentle fog and sunbeams", "")

	mockService := openaimocks.NewMockImageService(t)
	mockService.On("GenerateImage", mock.Anything, openaisvc.ImageRequest{
		Prompt: "forest path at dawn with gentle fog and sunbeams",
	}, filepath.Join(tempDir, "background_00.png")).Return(nil)
	// A quote without a prompt falls back to the default scene
	mockService.On("GenerateImage", mock.Anything, openaisvc.ImageRequest{
		Prompt: defaultPrompt,
	}, filepath.Join(tempDir, "background_01.png")).Return(nil)

	module := NewWithService(mockService)
	result, err := module.Execute(context.Background(), map[string]interface{}{
		"input":  deckPath,
		"output": tempDir,
	})
	require.NoError(t, err)
	assert.Equal(t, tempDir, result.Outputs["images"])
	assert.Equal(t, 2, result.Statistics["imageCount"])
}

func TestModule_ExecuteServiceError(t *testing.T) {
	tempDir := t.TempDir()
	deckPath := writeTestDeck(t, tempDir, "mountains bathed in golden hour light over a calm valley")

	mockService := openaimocks.NewMockImageService(t)
	mockService.On("GenerateImage", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	module := NewWithService(mockService)
	_, err := module.Execute(context.Background(), map[string]interface{}{
		"input":  deckPath,
		"output": tempDir,
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate background 0")
}
