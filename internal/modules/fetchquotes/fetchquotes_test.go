package fetchquotes

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quoteforge/quoteforge/internal/services/quotes"
	quotesmocks "github.com/quoteforge/quoteforge/internal/services/quotes/mocks"
	"github.com/quoteforge/quoteforge/internal/utils"
)

func TestModule_Name(t *testing.T) {
	module := New()
	assert.Equal(t, "fetchquotes", module.Name())
}

func TestModule_Validate(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		params  map[string]interface{}
		wantErr bool
	}{
		{
			name: "valid parameters",
			params: map[string]interface{}{
				"output": tempDir,
				"count":  10,
			},
			wantErr: false,
		},
		{
			name: "missing output",
			params: map[string]interface{}{
				"count": 10,
			},
			wantErr: true,
		},
		{
			name: "negative count",
			params: map[string]interface{}{
				"output": tempDir,
				"count":  -1,
			},
			wantErr: true,
		},
		{
			name: "bad output extension",
			params: map[string]interface{}{
				"output":     tempDir,
				"outputName": "quotes.json",
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

	mockService := quotesmocks.NewMockQuotesService(t)
	mockService.On("FetchQuotes", mock.Anything, 2).Return([]quotes.Quote{
		{Text: "Stay hungry, stay foolish.", Author: "Steve Jobs"},
		{Text: "The obstacle is the way.", Author: "Marcus Aurelius"},
	}, nil)

	module := NewWithService(mockService)
	result, err := module.Execute(context.Background(), map[string]interface{}{
		"output": tempDir,
		"count":  2,
	})
	require.NoError(t, err)

	deckPath := result.Outputs["quotes"]
	assert.Equal(t, filepath.Join(tempDir, "quotes.yaml"), deckPath)
	assert.Equal(t, 2, result.Statistics["quoteCount"])

	deck, err := utils.ReadDeckFile(deckPath)
	require.NoError(t, err)
	require.Len(t, deck.Quotes, 2)

	first := deck.Quotes[0]
	assert.Equal(t, "Stay hungry, stay foolish.", first.Text)
	assert.Equal(t, "Steve Jobs", first.Author)
	assert.Equal(t, "Inspiration: Steve Jobs", first.Title)
	assert.Contains(t, first.Narration, "Stay hungry, stay foolish.")
	assert.Contains(t, first.Narration, "Steve Jobs")
	assert.NotEmpty(t, first.ImagePrompt)
}

func TestModule_ExecuteNarrationQuoting(t *testing.T) {
	tempDir := t.TempDir()

	mockService := quotesmocks.NewMockQuotesService(t)
	mockService.On("FetchQuotes", mock.Anything, 1).Return([]quotes.Quote{
		{Text: `Say "yes" to life.`, Author: "Anonymous"},
	}, nil)

	module := NewWithService(mockService)
	result, err := module.Execute(context.Background(), map[string]interface{}{
		"output": tempDir,
		"count":  1,
	})
	require.NoError(t, err)

	deck, err := utils.ReadDeckFile(result.Outputs["quotes"])
	require.NoError(t, err)
	require.Len(t, deck.Quotes, 1)

	// Inner quotes pass through verbatim, nothing is escaped for the
	// narration and overlay text
	assert.Equal(t, `"Say "yes" to life." — Anonymous`, deck.Quotes[0].Narration)
	assert.NotContains(t, deck.Quotes[0].Narration, `\"`)
}

func TestModule_ExecuteFetchError(t *testing.T) {
	tempDir := t.TempDir()

	mockService := quotesmocks.NewMockQuotesService(t)
	mockService.On("FetchQuotes", mock.Anything, 10).Return(nil, assert.AnError)

	module := NewWithService(mockService)
	_, err := module.Execute(context.Background(), map[string]interface{}{
		"output": tempDir,
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch quotes")
}
