package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeSpeech(t *testing.T) {
	audio := []byte("ID3fake-mp3-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tts-1", body["model"])
		assert.Equal(t, "alloy", body["voice"])
		assert.Equal(t, "Stay hungry, stay foolish.", body["input"])

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(audio)
	}))
	defer server.Close()

	service := NewServiceWithConfig("test-key", server.URL+"/v1")

	outPath := filepath.Join(t.TempDir(), "voice_00.mp3")
	err := service.SynthesizeSpeech(context.Background(), SpeechRequest{
		Text: "Stay hungry, stay foolish.",
	}, outPath)
	require.NoError(t, err)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, audio, written)
}

func TestSynthesizeSpeechEmptyText(t *testing.T) {
	service := NewServiceWithConfig("test-key", "")

	err := service.SynthesizeSpeech(context.Background(), SpeechRequest{}, filepath.Join(t.TempDir(), "out.mp3"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestGenerateImage(t *testing.T) {
	// Minimal one-pixel PNG payload
	pixel := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "dall-e-3", body["model"])
		assert.Equal(t, "1024x1792", body["size"])
		assert.Equal(t, "b64_json", body["response_format"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"created": 1700000000,
			"data": []map[string]string{
				{"b64_json": base64.StdEncoding.EncodeToString(pixel)},
			},
		})
	}))
	defer server.Close()

	service := NewServiceWithConfig("test-key", server.URL+"/v1")

	outPath := filepath.Join(t.TempDir(), "background_00.png")
	err := service.GenerateImage(context.Background(), ImageRequest{
		Prompt: "A serene mountain lake at dawn",
	}, outPath)
	require.NoError(t, err)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, pixel, written)
}

func TestGenerateImageEmptyPrompt(t *testing.T) {
	service := NewServiceWithConfig("test-key", "")

	err := service.GenerateImage(context.Background(), ImageRequest{}, filepath.Join(t.TempDir(), "out.png"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestGenerateImageNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"created": 1700000000,
			"data":    []map[string]string{},
		})
	}))
	defer server.Close()

	service := NewServiceWithConfig("test-key", server.URL+"/v1")

	err := service.GenerateImage(context.Background(), ImageRequest{
		Prompt: "A serene mountain lake at dawn",
	}, filepath.Join(t.TempDir(), "out.png"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no data")
}
