package thumbnail

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoteforge/quoteforge/internal/utils"
)

func init() {
	execCommand = exec.CommandContext
	utils.ExecLookPath = exec.LookPath
}

// TestMain sets up and tears down the mock command
func TestMain(m *testing.M) {
	result := m.Run()

	execCommand = exec.CommandContext
	utils.ExecLookPath = exec.LookPath

	os.Exit(result)
}

// fakeExecCommand creates a mock command handled by TestHelperProcess
func fakeExecCommand(ctx context.Context, command string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", command}
	cs = append(cs, args...)
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

// fakeLookPath always returns success
func fakeLookPath(file string) (string, error) {
	return file, nil
}

// TestHelperProcess is not a real test, it's used to mock exec.Command
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) == 0 {
		os.Exit(1)
	}

	if args[0] == "ffmpeg" {
		// Write a decodable PNG to the output path named by the last argument
		if err := writeTestPNG(args[len(args)-1], 64, 36); err != nil {
			os.Exit(1)
		}
	}
	os.Exit(0)
}

// writeTestPNG writes a small solid-color PNG
func writeTestPNG(path string, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 60, B: 90, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// writeTestDeck creates a deck file with the given titles
func writeTestDeck(t *testing.T, dir string, titles ...string) string {
	t.Helper()

	deck := utils.QuoteDeck{Source: "test"}
	for _, title := range titles {
		deck.Quotes = append(deck.Quotes, utils.QuoteEntry{
			Text:   "text",
			Author: "author",
			Title:  title,
		})
	}

	deckPath := filepath.Join(dir, "quotes.yaml")
	require.NoError(t, utils.WriteDeckFile(deckPath, &deck))
	return deckPath
}

func TestModule_Name(t *testing.T) {
	module := New()
	assert.Equal(t, "thumbnail", module.Name())
}

func TestModule_Validate(t *testing.T) {
	execCommand = fakeExecCommand
	utils.ExecLookPath = fakeLookPath
	defer func() {
		execCommand = exec.CommandContext
		utils.ExecLookPath = exec.LookPath
	}()

	tempDir := t.TempDir()
	deckPath := writeTestDeck(t, tempDir, "Inspiration: Author")
	templatePath := filepath.Join(tempDir, "template.png")
	require.NoError(t, writeTestPNG(templatePath, 64, 36))

	tests := []struct {
		name    string
		params  map[string]interface{}
		wantErr bool
	}{
		{
			name: "valid parameters",
			params: map[string]interface{}{
				"input":    deckPath,
				"output":   tempDir,
				"template": templatePath,
			},
			wantErr: false,
		},
		{
			name: "missing template",
			params: map[string]interface{}{
				"input":  deckPath,
				"output": tempDir,
			},
			wantErr: true,
		},
		{
			name: "template does not exist",
			params: map[string]interface{}{
				"input":    deckPath,
				"output":   tempDir,
				"template": filepath.Join(tempDir, "missing.png"),
			},
			wantErr: true,
		},
		{
			name: "bad template extension",
			params: map[string]interface{}{
				"input":    deckPath,
				"output":   tempDir,
				"template": deckPath,
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
	execCommand = fakeExecCommand
	utils.ExecLookPath = fakeLookPath
	defer func() {
		execCommand = exec.CommandContext
		utils.ExecLookPath = exec.LookPath
	}()

	tempDir := t.TempDir()
	deckPath := writeTestDeck(t, tempDir, "Inspiration: Steve Jobs", "")
	templatePath := filepath.Join(tempDir, "template.png")
	require.NoError(t, writeTestPNG(templatePath, 64, 36))

	module := New()
	result, err := module.Execute(context.Background(), map[string]interface{}{
		"input":    deckPath,
		"output":   tempDir,
		"template": templatePath,
		"quiet":    true,
	})
	require.NoError(t, err)
	assert.Equal(t, tempDir, result.Outputs["thumbnails"])
	assert.Equal(t, 2, result.Statistics["thumbnailCount"])

	for i := 0; i < 2; i++ {
		assert.FileExists(t, filepath.Join(tempDir, fmt.Sprintf("thumb_%02d.jpg", i)))
		// Intermediate renders are cleaned up
		assert.NoFileExists(t, filepath.Join(tempDir, fmt.Sprintf("thumb_titled_%02d.png", i)))
	}
}

func TestEscapeDrawText(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "plain title",
			title: "Inspiration Steve Jobs",
			want:  "Inspiration Steve Jobs",
		},
		{
			name:  "colon and apostrophe",
			title: "Inspiration: Ryan's pick",
			want:  "Inspiration\\: Ryan\\'s pick",
		},
		{
			name:  "comma stays inside the filter",
			title: "Stay hungry, stay foolish",
			want:  "Stay hungry\\, stay foolish",
		},
		{
			name:  "percent is not expanded",
			title: "Give 100%",
			want:  "Give 100\\%",
		},
		{
			name:  "backslash escaped first",
			title: `a\b`,
			want:  `a\\b`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeDrawText(tt.title))
		})
	}
}
