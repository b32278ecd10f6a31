package composevideo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	modules "github.com/quoteforge/quoteforge/internal/mod"
	"github.com/quoteforge/quoteforge/internal/utils"
)

// execCommand allows us to mock exec.Command in tests
var execCommand = exec.CommandContext

// Module implements the video composition functionality
type Module struct{}

// Params contains the parameters for video composition
type Params struct {
	Input      string `json:"input"`      // Path to the quote deck file
	Output     string `json:"output"`     // Path to output directory
	AudioPath  string `json:"audioPath"`  // Directory holding narration audio (default: output)
	ImagesPath string `json:"imagesPath"` // Directory holding background images (default: output)
	Width      int    `json:"width"`      // Video width (default: 720)
	Height     int    `json:"height"`     // Video height (default: 1280)
	FPS        int    `json:"fps"`        // Frames per second (default: 24)
	FontSize   int    `json:"fontSize"`   // Overlay font size (default: 40)
	FontFile   string `json:"fontFile"`   // Font file for the overlay (optional)
	WrapWidth  int    `json:"wrapWidth"`  // Characters per overlay line (default: 30)
	QuietFlag  bool   `json:"quiet"`      // Suppress ffmpeg output (default: false)
}

// New creates a new composevideo module
func New() modules.Module {
	return &Module{}
}

// Name returns the module name
func (m *Module) Name() string {
	return "composevideo"
}

// Validate checks if the parameters are valid
func (m *Module) Validate(params map[string]interface{}) error {
	var p Params
	if err := modules.ParseParams(params, &p); err != nil {
		return err
	}

	if err := utils.ValidateInputPath(p.Input, p.Output, ""); err != nil {
		return err
	}

	if err := utils.ValidateOutputPath(p.Output); err != nil {
		return err
	}

	resolvedInput := utils.ResolveOutputPath(p.Input, p.Output)
	if err := utils.ValidateFileExtension(resolvedInput, []string{".yaml", ".yml"}); err != nil {
		return err
	}

	if p.FontFile != "" {
		if _, err := os.Stat(p.FontFile); os.IsNotExist(err) {
			return fmt.Errorf("font file does not exist: %s", p.FontFile)
		}
	}

	// Validate FFmpeg dependency
	if err := utils.ValidateRequiredDependency("ffmpeg"); err != nil {
		return err
	}
	if err := utils.ValidateRequiredDependency("ffprobe"); err != nil {
		return err
	}

	return nil
}

// Execute composes one vertical video per quote from its background image
// and narration audio
func (m *Module) Execute(ctx context.Context, params map[string]interface{}) (modules.ModuleResult, error) {
	var p Params
	if err := modules.ParseParams(params, &p); err != nil {
		return modules.ModuleResult{}, err
	}

	// Set default values
	if p.Width == 0 {
		p.Width = 720
	}
	if p.Height == 0 {
		p.Height = 1280
	}
	if p.FPS == 0 {
		p.FPS = 24
	}
	if p.FontSize == 0 {
		p.FontSize = 40
	}
	if p.WrapWidth == 0 {
		p.WrapWidth = 30
	}
	if p.AudioPath == "" {
		p.AudioPath = p.Output
	}
	if p.ImagesPath == "" {
		p.ImagesPath = p.Output
	}

	resolvedInput := utils.ResolveOutputPath(p.Input, p.Output)
	deck, err := utils.ReadDeckFile(resolvedInput)
	if err != nil {
		return modules.ModuleResult{}, err
	}

	audioDir := utils.ResolveOutputPath(p.AudioPath, p.Output)
	imagesDir := utils.ResolveOutputPath(p.ImagesPath, p.Output)

	if err := os.MkdirAll(p.Output, 0755); err != nil {
		return modules.ModuleResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	utils.LogInfo("Composing %d videos", len(deck.Quotes))

	for i, entry := range deck.Quotes {
		audioPath := filepath.Join(audioDir, fmt.Sprintf("voice_%02d.mp3", i))
		imagePath := filepath.Join(imagesDir, fmt.Sprintf("background_%02d.png", i))
		outputPath := filepath.Join(p.Output, fmt.Sprintf("video_%02d.mp4", i))

		if _, err := os.Stat(audioPath); err != nil {
			return modules.ModuleResult{}, fmt.Errorf("narration audio for quote %d does not exist: %s", i, audioPath)
		}
		if _, err := os.Stat(imagePath); err != nil {
			return modules.ModuleResult{}, fmt.Errorf("background image for quote %d does not exist: %s", i, imagePath)
		}

		if err := m.composeOne(ctx, p, i, entry, imagePath, audioPath, outputPath); err != nil {
			return modules.ModuleResult{}, err
		}
	}

	utils.LogSuccess("Composed %d videos in %s", len(deck.Quotes), p.Output)

	return modules.ModuleResult{
		Outputs: map[string]string{
			"videos": p.Output,
		},
		Statistics: map[string]interface{}{
			"videoCount": len(deck.Quotes),
		},
	}, nil
}

// composeOne renders a single quote video with the overlay text burned in
func (m *Module) composeOne(ctx context.Context, p Params, idx int, entry utils.QuoteEntry, imagePath, audioPath, outputPath string) error {
	overlayText := entry.Narration
	if overlayText == "" {
		overlayText = entry.Text
	}

	// Write the wrapped overlay text to a file so drawtext does not have
	// to deal with shell and filter escaping
	overlayPath := filepath.Join(p.Output, fmt.Sprintf("overlay_%02d.txt", idx))
	wrapped := strings.Join(wrapText(overlayText, p.WrapWidth), "\n")
	if err := os.WriteFile(overlayPath, []byte(wrapped), 0644); err != nil {
		return fmt.Errorf("failed to write overlay text: %w", err)
	}
	defer func() {
		if err := os.Remove(overlayPath); err != nil {
			utils.LogWarning("Failed to remove overlay file: %v", err)
		}
	}()

	duration, err := m.probeAudioDuration(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("failed to probe narration duration for quote %d: %w", idx, err)
	}

	fontFileArg := ""
	if p.FontFile != "" {
		fontFileArg = fmt.Sprintf("fontfile=%s:", p.FontFile)
	}

	// Scale the background to the target canvas and burn in the overlay
	filter := fmt.Sprintf(
		"scale=%d:%d,drawtext=%stextfile=%s:fontcolor=white:fontsize=%d:borderw=2:bordercolor=black:x=(w-text_w)/2:y=60:line_spacing=12",
		p.Width, p.Height,
		fontFileArg,
		overlayPath,
		p.FontSize,
	)

	args := []string{
		"-loop", "1",
		"-i", imagePath,
		"-i", audioPath,
		"-vf", filter,
		"-t", fmt.Sprintf("%.3f", duration),
		"-r", strconv.Itoa(p.FPS),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "128k",
		"-y",
	}

	// Add quiet flags if enabled
	if p.QuietFlag {
		args = append(args, "-v", "error", "-stats")
	}

	args = append(args, outputPath)

	cmd := execCommand(ctx, "ffmpeg", args...)

	var stderr strings.Builder
	if p.QuietFlag {
		cmd.Stdout = nil
		cmd.Stderr = &stderr
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		if p.QuietFlag && stderr.Len() > 0 {
			utils.LogError("FFmpeg error: %s", stderr.String())
		}
		return fmt.Errorf("ffmpeg command failed: %w", err)
	}

	// Verify the output file was created
	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		return fmt.Errorf("ffmpeg command completed but output file was not created: %s", outputPath)
	}

	utils.LogVerbose("Composed video %s (%.1fs)", outputPath, duration)
	return nil
}

// probeAudioDuration returns the duration of an audio file in seconds
func (m *Module) probeAudioDuration(ctx context.Context, audioPath string) (float64, error) {
	cmd := execCommand(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe command failed: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output %q: %w", strings.TrimSpace(string(out)), err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("audio file has no duration: %s", audioPath)
	}

	return duration, nil
}

// wrapText breaks text into lines of at most width characters, keeping
// words whole. Words longer than the width get a line of their own.
func wrapText(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if len([]rune(current))+1+len([]rune(word)) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}
	return lines
}

// GetIO returns the module's input/output specification
func (m *Module) GetIO() modules.ModuleIO {
	return modules.ModuleIO{
		RequiredInputs: []modules.ModuleInput{
			{
				Name:        "input",
				Description: "Path to the quote deck file",
				Patterns:    []string{".yaml", ".yml"},
				Type:        string(modules.InputTypeFile),
			},
			{
				Name:        "output",
				Description: "Path to output directory",
				Type:        string(modules.InputTypeDirectory),
			},
		},
		OptionalInputs: []modules.ModuleInput{
			{
				Name:        "audioPath",
				Description: "Directory holding narration audio",
				Type:        string(modules.InputTypeDirectory),
			},
			{
				Name:        "imagesPath",
				Description: "Directory holding background images",
				Type:        string(modules.InputTypeDirectory),
			},
			{
				Name:        "width",
				Description: "Video width (default: 720)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "height",
				Description: "Video height (default: 1280)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "fps",
				Description: "Frames per second (default: 24)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "fontSize",
				Description: "Overlay font size (default: 40)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "fontFile",
				Description: "Font file for the overlay",
				Type:        string(modules.InputTypeFile),
			},
			{
				Name:        "wrapWidth",
				Description: "Characters per overlay line (default: 30)",
				Type:        string(modules.InputTypeData),
			},
		},
		ProducedOutputs: []modules.ModuleOutput{
			{
				Name:        "videos",
				Description: "Directory of composed videos",
				Patterns:    []string{".mp4"},
				Type:        string(modules.OutputTypeDirectory),
			},
		},
	}
}
