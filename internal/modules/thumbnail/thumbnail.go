package thumbnail

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sunshineplan/imgconv"

	modules "github.com/quoteforge/quoteforge/internal/mod"
	"github.com/quoteforge/quoteforge/internal/utils"
)

// execCommand allows us to mock exec.Command in tests
var execCommand = exec.CommandContext

// Module implements the thumbnail generation functionality
type Module struct{}

// Params contains the parameters for thumbnail generation
type Params struct {
	Input    string `json:"input"`    // Path to the quote deck file
	Output   string `json:"output"`   // Path to output directory
	Template string `json:"template"` // Path to the thumbnail template image
	FontSize int    `json:"fontSize"` // Title font size (default: 52)
	FontFile string `json:"fontFile"` // Font file for the title text (optional)
	Width    int    `json:"width"`    // Thumbnail width (default: 1280)
	Height   int    `json:"height"`   // Thumbnail height (default: 720)
	Quality  int    `json:"quality"`  // JPEG quality (default: 85)
	Quiet    bool   `json:"quiet"`    // Suppress ffmpeg output (default: false)
}

// New creates a new thumbnail module
func New() modules.Module {
	return &Module{}
}

// Name returns the module name
func (m *Module) Name() string {
	return "thumbnail"
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

	if p.Template == "" {
		return fmt.Errorf("template image path is required")
	}
	if _, err := os.Stat(p.Template); os.IsNotExist(err) {
		return fmt.Errorf("template image does not exist: %s", p.Template)
	}
	if err := utils.ValidateFileExtension(p.Template, []string{".png", ".jpg", ".jpeg"}); err != nil {
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

	return nil
}

// Execute renders one thumbnail per quote from the template image
func (m *Module) Execute(ctx context.Context, params map[string]interface{}) (modules.ModuleResult, error) {
	var p Params
	if err := modules.ParseParams(params, &p); err != nil {
		return modules.ModuleResult{}, err
	}

	// Set default values
	if p.FontSize == 0 {
		p.FontSize = 52
	}
	if p.Width == 0 {
		p.Width = 1280
	}
	if p.Height == 0 {
		p.Height = 720
	}
	if p.Quality == 0 {
		p.Quality = 85
	}

	resolvedInput := utils.ResolveOutputPath(p.Input, p.Output)
	deck, err := utils.ReadDeckFile(resolvedInput)
	if err != nil {
		return modules.ModuleResult{}, err
	}

	if err := os.MkdirAll(p.Output, 0755); err != nil {
		return modules.ModuleResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	utils.LogInfo("Rendering %d thumbnails", len(deck.Quotes))

	for i, entry := range deck.Quotes {
		outputPath := filepath.Join(p.Output, fmt.Sprintf("thumb_%02d.jpg", i))
		if err := m.renderOne(ctx, p, i, entry.Title, outputPath); err != nil {
			return modules.ModuleResult{}, fmt.Errorf("failed to render thumbnail %d: %w", i, err)
		}
	}

	utils.LogSuccess("Rendered %d thumbnails in %s", len(deck.Quotes), p.Output)

	return modules.ModuleResult{
		Outputs: map[string]string{
			"thumbnails": p.Output,
		},
		Statistics: map[string]interface{}{
			"thumbnailCount": len(deck.Quotes),
		},
	}, nil
}

// renderOne draws the title onto the template and converts the result to
// a JPEG of the target dimensions
func (m *Module) renderOne(ctx context.Context, p Params, idx int, title string, outputPath string) error {
	titledPath := filepath.Join(p.Output, fmt.Sprintf("thumb_titled_%02d.png", idx))
	defer func() {
		if err := os.Remove(titledPath); err != nil && !os.IsNotExist(err) {
			utils.LogWarning("Failed to remove intermediate thumbnail: %v", err)
		}
	}()

	if title == "" {
		// Nothing to draw, use the template as is
		if err := utils.CopyFile(p.Template, titledPath); err != nil {
			return fmt.Errorf("failed to copy template: %w", err)
		}
	} else if err := m.drawTitle(ctx, p, title, titledPath); err != nil {
		return err
	}

	img, err := imgconv.Open(titledPath)
	if err != nil {
		return fmt.Errorf("failed to open rendered thumbnail: %w", err)
	}

	resized := imgconv.Resize(img, &imgconv.ResizeOption{
		Width:  p.Width,
		Height: p.Height,
	})

	err = imgconv.Save(outputPath, resized, &imgconv.FormatOption{
		Format:       imgconv.JPEG,
		EncodeOption: []imgconv.EncodeOption{imgconv.Quality(p.Quality)},
	})
	if err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}

	utils.LogVerbose("Rendered thumbnail %s", outputPath)
	return nil
}

// escapeDrawText escapes title text for use inside a drawtext filter;
// commas end the filter expression and percent signs trigger text expansion
func escapeDrawText(title string) string {
	escaped := strings.ReplaceAll(title, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "'", "\\'")
	escaped = strings.ReplaceAll(escaped, ":", "\\:")
	escaped = strings.ReplaceAll(escaped, ",", "\\,")
	return strings.ReplaceAll(escaped, "%", "\\%")
}

// drawTitle burns the title text onto the template near the bottom edge
func (m *Module) drawTitle(ctx context.Context, p Params, title string, outputPath string) error {
	fontFileArg := ""
	if p.FontFile != "" {
		fontFileArg = fmt.Sprintf("fontfile=%s:", p.FontFile)
	}

	escapedText := escapeDrawText(title)

	filter := fmt.Sprintf(
		"drawtext=%stext='%s':fontcolor=white:fontsize=%d:borderw=2:bordercolor=black:x=(w-text_w)/2:y=h-text_h-50",
		fontFileArg,
		escapedText,
		p.FontSize,
	)

	args := []string{
		"-i", p.Template,
		"-vf", filter,
		"-frames:v", "1",
		"-y",
	}

	// Add quiet flags if enabled
	if p.Quiet {
		args = append(args, "-v", "error")
	}

	args = append(args, outputPath)

	cmd := execCommand(ctx, "ffmpeg", args...)

	var stderr strings.Builder
	if p.Quiet {
		cmd.Stdout = nil
		cmd.Stderr = &stderr
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		if p.Quiet && stderr.Len() > 0 {
			utils.LogError("FFmpeg error: %s", stderr.String())
		}
		return fmt.Errorf("ffmpeg command failed: %w", err)
	}

	// Verify the output file was created
	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		return fmt.Errorf("ffmpeg command completed but output file was not created: %s", outputPath)
	}

	return nil
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
			{
				Name:        "template",
				Description: "Path to the thumbnail template image",
				Patterns:    []string{".png", ".jpg", ".jpeg"},
				Type:        string(modules.InputTypeFile),
			},
		},
		OptionalInputs: []modules.ModuleInput{
			{
				Name:        "fontSize",
				Description: "Title font size (default: 52)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "fontFile",
				Description: "Font file for the title text",
				Type:        string(modules.InputTypeFile),
			},
			{
				Name:        "width",
				Description: "Thumbnail width (default: 1280)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "height",
				Description: "Thumbnail height (default: 720)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "quality",
				Description: "JPEG quality (default: 85)",
				Type:        string(modules.InputTypeData),
			},
		},
		ProducedOutputs: []modules.ModuleOutput{
			{
				Name:        "thumbnails",
				Description: "Directory of thumbnail images",
				Patterns:    []string{".jpg"},
				Type:        string(modules.OutputTypeDirectory),
			},
		},
	}
}
