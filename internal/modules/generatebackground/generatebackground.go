package generatebackground

import (
	"context"
	"fmt"
	"path/filepath"

	modules "github.com/quoteforge/quoteforge/internal/mod"
	openaisvc "github.com/quoteforge/quoteforge/internal/services/openai"
	"github.com/quoteforge/quoteforge/internal/utils"
)

// defaultPrompt is used when a quote carries no image prompt of its own
const defaultPrompt = "tranquil lake at sunrise with misty mountains"

// Module implements the background image generation functionality
type Module struct {
	imageService openaisvc.ImageService
}

// Params contains the parameters for background generation
type Params struct {
	Input  string `json:"input"`  // Path to the quote deck file
	Output string `json:"output"` // Path to output directory
	Model  string `json:"model"`  // Image model (default: dall-e-3)
	Size   string `json:"size"`   // Image size (default: 1024x1792)
}

// New creates a new generatebackground module
func New() modules.Module {
	return &Module{}
}

// NewWithService creates a new generatebackground module with a custom image service
func NewWithService(service openaisvc.ImageService) modules.Module {
	return &Module{imageService: service}
}

// Name returns the module name
func (m *Module) Name() string {
	return "generatebackground"
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

	return nil
}

// Execute generates one background image per quote in the deck
func (m *Module) Execute(ctx context.Context, params map[string]interface{}) (modules.ModuleResult, error) {
	var p Params
	if err := modules.ParseParams(params, &p); err != nil {
		return modules.ModuleResult{}, err
	}

	service := m.imageService
	if service == nil {
		realService, err := openaisvc.NewService()
		if err != nil {
			return modules.ModuleResult{}, err
		}
		service = realService
	}

	resolvedInput := utils.ResolveOutputPath(p.Input, p.Output)
	deck, err := utils.ReadDeckFile(resolvedInput)
	if err != nil {
		return modules.ModuleResult{}, err
	}

	utils.LogInfo("Generating %d background images", len(deck.Quotes))

	for i, entry := range deck.Quotes {
		prompt := entry.ImagePrompt
		if prompt == "" {
			prompt = defaultPrompt
		}

		outPath := filepath.Join(p.Output, fmt.Sprintf("background_%02d.png", i))
		err := service.GenerateImage(ctx, openaisvc.ImageRequest{
			Prompt: prompt,
			Model:  p.Model,
			Size:   p.Size,
		}, outPath)
		if err != nil {
			return modules.ModuleResult{}, fmt.Errorf("failed to generate background %d: %w", i, err)
		}

		utils.LogVerbose("Wrote background %s", outPath)
	}

	utils.LogSuccess("Generated %d backgrounds in %s", len(deck.Quotes), p.Output)

	return modules.ModuleResult{
		Outputs: map[string]string{
			"images": p.Output,
		},
		Statistics: map[string]interface{}{
			"imageCount": len(deck.Quotes),
		},
	}, nil
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
				Name:        "model",
				Description: "Image model (default: dall-e-3)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "size",
				Description: "Image size (default: 1024x1792)",
				Type:        string(modules.InputTypeData),
			},
		},
		ProducedOutputs: []modules.ModuleOutput{
			{
				Name:        "images",
				Description: "Directory of background images",
				Patterns:    []string{".png"},
				Type:        string(modules.OutputTypeDirectory),
			},
		},
	}
}
