package synthesizevoice

import (
	"context"
	"fmt"
	"path/filepath"

	modules "github.com/quoteforge/quoteforge/internal/mod"
	openaisvc "github.com/quoteforge/quoteforge/internal/services/openai"
	"github.com/quoteforge/quoteforge/internal/utils"
)

// Module implements the narration synthesis functionality
type Module struct {
	speechService openaisvc.SpeechService
}

// Params contains the parameters for narration synthesis
type Params struct {
	Input  string  `json:"input"`  // Path to the quote deck file
	Output string  `json:"output"` // Path to output directory
	Voice  string  `json:"voice"`  // Voice preset (default: alloy)
	Model  string  `json:"model"`  // Speech model (default: tts-1)
	Speed  float64 `json:"speed"`  // Playback speed multiplier (optional)
}

// New creates a new synthesizevoice module
func New() modules.Module {
	return &Module{}
}

// NewWithService creates a new synthesizevoice module with a custom speech service
func NewWithService(service openaisvc.SpeechService) modules.Module {
	return &Module{speechService: service}
}

// Name returns the module name
func (m *Module) Name() string {
	return "synthesizevoice"
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

// Execute synthesizes one narration audio file per quote in the deck
func (m *Module) Execute(ctx context.Context, params map[string]interface{}) (modules.ModuleResult, error) {
	var p Params
	if err := modules.ParseParams(params, &p); err != nil {
		return modules.ModuleResult{}, err
	}

	service := m.speechService
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

	utils.LogInfo("Synthesizing narration for %d quotes", len(deck.Quotes))

	for i, entry := range deck.Quotes {
		if entry.Narration == "" {
			return modules.ModuleResult{}, fmt.Errorf("quote %d has no narration text", i)
		}

		outPath := filepath.Join(p.Output, fmt.Sprintf("voice_%02d.mp3", i))
		err := service.SynthesizeSpeech(ctx, openaisvc.SpeechRequest{
			Text:  entry.Narration,
			Voice: p.Voice,
			Model: p.Model,
			Speed: p.Speed,
		}, outPath)
		if err != nil {
			return modules.ModuleResult{}, fmt.Errorf("failed to synthesize quote %d: %w", i, err)
		}

		utils.LogVerbose("Wrote narration %s", outPath)
	}

	utils.LogSuccess("Synthesized %d narration files in %s", len(deck.Quotes), p.Output)

	return modules.ModuleResult{
		Outputs: map[string]string{
			"audio": p.Output,
		},
		Statistics: map[string]interface{}{
			"narrationCount": len(deck.Quotes),
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
				Name:        "voice",
				Description: "Voice preset (default: alloy)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "model",
				Description: "Speech model (default: tts-1)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "speed",
				Description: "Playback speed multiplier",
				Type:        string(modules.InputTypeData),
			},
		},
		ProducedOutputs: []modules.ModuleOutput{
			{
				Name:        "audio",
				Description: "Directory of narration audio files",
				Patterns:    []string{".mp3"},
				Type:        string(modules.OutputTypeDirectory),
			},
		},
	}
}
