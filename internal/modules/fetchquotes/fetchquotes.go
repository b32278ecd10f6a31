package fetchquotes

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	modules "github.com/quoteforge/quoteforge/internal/mod"
	"github.com/quoteforge/quoteforge/internal/services/quotes"
	"github.com/quoteforge/quoteforge/internal/utils"
)

// serenityPrompts are the background scenes assigned to quotes
var serenityPrompts = []string{
	"tranquil lake at sunrise with misty mountains",
	"zen garden with raked sand and soft morning light",
	"forest path at dawn with gentle fog and sunbeams",
	"mountains bathed in golden hour light over a calm valley",
	"secluded waterfall surrounded by lush greenery",
}

// Module implements the quote fetching functionality
type Module struct {
	quotesService quotes.QuotesService
}

// Params contains the parameters for quote fetching
type Params struct {
	Output     string `json:"output"`     // Path to output directory
	OutputName string `json:"outputName"` // Custom output filename (default: quotes.yaml)
	Count      int    `json:"count"`      // Number of quotes to fetch (default: 10)
	BaseURL    string `json:"baseUrl"`    // Custom quotes API base URL (optional)
}

// New creates a new fetchquotes module
func New() modules.Module {
	return &Module{}
}

// NewWithService creates a new fetchquotes module with a custom quotes service
func NewWithService(service quotes.QuotesService) modules.Module {
	return &Module{quotesService: service}
}

// Name returns the module name
func (m *Module) Name() string {
	return "fetchquotes"
}

// Validate checks if the parameters are valid
func (m *Module) Validate(params map[string]interface{}) error {
	var p Params
	if err := modules.ParseParams(params, &p); err != nil {
		return err
	}

	if err := utils.ValidateOutputPath(p.Output); err != nil {
		return err
	}

	if p.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", p.Count)
	}

	if p.OutputName != "" {
		if err := utils.ValidateFileExtension(p.OutputName, []string{".yaml", ".yml"}); err != nil {
			return err
		}
	}

	return nil
}

// Execute fetches quotes from the API and writes the quote deck file
func (m *Module) Execute(ctx context.Context, params map[string]interface{}) (modules.ModuleResult, error) {
	var p Params
	if err := modules.ParseParams(params, &p); err != nil {
		return modules.ModuleResult{}, err
	}

	// Set default values
	if p.Count == 0 {
		p.Count = 10
	}
	if p.OutputName == "" {
		p.OutputName = "quotes.yaml"
	}

	service := m.quotesService
	if service == nil {
		if p.BaseURL != "" {
			service = quotes.NewServiceWithBaseURL(p.BaseURL)
		} else {
			service = quotes.NewService()
		}
	}

	utils.LogInfo("Fetching %d quotes", p.Count)

	fetched, err := service.FetchQuotes(ctx, p.Count)
	if err != nil {
		return modules.ModuleResult{}, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	deck := utils.QuoteDeck{
		Source:    "zenquotes",
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, quote := range fetched {
		deck.Quotes = append(deck.Quotes, utils.QuoteEntry{
			Text:        quote.Text,
			Author:      quote.Author,
			Title:       fmt.Sprintf("Inspiration: %s", quote.Author),
			Narration:   fmt.Sprintf("\"%s\" — %s", quote.Text, quote.Author),
			ImagePrompt: serenityPrompts[rng.Intn(len(serenityPrompts))],
		})
	}

	deckPath := filepath.Join(p.Output, p.OutputName)
	if err := utils.WriteDeckFile(deckPath, &deck); err != nil {
		return modules.ModuleResult{}, fmt.Errorf("failed to write quote deck: %w", err)
	}

	utils.LogSuccess("Saved %d quotes to %s", len(deck.Quotes), deckPath)

	return modules.ModuleResult{
		Outputs: map[string]string{
			"quotes": deckPath,
		},
		Statistics: map[string]interface{}{
			"quoteCount": len(deck.Quotes),
		},
	}, nil
}

// GetIO returns the module's input/output specification
func (m *Module) GetIO() modules.ModuleIO {
	return modules.ModuleIO{
		RequiredInputs: []modules.ModuleInput{
			{
				Name:        "output",
				Description: "Path to output directory",
				Type:        string(modules.InputTypeDirectory),
			},
		},
		OptionalInputs: []modules.ModuleInput{
			{
				Name:        "outputName",
				Description: "Custom output filename (default: quotes.yaml)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "count",
				Description: "Number of quotes to fetch (default: 10)",
				Type:        string(modules.InputTypeData),
			},
			{
				Name:        "baseUrl",
				Description: "Custom quotes API base URL",
				Type:        string(modules.InputTypeData),
			},
		},
		ProducedOutputs: []modules.ModuleOutput{
			{
				Name:        "quotes",
				Description: "Quote deck file",
				Patterns:    []string{".yaml", ".yml"},
				Type:        string(modules.OutputTypeFile),
			},
		},
	}
}
