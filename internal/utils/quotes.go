package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// QuoteEntry is a single quote prepared for the video pipeline
type QuoteEntry struct {
	Text        string `yaml:"text"`
	Author      string `yaml:"author"`
	Title       string `yaml:"title"`
	Narration   string `yaml:"narration"`
	ImagePrompt string `yaml:"imagePrompt"`
}

// QuoteDeck represents the structure of the quotes.yaml file that the
// pipeline modules pass between each other
type QuoteDeck struct {
	Source    string       `yaml:"source"`
	FetchedAt string       `yaml:"fetchedAt"`
	Quotes    []QuoteEntry `yaml:"quotes"`
}

// ReadDeckFile reads and parses a quotes.yaml file
func ReadDeckFile(filePath string) (*QuoteDeck, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read quote deck: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("input path is a directory, expected a file: %s", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read quote deck: %w", err)
	}

	var deck QuoteDeck
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("failed to parse quote deck: %w", err)
	}

	if len(deck.Quotes) == 0 {
		return nil, fmt.Errorf("no quotes found in deck file")
	}

	return &deck, nil
}

// WriteDeckFile serializes a quote deck to a YAML file
func WriteDeckFile(filePath string, deck *QuoteDeck) error {
	data, err := yaml.Marshal(deck)
	if err != nil {
		return fmt.Errorf("failed to marshal quote deck: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write quote deck: %w", err)
	}

	return nil
}

// ListQuotes prints the quotes contained in a deck
func ListQuotes(deck *QuoteDeck) {
	LogInfo("Quotes in deck:")
	for i, quote := range deck.Quotes {
		LogInfo("%d. %s", i+1, quote.Title)
		LogInfo("   %s", quote.Narration)
		LogInfo("   Prompt: %s", quote.ImagePrompt)
		LogInfo("---")
	}
}
