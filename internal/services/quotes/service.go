package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the ZenQuotes API endpoint
const DefaultBaseURL = "https://zenquotes.io"

// zenQuote mirrors the ZenQuotes API response format
type zenQuote struct {
	Quote  string `json:"q"`
	Author string `json:"a"`
	HTML   string `json:"h"`
}

// Service fetches quotes from the ZenQuotes API
type Service struct {
	client *resty.Client
}

// NewService creates a quotes service backed by the public ZenQuotes API
func NewService() *Service {
	return NewServiceWithBaseURL(DefaultBaseURL)
}

// NewServiceWithBaseURL creates a quotes service against a custom endpoint
func NewServiceWithBaseURL(baseURL string) *Service {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)

	return &Service{client: client}
}

// FetchQuotes retrieves up to limit quotes from the quotes API
func (s *Service) FetchQuotes(ctx context.Context, limit int) ([]Quote, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("quote limit must be positive, got %d", limit)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		Get("/api/quotes")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("quotes API returned status %s: %s", resp.Status(), resp.String())
	}

	var raw []zenQuote
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse quotes response: %w", err)
	}

	quotes := make([]Quote, 0, limit)
	for _, item := range raw {
		if item.Quote == "" {
			continue
		}
		quotes = append(quotes, Quote{
			Text:   item.Quote,
			Author: item.Author,
		})
		if len(quotes) == limit {
			break
		}
	}

	if len(quotes) == 0 {
		return nil, fmt.Errorf("quotes API returned no usable quotes")
	}

	return quotes, nil
}
