package quotes

import (
	"context"
)

// Quote is a single quote record returned by the quotes API
type Quote struct {
	Text   string
	Author string
}

// QuotesService defines the interface for quote retrieval operations
type QuotesService interface {
	// FetchQuotes retrieves up to limit quotes from the quotes API
	FetchQuotes(ctx context.Context, limit int) ([]Quote, error)
}

// Ensure Service implements QuotesService
var _ QuotesService = (*Service)(nil)
