package domain

import (
	"context"

	"github.com/google/uuid"
)

// QuoteRepository defines the interface for quote persistence operations
type QuoteRepository interface {
	// Create stores a new quote
	Create(ctx context.Context, quote *Quote) error

	// GetByID retrieves a quote by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Quote, error)

	// List retrieves a page of quotes, newest first
	// limit and offset are used for pagination
	List(ctx context.Context, limit, offset int) ([]*Quote, error)

	// Count returns the total number of stored quotes
	Count(ctx context.Context) (int, error)
}
