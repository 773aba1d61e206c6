package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/filippodiodati1-oss/leasehold-backend/internal/domain"
)

// quoteRepository implements domain.QuoteRepository in process memory
type quoteRepository struct {
	mu     sync.RWMutex
	quotes map[uuid.UUID]domain.Quote
}

// NewQuoteRepository creates a new in-memory quote repository
func NewQuoteRepository() domain.QuoteRepository {
	return &quoteRepository{quotes: make(map[uuid.UUID]domain.Quote)}
}

// Create stores a quote
func (r *quoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	if quote == nil {
		return domain.InvalidInputf("quote must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.quotes[quote.ID]; exists {
		return fmt.Errorf("failed to create quote: quote %s already exists", quote.ID)
	}
	r.quotes[quote.ID] = *quote

	return nil
}

// GetByID retrieves a quote by its ID
func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quote, ok := r.quotes[id]
	if !ok {
		return nil, fmt.Errorf("quote %w: %s", domain.ErrNotFound, id)
	}

	return &quote, nil
}

// List returns quotes ordered newest first
func (r *quoteRepository) List(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	r.mu.RLock()
	all := make([]domain.Quote, 0, len(r.quotes))
	for _, quote := range r.quotes {
		all = append(all, quote)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*domain.Quote{}, nil
	}
	end := len(all)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}

	page := make([]*domain.Quote, 0, end-offset)
	for i := offset; i < end; i++ {
		quote := all[i]
		page = append(page, &quote)
	}

	return page, nil
}

// Count returns the number of stored quotes
func (r *quoteRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.quotes), nil
}
