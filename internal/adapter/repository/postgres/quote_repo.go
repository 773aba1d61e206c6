package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filippodiodati1-oss/leasehold-backend/internal/domain"
)

const quoteColumns = `
	id, created_at, strategy,
	property_value, remaining_years, annual_ground_rent, deferment_rate_pct, relativity_rate, fees,
	ground_rent_compensation, reversion_value, marriage_value, fees_amount, total,
	current_lease_value, extended_lease_value
`

// quoteRepository implements domain.QuoteRepository
type quoteRepository struct {
	db *DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *DB) domain.QuoteRepository {
	return &quoteRepository{db: db}
}

// Create stores a new quote
func (r *quoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	query := `INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, query,
		quote.ID,
		quote.CreatedAt,
		string(quote.Strategy),
		quote.Input.PropertyValue,
		quote.Input.RemainingYears,
		quote.Input.AnnualGroundRent,
		quote.Input.DefermentRatePct,
		quote.Input.RelativityRate,
		quote.Input.Fees,
		quote.Result.GroundRentCompensation.String(),
		quote.Result.ReversionValue.String(),
		quote.Result.MarriageValue.String(),
		quote.Result.Fees.String(),
		quote.Result.Total.String(),
		quote.CurrentLeaseValue.String(),
		quote.ExtendedLeaseValue.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}

	return nil
}

// GetByID retrieves a quote by its ID
func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	quote, err := scanQuote(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quote %w: %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get quote by ID: %w", err)
	}

	return quote, nil
}

// List returns quotes ordered newest first
func (r *quoteRepository) List(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + `
		FROM quotes
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*domain.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}
	if quotes == nil {
		quotes = []*domain.Quote{}
	}

	return quotes, nil
}

// Count returns the number of stored quotes
func (r *quoteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quotes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}
	return count, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanQuote reads one quote row
// DECIMAL columns are scanned as strings and parsed into decimal.Decimal
func scanQuote(row rowScanner) (*domain.Quote, error) {
	var quote domain.Quote
	var strategy string
	var grc, pvc, marriageValue, fees, total, current, extended string

	err := row.Scan(
		&quote.ID,
		&quote.CreatedAt,
		&strategy,
		&quote.Input.PropertyValue,
		&quote.Input.RemainingYears,
		&quote.Input.AnnualGroundRent,
		&quote.Input.DefermentRatePct,
		&quote.Input.RelativityRate,
		&quote.Input.Fees,
		&grc,
		&pvc,
		&marriageValue,
		&fees,
		&total,
		&current,
		&extended,
	)
	if err != nil {
		return nil, err
	}
	quote.Strategy = domain.Strategy(strategy)

	amounts := []struct {
		column string
		raw    string
		dst    *decimal.Decimal
	}{
		{"ground_rent_compensation", grc, &quote.Result.GroundRentCompensation},
		{"reversion_value", pvc, &quote.Result.ReversionValue},
		{"marriage_value", marriageValue, &quote.Result.MarriageValue},
		{"fees_amount", fees, &quote.Result.Fees},
		{"total", total, &quote.Result.Total},
		{"current_lease_value", current, &quote.CurrentLeaseValue},
		{"extended_lease_value", extended, &quote.ExtendedLeaseValue},
	}
	for _, a := range amounts {
		parsed, err := decimal.NewFromString(a.raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", a.column, err)
		}
		*a.dst = parsed
	}

	return &quote, nil
}
