package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote represents one premium computation recorded for later retrieval
type Quote struct {
	ID                 uuid.UUID
	CreatedAt          time.Time
	Strategy           Strategy
	Input              ValuationInput
	Result             ValuationResult
	CurrentLeaseValue  decimal.Decimal // Property value x relativity, the short lease as it stands
	ExtendedLeaseValue decimal.Decimal // Property value once the lease is extended
}

// WaitingCost is the projected premium after postponing the extension
type WaitingCost struct {
	WaitYears      float64
	RemainingYears float64 // Lease left at the time of the postponed extension
	Total          decimal.Decimal
}

// Validate ensures the quote adheres to domain rules
// Returns an error if validation fails
func (q *Quote) Validate() error {
	if q.ID == uuid.Nil {
		return InvalidInputf("quote must have an ID")
	}

	if q.Strategy != StrategyFormula && q.Strategy != StrategyTable {
		return InvalidInputf("quote strategy must be FORMULA or TABLE")
	}

	if err := q.Input.Validate(); err != nil {
		return err
	}

	// Every currency output is non-negative
	for _, amount := range []decimal.Decimal{
		q.Result.GroundRentCompensation,
		q.Result.ReversionValue,
		q.Result.MarriageValue,
		q.Result.Fees,
		q.Result.Total,
	} {
		if amount.IsNegative() {
			return InvalidInputf("quote result amounts must not be negative")
		}
	}

	return nil
}
