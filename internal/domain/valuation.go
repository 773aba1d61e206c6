package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Strategy names a premium estimation strategy
type Strategy string

const (
	// StrategyFormula computes the premium from the closed-form present-value formula
	StrategyFormula Strategy = "FORMULA"
	// StrategyTable interpolates the premium from precomputed reference rows
	StrategyTable Strategy = "TABLE"
)

// ValuationInput holds the inputs of a single premium calculation
// Build it with NewValuationInput so that every field is known to be in range
type ValuationInput struct {
	PropertyValue    float64 // Long-lease (freehold-equivalent) value
	RemainingYears   float64 // Years left on the existing lease, may be fractional
	AnnualGroundRent float64 // Fixed annual ground rent currently paid
	DefermentRatePct float64 // Percentage yield used to discount the reversion
	RelativityRate   float64 // Fraction of full value the short lease represents
	Fees             float64 // Flat professional fees, only added by the table strategy
}

// ValuationResult holds the premium breakdown in whole currency units
type ValuationResult struct {
	GroundRentCompensation decimal.Decimal
	ReversionValue         decimal.Decimal
	MarriageValue          decimal.Decimal
	Fees                   decimal.Decimal
	Total                  decimal.Decimal
}

// PremiumEstimator estimates a lease extension premium
// Implementations are pure: identical inputs always give identical results
type PremiumEstimator interface {
	Strategy() Strategy
	Estimate(input ValuationInput) ValuationResult
}

// NewValuationInput builds a ValuationInput and validates it
func NewValuationInput(propertyValue, remainingYears, annualGroundRent, defermentRatePct, relativityRate, fees float64) (ValuationInput, error) {
	input := ValuationInput{
		PropertyValue:    propertyValue,
		RemainingYears:   remainingYears,
		AnnualGroundRent: annualGroundRent,
		DefermentRatePct: defermentRatePct,
		RelativityRate:   relativityRate,
		Fees:             fees,
	}
	if err := input.Validate(); err != nil {
		return ValuationInput{}, err
	}
	return input, nil
}

// Validate ensures the input is inside the domain the estimators are defined on
// Returns an error if validation fails
func (v ValuationInput) Validate() error {
	for _, f := range []float64{v.PropertyValue, v.RemainingYears, v.AnnualGroundRent, v.DefermentRatePct, v.RelativityRate, v.Fees} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return InvalidInputf("invalid valuation input: values must be finite")
		}
	}

	if v.PropertyValue <= 0 {
		return InvalidInputf("property value must be positive")
	}

	if v.RemainingYears <= 0 {
		return InvalidInputf("remaining years must be positive")
	}

	if v.AnnualGroundRent < 0 {
		return InvalidInputf("annual ground rent must not be negative")
	}

	// Deferment rate is a percentage strictly between 0 and 100
	if v.DefermentRatePct <= 0 || v.DefermentRatePct >= 100 {
		return InvalidInputf("deferment rate must be between 0 and 100 percent")
	}

	if v.RelativityRate < 0 || v.RelativityRate > 1 {
		return InvalidInputf("relativity rate must be between 0 and 1")
	}

	if v.Fees < 0 {
		return InvalidInputf("fees must not be negative")
	}

	return nil
}

// ParseStrategy converts a strategy name into a Strategy
// An empty name selects the formula strategy
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyFormula:
		return StrategyFormula, nil
	case StrategyTable:
		return StrategyTable, nil
	default:
		return "", InvalidInputf("invalid strategy: must be FORMULA or TABLE")
	}
}
