package premium

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/filippodiodati1-oss/leasehold-backend/internal/domain"
)

const (
	// GroundRentYield is the statutory yield ground rent is capitalised at
	// It does not follow the deferment rate, which only discounts the reversion
	GroundRentYield = 0.05

	// MarriageValueThresholdYears is the lease length from which marriage value is disregarded
	MarriageValueThresholdYears = 80.0

	// LandlordMarriageValueShare is the freeholder's share of the marriage value
	LandlordMarriageValueShare = 0.5
)

// FormulaBased estimates the premium from the closed-form present-value formula
type FormulaBased struct{}

// NewFormulaBased creates a FormulaBased estimator
func NewFormulaBased() *FormulaBased {
	return &FormulaBased{}
}

// Strategy returns domain.StrategyFormula
func (f *FormulaBased) Strategy() domain.Strategy {
	return domain.StrategyFormula
}

// Estimate computes the premium breakdown for a validated input
// Logic:
//  1. Ground rent compensation: ground rent x years' purchase at GroundRentYield
//  2. Reversion: property value discounted at the deferment rate over the remaining term
//  3. Marriage value (under 80 years only): half of the uplift the extension unlocks, floored at 0
//  4. Total = grc + reversion + marriage value, capped at the property value
//  5. Each field is rounded to whole currency units on its own
//
// Fees are a table-strategy add-on and are not applied here
func (f *FormulaBased) Estimate(input domain.ValuationInput) domain.ValuationResult {
	// 1. Ground Rent Compensation
	grc := input.AnnualGroundRent * YearsPurchase(input.RemainingYears, GroundRentYield)

	// 2. Reversion (present value of vacant possession at lease end)
	deferment := input.DefermentRatePct / 100
	pvc := input.PropertyValue * math.Pow(1+deferment, -input.RemainingYears)

	// 3. Marriage Value
	marriageValue := 0.0
	if input.RemainingYears < MarriageValueThresholdYears {
		existingLeaseholderInterest := input.PropertyValue * input.RelativityRate
		freeholdersExistingInterest := grc + pvc

		uplift := input.PropertyValue - (existingLeaseholderInterest + freeholdersExistingInterest)
		if uplift < 0 {
			uplift = 0
		}

		marriageValue = LandlordMarriageValueShare * uplift
	}

	// 4. Total, never more than the property itself is worth
	total := math.Min(grc+pvc+marriageValue, input.PropertyValue)

	// 5. Round each field independently
	return domain.ValuationResult{
		GroundRentCompensation: roundCurrency(grc),
		ReversionValue:         roundCurrency(pvc),
		MarriageValue:          roundCurrency(marriageValue),
		Fees:                   decimal.Zero,
		Total:                  roundCurrency(total),
	}
}

// roundCurrency rounds an amount to whole currency units, half away from zero
func roundCurrency(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(0)
}
