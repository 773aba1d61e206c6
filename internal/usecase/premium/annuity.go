package premium

import "math"

// YearsPurchase returns the present value of 1 per year paid for termYears at yieldRate
// This is the standard finite annuity factor (1 - (1+i)^-n) / i
// A zero yield leaves the payments undiscounted, so the factor is the term itself
func YearsPurchase(termYears, yieldRate float64) float64 {
	if yieldRate == 0 {
		return termYears
	}

	// -Expm1(-n*Log1p(i)) == 1 - (1+i)^-n without cancellation for short terms
	return -math.Expm1(-termYears*math.Log1p(yieldRate)) / yieldRate
}
