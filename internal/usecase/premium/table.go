package premium

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/filippodiodati1-oss/leasehold-backend/internal/domain"
)

// TableInterpolated estimates the premium by interpolating precomputed reference rows
//
// Known limitation: the reference rows are all computed for a £500,000 property with
// £500 ground rent. Estimate ignores the caller's property value, ground rent and
// relativity, so results are only an approximation away from that baseline. Its
// output is not expected to agree with FormulaBased.
type TableInterpolated struct {
	rowsByRate      map[float64][]ReferenceRow // sorted by years
	fallbackRatePct float64
}

// NewTableInterpolated creates a TableInterpolated estimator over the compiled-in rows
// fallbackRatePct selects the rows used when no row matches the requested deferment rate
func NewTableInterpolated(fallbackRatePct float64) (*TableInterpolated, error) {
	return NewTableInterpolatedFromRows(referenceRows, fallbackRatePct)
}

// NewTableInterpolatedFromRows creates a TableInterpolated estimator over the given rows
// Returns an error if no row exists for the fallback rate
func NewTableInterpolatedFromRows(rows []ReferenceRow, fallbackRatePct float64) (*TableInterpolated, error) {
	rowsByRate := make(map[float64][]ReferenceRow)
	for _, row := range rows {
		rowsByRate[row.DefermentRatePct] = append(rowsByRate[row.DefermentRatePct], row)
	}

	for rate := range rowsByRate {
		group := rowsByRate[rate]
		sort.Slice(group, func(i, j int) bool {
			return group[i].Years < group[j].Years
		})
	}

	if len(rowsByRate[fallbackRatePct]) == 0 {
		return nil, fmt.Errorf("no reference rows for fallback deferment rate %v%%", fallbackRatePct)
	}

	return &TableInterpolated{
		rowsByRate:      rowsByRate,
		fallbackRatePct: fallbackRatePct,
	}, nil
}

// Strategy returns domain.StrategyTable
func (t *TableInterpolated) Strategy() domain.Strategy {
	return domain.StrategyTable
}

// Estimate interpolates the premium breakdown for the input's remaining years and deferment rate
// Logic:
//  1. Select rows matching the deferment rate exactly, else the fallback rate's rows
//  2. At or beyond either end of the table, return the boundary row unmodified
//  3. Otherwise interpolate total, grc, pvc and marriage value independently
//  4. Add the flat fees to the total
func (t *TableInterpolated) Estimate(input domain.ValuationInput) domain.ValuationResult {
	row := t.Interpolate(input.RemainingYears, input.DefermentRatePct)
	fees := decimal.NewFromFloat(input.Fees)

	return domain.ValuationResult{
		GroundRentCompensation: decimal.NewFromFloat(row.GRC),
		ReversionValue:         decimal.NewFromFloat(row.PVC),
		MarriageValue:          decimal.NewFromFloat(row.MarriageValue),
		Fees:                   fees,
		Total:                  decimal.NewFromFloat(row.Total).Add(fees),
	}
}

// Interpolate returns the reference row for the given years and deferment rate
// Years between two rows yield a row whose fields are linearly interpolated
func (t *TableInterpolated) Interpolate(years, defermentRatePct float64) ReferenceRow {
	// 1. Table miss falls back to the default rate
	rows, ok := t.rowsByRate[defermentRatePct]
	if !ok {
		rows = t.rowsByRate[t.fallbackRatePct]
	}

	// 2. No extrapolation past either end
	first, last := rows[0], rows[len(rows)-1]
	if years <= first.Years {
		return first
	}
	if years >= last.Years {
		return last
	}

	// 3. Bracket: rows[idx-1].Years < years <= rows[idx].Years
	idx := sort.Search(len(rows), func(i int) bool {
		return rows[i].Years >= years
	})
	upper := rows[idx]
	if upper.Years == years {
		return upper
	}
	lower := rows[idx-1]

	frac := (years - lower.Years) / (upper.Years - lower.Years)

	return ReferenceRow{
		Years:            years,
		GroundRent:       lerp(lower.GroundRent, upper.GroundRent, frac),
		ExtendedValue:    lerp(lower.ExtendedValue, upper.ExtendedValue, frac),
		DefermentRatePct: lower.DefermentRatePct,
		Total:            lerp(lower.Total, upper.Total, frac),
		GRC:              lerp(lower.GRC, upper.GRC, frac),
		PVC:              lerp(lower.PVC, upper.PVC, frac),
		MarriageValue:    lerp(lower.MarriageValue, upper.MarriageValue, frac),
	}
}

// lerp interpolates linearly from a to b
func lerp(a, b, frac float64) float64 {
	return a + frac*(b-a)
}
