package relativity

import (
	"sort"
)

const (
	// ThresholdYears is the lease length at and above which a lease carries no marriage value
	ThresholdYears = 80.0

	// MinRate and MaxRate bound every relativity the curve returns
	MinRate = 0.09
	MaxRate = 1.0
)

// Point is a single (remaining years -> relativity fraction) control point
type Point struct {
	Years float64
	Rate  float64
}

// Curve interpolates the relativity of a short lease from a sparse set of control points
// A Curve is immutable once built and safe for concurrent use
type Curve struct {
	points []Point
}

// defaultPoints are the statutory control points used by DefaultCurve
var defaultPoints = []Point{
	{Years: 1, Rate: 0.090},
	{Years: 5, Rate: 0.170},
	{Years: 10, Rate: 0.280},
	{Years: 15, Rate: 0.380},
	{Years: 20, Rate: 0.470},
	{Years: 25, Rate: 0.550},
	{Years: 30, Rate: 0.612},
	{Years: 40, Rate: 0.700},
	{Years: 50, Rate: 0.776},
	{Years: 60, Rate: 0.840},
	{Years: 70, Rate: 0.898},
	{Years: 79, Rate: 0.941},
	{Years: 80, Rate: 1.000},
}

// NewCurve creates a Curve from control points
// The points are copied and sorted by years, so callers may pass them in any order
func NewCurve(points []Point) *Curve {
	sorted := make([]Point, len(points))
	copy(sorted, points)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Years < sorted[j].Years
	})

	return &Curve{points: sorted}
}

// DefaultCurve returns the curve built from the statutory control points
func DefaultCurve() *Curve {
	return NewCurve(defaultPoints)
}

// Points returns a copy of the curve's control points, sorted by years
func (c *Curve) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// Rate returns the relativity fraction for the given remaining lease years
// Logic:
//  1. At or above ThresholdYears the lease is worth its full value (1.0)
//  2. At or below the smallest control point, return that point's rate unmodified
//  3. Otherwise interpolate linearly between the bracketing control points
//  4. Clamp the result to [MinRate, MaxRate]
//
// years must be finite
func (c *Curve) Rate(years float64) float64 {
	if years >= ThresholdYears {
		return MaxRate
	}

	if len(c.points) == 0 {
		return MinRate
	}

	// Floor: no extrapolation below the shortest tabulated lease
	first := c.points[0]
	if years <= first.Years {
		return first.Rate
	}

	// Binary search for the first control point >= years
	idx := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].Years >= years
	})

	// Above the longest control point (only possible on curves ending below the threshold)
	if idx >= len(c.points) {
		return clamp(c.points[len(c.points)-1].Rate)
	}

	hi := c.points[idx]
	if hi.Years == years {
		return clamp(hi.Rate)
	}

	lo := c.points[idx-1]
	rate := lo.Rate + (years-lo.Years)*(hi.Rate-lo.Rate)/(hi.Years-lo.Years)

	return clamp(rate)
}

// clamp bounds a rate to [MinRate, MaxRate]
func clamp(rate float64) float64 {
	if rate < MinRate {
		return MinRate
	}
	if rate > MaxRate {
		return MaxRate
	}
	return rate
}
