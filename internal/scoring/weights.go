package scoring

import (
	"math"
)

const (
	// TotalWeight is the percentage the enabled weights must add up to.
	TotalWeight = 100.0
	// WeightTolerance absorbs floating point drift in the weight sum.
	WeightTolerance = 0.01
)

// EnabledWeightSum returns the total weight of enabled criteria.
// Disabled criteria keep their stored weight but do not count.
func EnabledWeightSum(c Criteria) float64 {
	var sum float64
	for _, cr := range c.Enabled() {
		sum += cr.Weight
	}
	return sum
}

// ValidWeights reports whether the enabled weights sum to 100 within
// WeightTolerance. It is the single authoritative weight-sum check.
func ValidWeights(c Criteria) bool {
	return math.Abs(EnabledWeightSum(c)-TotalWeight) <= WeightTolerance
}

// AutoDistribute spreads 100% of the weight evenly across the enabled criteria.
// Each enabled criterion gets floor(100/n); the first enabled criterion in
// canonical order also absorbs the remainder. Disabled criteria are untouched
// and nothing happens when no criterion is enabled.
func AutoDistribute(c Criteria) {
	enabled := c.Enabled()
	n := len(enabled)
	if n == 0 {
		return
	}

	base := int(TotalWeight) / n
	remainder := int(TotalWeight) - base*n

	for _, cr := range enabled {
		cr.Weight = float64(base)
	}
	enabled[0].Weight += float64(remainder)
}
