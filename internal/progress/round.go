package progress

import "math"

// NormalizeOneDecimal rounds half-up to one decimal place. Used on summed
// week counters to absorb floating point drift (0.1+0.2). A counter that
// overflowed to a non-finite value normalizes to 0.
func NormalizeOneDecimal(v float64) float64 {
	return roundTo(v, 10)
}

// RoundTwoDecimals rounds half-up to two decimal places.
func RoundTwoDecimals(v float64) float64 {
	return roundTo(v, 100)
}

func roundTo(v, scale float64) float64 {
	if !finite(v) {
		return 0
	}
	r := math.Floor(v*scale+0.5) / scale
	if !finite(r) {
		// too large to carry a fraction
		return v
	}
	return r
}

// percent returns round(num/den*100) half-up, or 0 when den is 0 or the
// ratio is not finite.
func percent(num, den float64) int {
	if den == 0 {
		return 0
	}
	r := num / den * 100
	if !finite(r) {
		return 0
	}
	return int(math.Floor(r + 0.5))
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
