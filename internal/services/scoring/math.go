package scoring

import "math"

// NormalCDF is the standard normal cumulative distribution function.
func NormalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// SampleStddev calculates the sample standard deviation (n-1 denominator),
// skipping NaN values. It returns NaN when fewer than two values remain
// or any value is infinite.
func SampleStddev(values []float64) float64 {
	n := 0
	mean := 0.0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsInf(v, 0) {
			return math.NaN()
		}
		mean += v
		n++
	}
	if n < 2 {
		return math.NaN()
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(n - 1)

	return math.Sqrt(variance)
}

// LogReturns calculates period-over-period log returns.
// Pairs with a non-positive price yield NaN.
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] > 0 && prices[i] > 0 {
			returns[i-1] = math.Log(prices[i] / prices[i-1])
		} else {
			returns[i-1] = math.NaN()
		}
	}
	return returns
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
