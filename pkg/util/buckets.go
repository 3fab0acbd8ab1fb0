package util

import (
	"fmt"
	"math"
	"strconv"
)

func parseBucketBoundary(significand string, exponent int) float64 {
	v, err := strconv.ParseFloat(fmt.Sprintf("%se%d", significand, exponent), 64)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse bucket boundary: %s", err))
	}
	return v
}

// DecimalExponentialBuckets generates bucket boundaries for Prometheus
// histograms that grow by a factor of 10^(1/(stepsInBetween+1)). Every
// power of ten is represented exactly. Boundaries in between are
// truncated to five significant digits, so that the "le" label values
// remain short and independent of the floating point unit in use.
func DecimalExponentialBuckets(lowestPowerOf10, powersOf10, stepsInBetween int) []float64 {
	significands := make([]string, stepsInBetween+1)
	for i := range significands {
		s := strconv.FormatFloat(math.Pow(10, float64(i)/float64(stepsInBetween+1)), 'f', 6, 64)
		significands[i] = s[:6]
	}

	buckets := make([]float64, 0, powersOf10*len(significands)+1)
	for exponent := lowestPowerOf10; exponent < lowestPowerOf10+powersOf10; exponent++ {
		for _, significand := range significands {
			buckets = append(buckets, parseBucketBoundary(significand, exponent))
		}
	}
	return append(buckets, parseBucketBoundary("1", lowestPowerOf10+powersOf10))
}
