package contour

import "math"

// Seeded pseudo-random helpers. Every value is a pure function of its
// integer seed: same seed, same result, in any process, in any order.
// That is what lets two clients regenerate identical contours from the
// same cell set without exchanging geometry.

const (
	sinA = 12.9898
	sinB = 78.233
	sinC = 43758.5453
)

// Spatial hash primes for folding a cell coordinate and a draw channel
// into one seed.
const (
	primeCol     = 73856093
	primeRow     = 19349663
	primeChannel = 83492791
)

// Unit maps an integer seed to a value in [0, 1).
func Unit(seed int) float64 {
	s := float64(seed)
	v := math.Sin(s*sinA+s*sinB) * sinC
	return v - math.Floor(v)
}

// Float maps a seed to a value in [min, max).
func Float(seed int, min, max float64) float64 {
	return min + Unit(seed)*(max-min)
}

// Int maps a seed to an integer in [min, max] inclusive.
func Int(seed, min, max int) int {
	n := min + int(Unit(seed)*float64(max-min+1))
	if n > max {
		n = max
	}
	return n
}

// cellSeed folds a cell coordinate and a per-cell draw channel into a
// single seed. Distinct channels give independent draws for the same cell.
func cellSeed(col, row, channel int) int {
	return col*primeCol ^ row*primeRow ^ channel*primeChannel
}
