package services

import (
	"math"
	"sort"
)

// zTable maps supported service levels to standard normal Z values.
var zTable = []struct {
	Level float64
	Z     float64
}{
	{0.90, 1.28},
	{0.95, 1.645},
	{0.975, 1.96},
	{0.99, 2.326},
}

// ZValue returns the Z score for a service level. Non-standard levels map to
// the nearest tabulated level.
func ZValue(serviceLevel float64) float64 {
	best := zTable[0]
	for _, entry := range zTable[1:] {
		if math.Abs(entry.Level-serviceLevel) < math.Abs(best.Level-serviceLevel) {
			best = entry
		}
	}
	return best.Z
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the population standard deviation of xs.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := Mean(xs)
	sumSq := 0.0
	for _, x := range xs {
		d := x - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

// Quantile returns the q-quantile of xs using linear interpolation between
// order statistics. xs does not need to be sorted.
func Quantile(xs []float64, q float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return QuantileSorted(sorted, q)
}

// QuantileSorted is Quantile over an already ascending-sorted slice.
func QuantileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Rand is a deterministic, platform-independent PRNG (mulberry32). A seeded
// instance reproduces the same stream on every platform, which the Monte
// Carlo simulation relies on for recorded safety-stock values.
type Rand struct {
	state uint32

	// Box-Muller produces pairs; the spare value is cached.
	hasSpare bool
	spare    float64
}

// NewRand returns a mulberry32 generator seeded with seed.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return float64(z) / 4294967296.0
}

// Intn returns a uniform value in [0, n).
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float64() * float64(n))
}

// NormFloat64 returns a standard normal sample via the Box-Muller transform.
func (r *Rand) NormFloat64() float64 {
	if r.hasSpare {
		r.hasSpare = false
		return r.spare
	}
	var u1 float64
	for u1 == 0 {
		u1 = r.Float64()
	}
	u2 := r.Float64()
	mag := math.Sqrt(-2 * math.Log(u1))
	r.spare = mag * math.Sin(2*math.Pi*u2)
	r.hasSpare = true
	return mag * math.Cos(2*math.Pi*u2)
}

// Normal returns a sample from Normal(mean, stddev).
func (r *Rand) Normal(mean, stddev float64) float64 {
	return mean + stddev*r.NormFloat64()
}
