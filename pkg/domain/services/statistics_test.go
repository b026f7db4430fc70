package services

import (
	"math"
	"testing"
)

func TestZValue(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{0.95, 1.645},
		{0.90, 1.28},
		{0.99, 2.326},
		{0.975, 1.96},
		{0.94, 1.645}, // nearest table entry
	}
	for _, tt := range tests {
		if got := ZValue(tt.level); got != tt.want {
			t.Errorf("ZValue(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestMeanAndStdDev(t *testing.T) {
	samples := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	if got := Mean(samples); got != 5 {
		t.Errorf("Mean = %v, want 5", got)
	}
	// Population standard deviation.
	if got := StdDev(samples); got != 2 {
		t.Errorf("StdDev = %v, want 2", got)
	}
	if got := StdDev(nil); got != 0 {
		t.Errorf("StdDev(nil) = %v, want 0", got)
	}
}

func TestQuantileSorted_LinearInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}

	if got := QuantileSorted(sorted, 0.5); got != 30 {
		t.Errorf("Q(0.5) = %v, want 30", got)
	}
	if got := QuantileSorted(sorted, 0.75); got != 40 {
		t.Errorf("Q(0.75) = %v, want 40", got)
	}
	// 0.6 falls between index 2 and 3: 30 + 0.4*(40-30).
	if got := QuantileSorted(sorted, 0.6); math.Abs(got-34) > 1e-9 {
		t.Errorf("Q(0.6) = %v, want 34", got)
	}
	if got := QuantileSorted(sorted, 1); got != 50 {
		t.Errorf("Q(1) = %v, want 50", got)
	}
}

func TestRand_Deterministic(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)

	for i := 0; i < 1000; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("Sequence diverged at %d: %v != %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("Value out of [0,1): %v", va)
		}
	}

	c := NewRand(43)
	same := true
	a2 := NewRand(42)
	for i := 0; i < 10; i++ {
		if a2.Float64() != c.Float64() {
			same = false
		}
	}
	if same {
		t.Error("Expected different sequences for different seeds")
	}
}

func TestRand_Intn(t *testing.T) {
	rng := NewRand(7)
	for i := 0; i < 1000; i++ {
		v := rng.Intn(13)
		if v < 0 || v >= 13 {
			t.Fatalf("Intn(13) out of range: %d", v)
		}
	}
}

func TestRand_NormalMoments(t *testing.T) {
	rng := NewRand(99)
	const n = 20000
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := rng.Normal(10, 2)
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	variance := sumSq/n - mean*mean

	if math.Abs(mean-10) > 0.1 {
		t.Errorf("Sample mean = %v, want ~10", mean)
	}
	if math.Abs(math.Sqrt(variance)-2) > 0.1 {
		t.Errorf("Sample stddev = %v, want ~2", math.Sqrt(variance))
	}
}
