package testutil

import "testing"

func TestRequireSliceNearlyEqualPasses(t *testing.T) {
	RequireSliceNearlyEqual(t, []float32{1, 2}, []float32{1, 2.0000001}, 1e-6)
	RequireSliceNearlyEqual(t, []float64{0.5}, []float64{0.5}, 0)
}

func TestRequireFinitePasses(t *testing.T) {
	RequireFinite(t, []float32{0, -1, 1e30})
}

func TestRequireAllZeroPasses(t *testing.T) {
	RequireAllZero(t, make([]float32, 16))
}

func TestEnergy(t *testing.T) {
	if got := Energy([]float32{3, 4}); got != 25 {
		t.Fatalf("Energy = %v, want 25", got)
	}
}
