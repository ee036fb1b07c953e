package window

import (
	"math"
	"testing"
)

func TestGenerateLengthAndRange(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming} {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len = %d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || v < 0 || v > 1 {
					t.Fatalf("coefficient[%d] out of range: %v", i, v)
				}
			}
		})
	}
}

func TestGenerateZeroLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("expected nil for zero length, got %v", w)
	}
}

func TestSymmetricHannEndpoints(t *testing.T) {
	w := Generate(TypeHann, 16)
	if w[0] != 0 || math.Abs(w[15]) > 1e-15 {
		t.Fatalf("symmetric Hann endpoints: %v %v", w[0], w[15])
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)

	b := Generate(TypeHann, 16, WithPeriodic())
	if a[15] == b[15] {
		t.Fatal("expected different end coefficient for periodic form")
	}
}

func TestPeriodicHannCOLAHalfOverlap(t *testing.T) {
	w := Generate(TypeHann, 512, WithPeriodic())

	minSum, maxSum, err := OverlapSum(w, 256)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(minSum-1) > 1e-12 || math.Abs(maxSum-1) > 1e-12 {
		t.Fatalf("overlap sum not constant 1: min=%v max=%v", minSum, maxSum)
	}
}

func TestOverlapSumErrors(t *testing.T) {
	if _, _, err := OverlapSum(nil, 4); err == nil {
		t.Fatal("expected error for empty coefficients")
	}

	w := Generate(TypeHann, 16)
	if _, _, err := OverlapSum(w, 5); err == nil {
		t.Fatal("expected error for hop not dividing length")
	}
}

func TestApplyCoefficientsInPlace(t *testing.T) {
	samples := []float64{1, 2, 3, 4}
	coeffs := []float64{1, 0.5, 0.5, 1}

	if err := ApplyCoefficientsInPlace(samples, coeffs); err != nil {
		t.Fatal(err)
	}

	want := []float64{1, 1, 1.5, 4}
	for i := range want {
		if samples[i] != want[i] {
			t.Fatalf("samples[%d] = %v, want %v", i, samples[i], want[i])
		}
	}

	if err := ApplyCoefficientsInPlace(samples, coeffs[:2]); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
