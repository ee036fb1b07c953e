package testutil

import "testing"

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 1, 64)
	b := DeterministicNoise(42, 1, 64)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestStereoPairs(t *testing.T) {
	left, right := CorrelatedStereo(1, 1, 32)
	for i := range left {
		if left[i] != right[i] {
			t.Fatalf("correlated pair differs at %d", i)
		}
	}

	left, right = AntiCorrelatedStereo(1, 1, 32)
	for i := range left {
		if left[i] != -right[i] {
			t.Fatalf("anti-correlated pair not inverted at %d", i)
		}
	}

	left, right = DecorrelatedStereo(1, 2, 1, 32)
	same := true
	for i := range left {
		if left[i] != right[i] {
			same = false
			break
		}
	}

	if same {
		t.Fatal("decorrelated pair is identical")
	}
}

func TestScaled(t *testing.T) {
	out := Scaled([]float64{1, -2, 0.5}, 2)

	want := []float64{2, -4, 1}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}
