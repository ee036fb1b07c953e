package core

import "testing"

func TestCopyInto(t *testing.T) {
	dst := make([]float64, 2)

	n := CopyInto(dst, []float64{1, 2, 3})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("unexpected dst: %#v", dst)
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func TestNextPowerOf2(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{800, 1024},
		{1024, 1024},
		{1025, 2048},
	}

	for _, tc := range cases {
		if got := NextPowerOf2(tc.in); got != tc.want {
			t.Fatalf("NextPowerOf2(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestIsPowerOf2(t *testing.T) {
	for _, n := range []int{1, 2, 4, 1024} {
		if !IsPowerOf2(n) {
			t.Fatalf("IsPowerOf2(%d) = false, want true", n)
		}
	}

	for _, n := range []int{0, -4, 3, 1000} {
		if IsPowerOf2(n) {
			t.Fatalf("IsPowerOf2(%d) = true, want false", n)
		}
	}
}
