package window

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
)

var names = map[Type]string{
	TypeRectangular: "Rectangular",
	TypeHann:        "Hann",
	TypeHamming:     "Hamming",
}

// String returns the window name.
func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}

	return "Unknown"
}

var (
	errEmptyCoeffs      = errors.New("window: coefficients must not be empty")
	errMismatchedLength = errors.New("window: samples and coefficients must have same length")
	errInvalidHop       = errors.New("window: hop must be positive and divide the window length")
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures the periodic form (FFT framing) instead of the
// symmetric form. Overlap-add framing at a hop dividing the window length
// requires the periodic form for a constant overlap sum.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	denom := float64(length - 1)
	if cfg.periodic {
		denom = float64(length)
	}

	out := make([]float64, length)
	for i := range out {
		var x float64
		if denom > 0 {
			x = float64(i) / denom
		}

		out[i] = eval(t, x)
	}

	return out
}

func eval(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	case TypeHamming:
		return 0.54 - 0.46*math.Cos(2*math.Pi*x)
	default:
		return 1
	}
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// OverlapSum returns the minimum and maximum per-sample sum of the window
// shifted by hop across one period. A window satisfies the constant
// overlap-add condition at the given hop when min == max.
func OverlapSum(coeffs []float64, hop int) (minSum, maxSum float64, err error) {
	if len(coeffs) == 0 {
		return 0, 0, errEmptyCoeffs
	}

	if hop <= 0 || len(coeffs)%hop != 0 {
		return 0, 0, errInvalidHop
	}

	minSum = math.Inf(1)
	maxSum = math.Inf(-1)

	for n := range hop {
		sum := 0.0
		for i := n; i < len(coeffs); i += hop {
			sum += coeffs[i]
		}

		minSum = math.Min(minSum, sum)
		maxSum = math.Max(maxSum, sum)
	}

	return minSum, maxSum, nil
}
