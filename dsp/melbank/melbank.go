package melbank

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-binaural/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrLengthMismatch indicates a buffer length different from the contract.
	ErrLengthMismatch = errors.New("melbank: buffer length mismatch")
	// ErrBandCountMismatch indicates a band slice count different from NumBands.
	ErrBandCountMismatch = errors.New("melbank: band count mismatch")
)

// Bank decomposes fixed-length frames into mel-spaced sub-band signals plus a
// residual, and reconstructs frames from them.
//
// Each sub-band is the inverse transform of the frame spectrum weighted by a
// triangular mel-domain filter. The residual carries the spectrum not covered
// by any band (including DC and everything outside the configured frequency
// range). Per frequency bin the band weights and the residual weight sum to
// exactly 1, so Decompose followed by Reconstruct is the identity transform
// up to floating-point rounding.
type Bank struct {
	numBands   int
	frameLen   int
	sampleRate float64
	lowHz      float64
	highHz     float64

	centers []float64 // per-band center frequency in Hz

	weights  [][]float64 // per band, indexed by rfft bin 0..frameLen/2
	residual []float64   // 1 - sum of band weights per rfft bin

	plan    *algofft.Plan[complex128]
	spec    []complex128 // spectrum of the current frame
	scratch []complex128 // weighted spectrum / inverse transform buffer
}

// New creates a mel filter bank.
//
// frameLen must be a power of two. The frequency range (lowHz, highHz] must be
// positive, increasing, and bounded by the Nyquist frequency.
func New(numBands, frameLen int, sampleRate, lowHz, highHz float64) (*Bank, error) {
	if numBands < 1 {
		return nil, fmt.Errorf("melbank: numBands must be >= 1, got %d", numBands)
	}

	if frameLen < 4 || !core.IsPowerOf2(frameLen) {
		return nil, fmt.Errorf("melbank: frameLen must be a power of two >= 4, got %d", frameLen)
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return nil, fmt.Errorf("melbank: invalid sample rate %.3f", sampleRate)
	}

	nyquist := sampleRate / 2
	if lowHz <= 0 || highHz <= lowHz || highHz > nyquist {
		return nil, fmt.Errorf("melbank: frequency range %.2f-%.2f Hz invalid for nyquist %.2f Hz",
			lowHz, highHz, nyquist)
	}

	plan, err := algofft.NewPlan64(frameLen)
	if err != nil {
		return nil, fmt.Errorf("melbank: failed to create FFT plan: %w", err)
	}

	b := &Bank{
		numBands:   numBands,
		frameLen:   frameLen,
		sampleRate: sampleRate,
		lowHz:      lowHz,
		highHz:     highHz,
		plan:       plan,
		spec:       make([]complex128, frameLen),
		scratch:    make([]complex128, frameLen),
	}

	b.buildFilters()

	return b, nil
}

// NumBands returns the number of sub-bands.
func (b *Bank) NumBands() int { return b.numBands }

// FrameLength returns the frame length in samples.
func (b *Bank) FrameLength() int { return b.frameLen }

// SampleRate returns the sample rate the bank was built for.
func (b *Bank) SampleRate() float64 { return b.sampleRate }

// CenterFrequencies returns the per-band center frequencies in Hz,
// ordered low to high. The returned slice is a copy.
func (b *Bank) CenterFrequencies() []float64 {
	out := make([]float64, len(b.centers))
	copy(out, b.centers)
	return out
}

// Decompose splits frame into numBands sub-band signals plus a residual.
// bands must hold exactly NumBands slices; each slice, the residual, and the
// frame must have FrameLength samples.
func (b *Bank) Decompose(bands [][]float64, residual, frame []float64) error {
	if len(bands) != b.numBands {
		return fmt.Errorf("%w: got %d band buffers, want %d", ErrBandCountMismatch, len(bands), b.numBands)
	}

	if len(frame) != b.frameLen || len(residual) != b.frameLen {
		return fmt.Errorf("%w: frame/residual must have %d samples", ErrLengthMismatch, b.frameLen)
	}

	for i := range bands {
		if len(bands[i]) != b.frameLen {
			return fmt.Errorf("%w: band %d has %d samples, want %d", ErrLengthMismatch, i, len(bands[i]), b.frameLen)
		}
	}

	for i, v := range frame {
		b.spec[i] = complex(v, 0)
	}

	if err := b.plan.Forward(b.spec, b.spec); err != nil {
		return fmt.Errorf("melbank: forward FFT failed: %w", err)
	}

	for band := range bands {
		if err := b.synthesizeBand(bands[band], b.weights[band]); err != nil {
			return err
		}
	}

	return b.synthesizeBand(residual, b.residual)
}

// Reconstruct sums the sub-band signals and the residual into frame.
// The length contract matches Decompose.
func (b *Bank) Reconstruct(frame []float64, bands [][]float64, residual []float64) error {
	if len(bands) != b.numBands {
		return fmt.Errorf("%w: got %d band buffers, want %d", ErrBandCountMismatch, len(bands), b.numBands)
	}

	if len(frame) != b.frameLen || len(residual) != b.frameLen {
		return fmt.Errorf("%w: frame/residual must have %d samples", ErrLengthMismatch, b.frameLen)
	}

	for i := range bands {
		if len(bands[i]) != b.frameLen {
			return fmt.Errorf("%w: band %d has %d samples, want %d", ErrLengthMismatch, i, len(bands[i]), b.frameLen)
		}
	}

	copy(frame, residual)
	for i := range bands {
		vecmath.AddBlockInPlace(frame, bands[i])
	}

	return nil
}

// synthesizeBand applies the per-bin weights to the current frame spectrum
// and inverse-transforms the result into dst.
func (b *Bank) synthesizeBand(dst, weights []float64) error {
	n := b.frameLen
	half := n / 2

	// Weights are defined on rfft bins 0..n/2; conjugate bins share the
	// weight of their mirror so the result stays real.
	b.scratch[0] = b.spec[0] * complex(weights[0], 0)
	b.scratch[half] = b.spec[half] * complex(weights[half], 0)

	for k := 1; k < half; k++ {
		w := complex(weights[k], 0)
		b.scratch[k] = b.spec[k] * w
		b.scratch[n-k] = b.spec[n-k] * w
	}

	if err := b.plan.Inverse(b.scratch, b.scratch); err != nil {
		return fmt.Errorf("melbank: inverse FFT failed: %w", err)
	}

	for i := range dst {
		dst[i] = real(b.scratch[i])
	}

	return nil
}

// buildFilters computes the triangular mel-domain band weights, the residual
// weights, and the band center frequencies.
func (b *Bank) buildFilters() {
	half := b.frameLen / 2

	melLow := hzToMel(b.lowHz)
	melHigh := hzToMel(b.highHz)

	// numBands+2 equally spaced mel points: band i spans points i..i+2 with
	// its peak at point i+1.
	points := make([]float64, b.numBands+2)
	for i := range points {
		points[i] = melLow + float64(i)*(melHigh-melLow)/float64(b.numBands+1)
	}

	b.centers = make([]float64, b.numBands)
	for i := range b.centers {
		b.centers[i] = melToHz(points[i+1])
	}

	binMel := make([]float64, half+1)
	for k := range binMel {
		binMel[k] = hzToMel(float64(k) * b.sampleRate / float64(b.frameLen))
	}

	b.weights = make([][]float64, b.numBands)
	b.residual = make([]float64, half+1)

	for i := range b.residual {
		b.residual[i] = 1
	}

	for band := range b.weights {
		w := make([]float64, half+1)
		lo, mid, hi := points[band], points[band+1], points[band+2]

		for k, m := range binMel {
			switch {
			case m <= lo || m >= hi:
				// outside the triangle
			case m <= mid:
				w[k] = (m - lo) / (mid - lo)
			default:
				w[k] = (hi - m) / (hi - mid)
			}

			b.residual[k] -= w[k]
		}

		b.weights[band] = w
	}
}

// hzToMel converts a frequency in Hz to the mel scale.
func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

// melToHz converts a mel-scale value back to Hz.
func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}
