package binaural

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-binaural/dsp/core"
	"github.com/cwbudde/algo-binaural/dsp/melbank"
	"github.com/cwbudde/algo-vecmath"
)

// Algorithm constants. The frame rate fixes the analysis window shift; the
// forgetting factor is the decay of the temporal power memory; the scaling
// factor is rho in Kim et al.'s paper (0.01, roughly -40 dB).
const (
	// NumBins is the fixed number of time-frequency bins.
	NumBins = 45

	numChannels      = 2
	frameRate        = 0.050 // seconds, window shift and half the window size
	acceptanceAngle  = 10 * math.Pi / 180
	forgettingFactor = 0.04
	scalingFactor    = 0.01
)

// MaskingMethod selects how rejected time-frequency bins are attenuated.
type MaskingMethod int

const (
	// MethodFactor divides spatially rejected bins by one fixed factor and
	// temporally rejected bins by another.
	MethodFactor MaskingMethod = iota
	// MethodRelative multiplies rejected bins by the ratio of the scaled
	// power history to the bin's current power, pulling them down to a
	// floor roughly 40 dB below the history.
	MethodRelative
	// MethodFull zeroes rejected bins entirely.
	MethodFull
)

// String returns the method name.
func (m MaskingMethod) String() string {
	switch m {
	case MethodFactor:
		return "Factor"
	case MethodRelative:
		return "Relative"
	case MethodFull:
		return "Full"
	default:
		return "Unknown"
	}
}

var (
	// ErrChannelCount indicates an attempt to process anything other than
	// exactly two channels.
	ErrChannelCount = errors.New("binaural: exactly two channels are supported")
	// ErrInvalidChannel indicates a channel index outside {0, 1}.
	ErrInvalidChannel = errors.New("binaural: channel index out of range")
	// ErrLengthMismatch indicates a buffer length different from the contract.
	ErrLengthMismatch = errors.New("binaural: buffer length mismatch")
)

// Masker performs binaural spatial-temporal masking on analysis frames.
//
// The zero value is not usable; construct with [New]. A Masker is stateful
// (per-bin power history) and must not be used concurrently.
type Masker struct {
	sampleRate  float64
	micDistance float64
	method      MaskingMethod

	frameLen int

	spatialFactor  float64 // divisor for spatially rejected bins (MethodFactor)
	temporalFactor float64 // divisor for temporally rejected bins (MethodFactor)
	enhanceFactor  float64 // gain for accepted bins

	banks [numChannels]*melbank.Bank

	thresholds []float64 // per-bin minimum accepted correlation, immutable
	power      []float64 // per-bin smoothed power history
	primed     bool      // power history seeded by a first frame

	viewScratch [][]float64
}

// New creates a Masker for the given sample rate.
//
// The analysis window size is the next power of two above 50 ms worth of
// samples; the frequency range, microphone distance, masking method, and
// masking/enhancement factors are configurable through options.
func New(sampleRate float64, opts ...Option) (*Masker, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("binaural: sample rate must be positive and finite: %f", sampleRate)
	}

	cfg := defaultMaskerConfig(sampleRate)

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.micDistance <= 0 || math.IsNaN(cfg.micDistance) {
		return nil, fmt.Errorf("binaural: microphone distance must be positive: %f", cfg.micDistance)
	}

	switch cfg.method {
	case MethodFactor, MethodRelative, MethodFull:
	default:
		return nil, fmt.Errorf("binaural: unknown masking method %d", int(cfg.method))
	}

	if cfg.spatialFactor < 1 || cfg.temporalFactor < 1 {
		return nil, fmt.Errorf("binaural: masking factors must be >= 1: spatial %f, temporal %f",
			cfg.spatialFactor, cfg.temporalFactor)
	}

	if cfg.enhanceFactor < 1 {
		return nil, fmt.Errorf("binaural: enhance factor must be >= 1: %f", cfg.enhanceFactor)
	}

	frameLen := core.NextPowerOf2(int(math.Round(frameRate * sampleRate)))

	m := &Masker{
		sampleRate:     sampleRate,
		micDistance:    cfg.micDistance,
		method:         cfg.method,
		frameLen:       frameLen,
		spatialFactor:  cfg.spatialFactor,
		temporalFactor: cfg.temporalFactor,
		enhanceFactor:  cfg.enhanceFactor,
		power:          make([]float64, NumBins),
		viewScratch:    make([][]float64, 0, NumBins),
	}

	for ch := range m.banks {
		bank, err := melbank.New(NumBins, frameLen, sampleRate, cfg.lowHz, cfg.highHz)
		if err != nil {
			return nil, err
		}

		m.banks[ch] = bank
	}

	m.thresholds = acceptanceThresholds(m.banks[0].CenterFrequencies(), cfg.micDistance)

	return m, nil
}

// FrameLength returns the analysis window size in samples (a power of two).
func (m *Masker) FrameLength() int { return m.frameLen }

// AnalysisLength returns the per-channel analysis buffer size:
// NumBins sub-band signals plus one residual, each FrameLength samples.
func (m *Masker) AnalysisLength() int { return (NumBins + 1) * m.frameLen }

// NumChannels returns the number of input channels (always 2).
func (m *Masker) NumChannels() int { return numChannels }

// SampleRate returns the sample rate in Hz.
func (m *Masker) SampleRate() float64 { return m.sampleRate }

// Method returns the configured masking method.
func (m *Masker) Method() MaskingMethod { return m.method }

// NonMaskingAngle returns the acceptance cone half-angle in degrees.
func (m *Masker) NonMaskingAngle() float64 { return acceptanceAngle * 180 / math.Pi }

// MicrophoneDistance returns the distance between the microphones in metres.
func (m *Masker) MicrophoneDistance() float64 { return m.micDistance }

// SpatialMaskingFactor returns the gain applied to spatially rejected bins
// under [MethodFactor] (the reciprocal of the configured divisor).
func (m *Masker) SpatialMaskingFactor() float64 { return 1 / m.spatialFactor }

// TemporalMaskingFactor returns the gain applied to temporally rejected bins
// under [MethodFactor] (the reciprocal of the configured divisor).
func (m *Masker) TemporalMaskingFactor() float64 { return 1 / m.temporalFactor }

// Thresholds returns a copy of the per-bin acceptance correlation thresholds.
func (m *Masker) Thresholds() []float64 {
	out := make([]float64, len(m.thresholds))
	copy(out, m.thresholds)
	return out
}

// CenterFrequencies returns the per-bin center frequencies in Hz.
func (m *Masker) CenterFrequencies() []float64 {
	return m.banks[0].CenterFrequencies()
}

// Reset clears the per-bin power history.
func (m *Masker) Reset() {
	core.Zero(m.power)
	m.primed = false
}

// FrameAnalysis decomposes one channel's frame into the analysis buffer:
// NumBins sub-band signals followed by the residual, bin-major, each slot
// FrameLength samples. It overwrites analysis and touches no other state.
func (m *Masker) FrameAnalysis(analysis, frame []float64, channel int) error {
	if channel < 0 || channel >= numChannels {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}

	if len(frame) != m.frameLen {
		return fmt.Errorf("%w: frame has %d samples, want %d", ErrLengthMismatch, len(frame), m.frameLen)
	}

	if len(analysis) != m.AnalysisLength() {
		return fmt.Errorf("%w: analysis has %d samples, want %d", ErrLengthMismatch, len(analysis), m.AnalysisLength())
	}

	bands, residual := m.bandViews(analysis)

	return m.banks[channel].Decompose(bands, residual, frame)
}

// ProcessParametrisation evaluates the spatial and temporal rejection tests
// for every bin and rewrites both channels' analysis buffers in place.
// analyses must hold exactly the two channel buffers, left then right.
//
// The per-bin power history is updated unconditionally after each decision;
// the first processed frame seeds the history directly.
func (m *Masker) ProcessParametrisation(analyses [][]float64) error {
	if len(analyses) != numChannels {
		return fmt.Errorf("%w: got %d analysis buffers", ErrChannelCount, len(analyses))
	}

	for ch := range analyses {
		if len(analyses[ch]) != m.AnalysisLength() {
			return fmt.Errorf("%w: channel %d analysis has %d samples, want %d",
				ErrLengthMismatch, ch, len(analyses[ch]), m.AnalysisLength())
		}
	}

	for bin := range NumBins {
		left := analyses[0][bin*m.frameLen : (bin+1)*m.frameLen]
		right := analyses[1][bin*m.frameLen : (bin+1)*m.frameLen]

		spatial := m.spatialMasking(left, right, bin)

		power := framePower(left, right)
		temporal := m.temporalMasking(power, bin)

		if spatial || temporal {
			m.maskBin(left, right, spatial, temporal, power, bin)
		} else if m.enhanceFactor != 1 {
			vecmath.ScaleBlock(left, left, m.enhanceFactor)
			vecmath.ScaleBlock(right, right, m.enhanceFactor)
		}

		if m.primed {
			// Flushing keeps the decaying memory from lingering in the
			// denormal range after long silence.
			m.power[bin] = core.FlushDenormals((1-forgettingFactor)*m.power[bin] + forgettingFactor*power)
		} else {
			m.power[bin] = power
		}
	}

	m.primed = true

	return nil
}

// FrameSynthesis reconstructs one channel's frame from the (possibly masked)
// analysis buffer. With no masking or enhancement applied this is the exact
// inverse of FrameAnalysis.
func (m *Masker) FrameSynthesis(frame, analysis []float64, channel int) error {
	if channel < 0 || channel >= numChannels {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}

	if len(frame) != m.frameLen {
		return fmt.Errorf("%w: frame has %d samples, want %d", ErrLengthMismatch, len(frame), m.frameLen)
	}

	if len(analysis) != m.AnalysisLength() {
		return fmt.Errorf("%w: analysis has %d samples, want %d", ErrLengthMismatch, len(analysis), m.AnalysisLength())
	}

	bands, residual := m.bandViews(analysis)

	return m.banks[channel].Reconstruct(frame, bands, residual)
}

// spatialMasking reports whether the bin's inter-channel correlation falls
// below its acceptance threshold.
func (m *Masker) spatialMasking(left, right []float64, bin int) bool {
	return normalizedCorrelation(left, right) < m.thresholds[bin]
}

// temporalMasking reports whether the bin's current power has dropped below
// scalingFactor times its smoothed history. The first frame has no history
// and never rejects.
func (m *Masker) temporalMasking(power float64, bin int) bool {
	return m.primed && power < scalingFactor*m.power[bin]
}

// maskBin attenuates one rejected bin in both channels according to the
// configured method. When a bin is rejected by both tests under
// MethodFactor, the larger of the two divisors wins.
func (m *Masker) maskBin(left, right []float64, spatial, temporal bool, power float64, bin int) {
	switch m.method {
	case MethodFull:
		core.Zero(left)
		core.Zero(right)
	case MethodFactor:
		divisor := 1.0
		if spatial {
			divisor = m.spatialFactor
		}

		if temporal && m.temporalFactor > divisor {
			divisor = m.temporalFactor
		}

		if divisor != 1 {
			vecmath.ScaleBlock(left, left, 1/divisor)
			vecmath.ScaleBlock(right, right, 1/divisor)
		}
	case MethodRelative:
		// Rejected bins are scaled toward scalingFactor times their
		// smoothed power history. Bins already at or below that floor
		// pass unchanged, as do silent bins.
		if power <= 0 {
			return
		}

		gain := scalingFactor * m.power[bin] / power
		if gain < 1 {
			vecmath.ScaleBlock(left, left, gain)
			vecmath.ScaleBlock(right, right, gain)
		}
	}
}

// bandViews slices an analysis buffer into its NumBins band slots and the
// trailing residual slot.
func (m *Masker) bandViews(analysis []float64) ([][]float64, []float64) {
	bands := m.viewScratch[:0]
	for bin := range NumBins {
		bands = append(bands, analysis[bin*m.frameLen:(bin+1)*m.frameLen])
	}

	m.viewScratch = bands

	return bands, analysis[NumBins*m.frameLen:]
}

// normalizedCorrelation returns the zero-lag cross-correlation of left and
// right, normalized by the product of their L2 norms, in [-1, 1]. Defined
// as 0 when either signal has no energy.
func normalizedCorrelation(left, right []float64) float64 {
	var ll, rr, lr float64

	for i := range left {
		ll += left[i] * left[i]
		rr += right[i] * right[i]
		lr += left[i] * right[i]
	}

	if ll == 0 || rr == 0 {
		return 0
	}

	return lr / math.Sqrt(ll*rr)
}

// framePower returns the mean square of the channel-averaged signal.
func framePower(left, right []float64) float64 {
	var sum float64

	for i := range left {
		avg := 0.5 * (left[i] + right[i])
		sum += avg * avg
	}

	return sum / float64(len(left))
}
