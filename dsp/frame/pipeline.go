package frame

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-binaural/dsp/core"
	"github.com/cwbudde/algo-binaural/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrChannelCount indicates a channel slice count different from the
	// processor's channel count.
	ErrChannelCount = errors.New("frame: channel count mismatch")
	// ErrHopSize indicates an input or output block not exactly one hop long.
	ErrHopSize = errors.New("frame: blocks must be exactly one hop long")
)

// Processor handles the per-frame analysis, parametrisation, and synthesis
// steps of a short-time process. The pipeline invokes the three operations
// once per frame, in that order, with no frame overlap in processing.
type Processor interface {
	NumChannels() int
	FrameLength() int
	AnalysisLength() int

	// FrameAnalysis decomposes one channel's windowed frame into analysis.
	FrameAnalysis(analysis, frame []float64, channel int) error
	// ProcessParametrisation rewrites all channels' analysis buffers in place.
	ProcessParametrisation(analyses [][]float64) error
	// FrameSynthesis reconstructs one channel's frame from analysis.
	FrameSynthesis(frame, analysis []float64, channel int) error
}

type pipelineConfig struct {
	windowType window.Type
}

// Option configures a Pipeline.
type Option func(*pipelineConfig)

// WithWindow selects the analysis window. Defaults to Hann. The window must
// have a constant overlap sum at 50% overlap; the pipeline compensates for a
// constant sum different from 1 (e.g. Hamming, rectangular).
func WithWindow(t window.Type) Option {
	return func(cfg *pipelineConfig) {
		cfg.windowType = t
	}
}

// Pipeline blocks continuous multichannel input into windowed frames at 50%
// overlap, runs a [Processor] once per frame, and overlap-adds the
// reconstructed frames into continuous output.
//
// Input is consumed and output produced in hop-sized blocks; the output
// lags the input by [Pipeline.Latency] samples of leading silence.
type Pipeline struct {
	proc     Processor
	channels int
	frameLen int
	hop      int

	coeffs []float64 // periodic analysis window
	norm   float64   // reciprocal of the constant overlap sum

	in       [][]float64 // per channel, last frameLen input samples
	out      [][]float64 // per channel, overlap-add accumulator
	analyses [][]float64 // per channel, analysis buffer
	frame    []float64   // windowed frame / synthesis scratch
}

// NewPipeline creates a short-time processing pipeline around p.
func NewPipeline(p Processor, opts ...Option) (*Pipeline, error) {
	if p == nil {
		return nil, errors.New("frame: processor must not be nil")
	}

	cfg := pipelineConfig{windowType: window.TypeHann}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	frameLen := p.FrameLength()
	if frameLen < 2 || frameLen%2 != 0 {
		return nil, fmt.Errorf("frame: frame length must be even and >= 2, got %d", frameLen)
	}

	channels := p.NumChannels()
	if channels < 1 {
		return nil, fmt.Errorf("frame: processor must have at least one channel, got %d", channels)
	}

	hop := frameLen / 2

	coeffs := window.Generate(cfg.windowType, frameLen, window.WithPeriodic())

	minSum, maxSum, err := window.OverlapSum(coeffs, hop)
	if err != nil {
		return nil, err
	}

	if minSum <= 0 || maxSum-minSum > 1e-9 {
		return nil, fmt.Errorf("frame: window %v has no constant overlap sum at hop %d", cfg.windowType, hop)
	}

	pl := &Pipeline{
		proc:     p,
		channels: channels,
		frameLen: frameLen,
		hop:      hop,
		coeffs:   coeffs,
		norm:     1 / minSum,
		in:       make([][]float64, channels),
		out:      make([][]float64, channels),
		analyses: make([][]float64, channels),
		frame:    make([]float64, frameLen),
	}

	for ch := range channels {
		pl.in[ch] = make([]float64, frameLen)
		pl.out[ch] = make([]float64, frameLen)
		pl.analyses[ch] = make([]float64, p.AnalysisLength())
	}

	return pl, nil
}

// HopSize returns the block size consumed and produced per call, in samples.
func (pl *Pipeline) HopSize() int { return pl.hop }

// FrameLength returns the analysis frame length in samples.
func (pl *Pipeline) FrameLength() int { return pl.frameLen }

// Latency returns the output delay in samples.
func (pl *Pipeline) Latency() int { return pl.frameLen - pl.hop }

// Reset clears the input history and the overlap-add accumulator, and
// forwards to the processor's Reset method when it has one, so wrapped
// per-frame state (e.g. power histories) is cleared along with the
// pipeline's own.
func (pl *Pipeline) Reset() {
	for ch := range pl.in {
		core.Zero(pl.in[ch])
		core.Zero(pl.out[ch])
	}

	if r, ok := pl.proc.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// ProcessHop consumes one hop of input per channel and produces one hop of
// output per channel. dst and src must each hold NumChannels slices of
// exactly HopSize samples; dst may alias src.
func (pl *Pipeline) ProcessHop(dst, src [][]float64) error {
	if len(src) != pl.channels || len(dst) != pl.channels {
		return fmt.Errorf("%w: got %d in / %d out, want %d", ErrChannelCount, len(src), len(dst), pl.channels)
	}

	for ch := range pl.channels {
		if len(src[ch]) != pl.hop || len(dst[ch]) != pl.hop {
			return fmt.Errorf("%w: channel %d has %d in / %d out samples, want %d",
				ErrHopSize, ch, len(src[ch]), len(dst[ch]), pl.hop)
		}
	}

	// Analysis: slide the input history, window, decompose.
	for ch := range pl.channels {
		history := pl.in[ch]
		copy(history, history[pl.hop:])
		copy(history[pl.frameLen-pl.hop:], src[ch])

		core.CopyInto(pl.frame, history)

		if err := window.ApplyCoefficientsInPlace(pl.frame, pl.coeffs); err != nil {
			return err
		}

		if err := pl.proc.FrameAnalysis(pl.analyses[ch], pl.frame, ch); err != nil {
			return err
		}
	}

	if err := pl.proc.ProcessParametrisation(pl.analyses); err != nil {
		return err
	}

	// Synthesis: reconstruct, overlap-add, emit one hop.
	for ch := range pl.channels {
		if err := pl.proc.FrameSynthesis(pl.frame, pl.analyses[ch], ch); err != nil {
			return err
		}

		vecmath.AddBlockInPlace(pl.out[ch], pl.frame)

		acc := pl.out[ch]
		for i := range pl.hop {
			dst[ch][i] = acc[i] * pl.norm
		}

		copy(acc, acc[pl.hop:])
		core.Zero(acc[pl.frameLen-pl.hop:])
	}

	return nil
}

// Process runs the pipeline over arbitrary-length blocks whose length is a
// multiple of HopSize, calling ProcessHop per hop. dst and src must have the
// same shape.
func (pl *Pipeline) Process(dst, src [][]float64) error {
	if len(src) != pl.channels || len(dst) != pl.channels {
		return fmt.Errorf("%w: got %d in / %d out, want %d", ErrChannelCount, len(src), len(dst), pl.channels)
	}

	n := -1
	for ch := range pl.channels {
		if n == -1 {
			n = len(src[ch])
		}

		if len(src[ch]) != n || len(dst[ch]) != n {
			return fmt.Errorf("%w: channel %d length differs", ErrHopSize, ch)
		}
	}

	if n%pl.hop != 0 {
		return fmt.Errorf("%w: block length %d not a multiple of hop %d", ErrHopSize, n, pl.hop)
	}

	srcHop := make([][]float64, pl.channels)
	dstHop := make([][]float64, pl.channels)

	for off := 0; off < n; off += pl.hop {
		for ch := range pl.channels {
			srcHop[ch] = src[ch][off : off+pl.hop]
			dstHop[ch] = dst[ch][off : off+pl.hop]
		}

		if err := pl.ProcessHop(dstHop, srcHop); err != nil {
			return err
		}
	}

	return nil
}
