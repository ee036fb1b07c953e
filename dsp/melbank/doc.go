// Package melbank provides a mel-scale analysis/synthesis filter bank.
//
// A frame of N samples is decomposed into numBands time-domain sub-band
// signals plus one residual, all of length N. Band shapes are triangular
// on the mel scale:
//
//	mel(f) = 2595 * log10(1 + f/700)
//
// with numBands+2 equally spaced mel points between the configured low and
// high frequency bounds; band i rises from point i, peaks at point i+1, and
// falls to point i+2. Adjacent triangles overlap by 50%, so interior
// frequency bins are fully covered; the residual holds the complement
// (1 minus the band weight sum) per bin, which makes the decomposition
// exactly invertible: summing all sub-bands and the residual reproduces the
// input frame up to floating-point rounding.
//
// The decomposition is implemented in the frequency domain: one forward FFT
// of the frame, per-band spectral weighting, and one inverse FFT per band.
package melbank
