// Package window provides the analysis window functions used for
// short-time frame processing.
//
// Only the windows relevant to overlap-add framing are included:
//
//	Rectangular  w[n] = 1
//	Hann         w[n] = 0.5 - 0.5*cos(2*pi*n/D)
//	Hamming      w[n] = 0.54 - 0.46*cos(2*pi*n/D)
//
// where D = N-1 for the symmetric form and D = N for the periodic form.
// The periodic Hann window satisfies the constant overlap-add (COLA)
// condition at 50% overlap: shifted copies spaced N/2 samples apart sum
// to exactly 1 at every sample, so a windowed analysis/synthesis chain
// reconstructs the input without amplitude modulation. [OverlapSum]
// verifies the condition for a given window and hop.
package window
