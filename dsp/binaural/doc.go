// Package binaural implements binaural spatial-temporal masking of
// time-frequency bins, after:
//
//	Kim, C., K. Kumar, and R. M. Stern. 2011.
//	"Binaural sound source separation motivated by auditory processing."
//	In IEEE International Conference on Acoustics, Speech, and Signal Processing.
//
// Synchronized left/right frames are decomposed by a mel-scale filter bank
// into 45 sub-band signals plus a residual per channel. For every bin the
// engine applies two rejection tests:
//
//   - Spatial: the zero-lag normalized cross-correlation between the left and
//     right sub-band signals falls below a per-bin threshold derived from the
//     microphone distance and a 10 degree acceptance cone. Sources outside
//     the cone arrive with a larger inter-channel delay and decorrelate the
//     channels, more so at higher frequencies.
//   - Temporal: the bin's current power falls roughly 40 dB below its
//     exponentially smoothed power history (forgetting factor 0.04).
//
// A bin rejected by either test is masked according to the configured
// [MaskingMethod]; accepted bins are multiplied by an enhancement factor.
// Unlike Kim et al., accepted bins can be boosted and three masking methods
// are available, which helps with low-power signals.
//
// The per-frame operations are FrameAnalysis (per channel), then
// ProcessParametrisation (both channels), then FrameSynthesis (per channel),
// in strict order, driven externally once per frame (see the frame package).
// Processing is synchronous and single-threaded; the only state carried
// across frames is the per-bin power history.
package binaural
