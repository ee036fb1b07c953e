// Package frame provides short-time block processing with windowing and
// overlap-add reconstruction.
//
// A [Pipeline] slices continuous multichannel input into frames of a fixed
// length at 50% overlap, applies a periodic analysis window, and hands each
// frame to a [Processor] in three steps per frame:
//
//  1. FrameAnalysis, once per channel
//  2. ProcessParametrisation, once across all channels
//  3. FrameSynthesis, once per channel
//
// Reconstructed frames are overlap-added back into a continuous stream. With
// the default periodic Hann window the overlapped window sums are exactly 1,
// so a processor that leaves its analysis untouched reproduces the input
// delayed by [Pipeline.Latency] samples.
package frame
