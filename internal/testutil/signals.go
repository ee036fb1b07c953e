package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// CorrelatedStereo returns two identical noise channels: a perfectly
// correlated pair, as produced by a source on the look direction.
func CorrelatedStereo(seed int64, amplitude float64, length int) (left, right []float64) {
	left = DeterministicNoise(seed, amplitude, length)
	right = make([]float64, length)
	copy(right, left)
	return left, right
}

// DecorrelatedStereo returns two independently seeded noise channels, as
// produced by diffuse interference.
func DecorrelatedStereo(seedLeft, seedRight int64, amplitude float64, length int) (left, right []float64) {
	return DeterministicNoise(seedLeft, amplitude, length),
		DeterministicNoise(seedRight, amplitude, length)
}

// AntiCorrelatedStereo returns a noise channel and its inverse: a pair with
// normalized correlation exactly -1.
func AntiCorrelatedStereo(seed int64, amplitude float64, length int) (left, right []float64) {
	left = DeterministicNoise(seed, amplitude, length)
	right = make([]float64, length)
	for i := range left {
		right[i] = -left[i]
	}
	return left, right
}

// Scaled returns a copy of signal multiplied by gain.
func Scaled(signal []float64, gain float64) []float64 {
	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = gain * v
	}
	return out
}
