package binaural

import (
	"math"

	"github.com/cwbudde/algo-binaural/dsp/core"
)

// speedOfSound is the propagation speed used for inter-microphone delays, in m/s.
const speedOfSound = 343.0

// acceptanceThresholds computes the per-bin minimum normalized correlation
// for a source inside the acceptance cone.
//
// A source at the edge of the cone reaches the two microphones with a delay
// of up to tau = d*sin(phi)/c. For a bin centered at f the zero-lag
// normalized correlation of a tone delayed by tau is cos(2*pi*f*tau), which
// is the smallest correlation an in-cone source can produce in that bin.
// The phase is pinned at pi: above f = c/(2*d*sin(phi)) the inter-channel
// phase is ambiguous and the threshold stays at -1, so those bins are never
// spatially rejected.
func acceptanceThresholds(centers []float64, micDistance float64) []float64 {
	maxDelay := micDistance * math.Sin(acceptanceAngle) / speedOfSound

	out := make([]float64, len(centers))
	for i, f := range centers {
		phase := 2 * math.Pi * f * maxDelay
		if phase > math.Pi {
			phase = math.Pi
		}

		out[i] = core.Clamp(math.Cos(phase), -1, 1)
	}

	return out
}
