package binaural_test

import (
	"fmt"

	"github.com/cwbudde/algo-binaural/dsp/binaural"
)

func ExampleNew() {
	m, err := binaural.New(16000)
	if err != nil {
		panic(err)
	}

	fmt.Printf("method=%v bins=%d frame=%d angle=%.0f\n",
		m.Method(), binaural.NumBins, m.FrameLength(), m.NonMaskingAngle())
	// Output:
	// method=Relative bins=45 frame=1024 angle=10
}
