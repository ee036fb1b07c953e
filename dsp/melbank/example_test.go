package melbank_test

import (
	"fmt"

	"github.com/cwbudde/algo-binaural/dsp/melbank"
)

func ExampleBank_CenterFrequencies() {
	b, err := melbank.New(4, 512, 16000, 100, 4000)
	if err != nil {
		panic(err)
	}

	for _, c := range b.CenterFrequencies() {
		fmt.Printf("%.0f ", c)
	}

	fmt.Println()
	// Output:
	// 440 924 1615 2598
}
