package peaks_test

import (
	"fmt"

	"github.com/RyanBlaney/sonido-scope/algorithms/peaks"
	"github.com/RyanBlaney/sonido-scope/config"
)

func ExampleDetectPeaks() {
	sc := config.SamplingContext{SamplingFrequency: 1000, FFTSize: 20}
	series := []float64{0, 0.05, 0.2, 0.9, 0.2, 0.05, 0, 0.05, 0.15, 0.05, 0}

	found := peaks.DetectPeaks(series, sc, config.PeakParams{MinHeight: 0.1, MinDistance: 2, MaxPeaks: 5})
	for _, p := range found {
		fmt.Printf("bin=%d freq=%.0fHz mag=%.2f\n", p.BinIndex, p.Frequency, p.Magnitude)
	}

	// Output:
	// bin=3 freq=150Hz mag=0.90
	// bin=8 freq=400Hz mag=0.15
}

func ExampleSummarize() {
	s := peaks.Summarize([]float64{1, 3, 0, 4})
	fmt.Printf("min=%.0f max=%.0f avg=%.1f rms=%.3f\n", s.Min, s.Max, s.Avg, s.RMS)

	// Output:
	// min=0 max=4 avg=2.0 rms=2.550
}
