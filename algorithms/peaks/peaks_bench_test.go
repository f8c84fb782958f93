package peaks

import (
	"fmt"
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-scope/config"
)

func makeTestMagnitude(n int) []float64 {
	mag := make([]float64, n)
	for i := range mag {
		f := float64(i) / float64(n)
		mag[i] = math.Abs(math.Exp(-3*f) * math.Sin(2*math.Pi*11*f))
	}
	return mag
}

func BenchmarkStatistics(b *testing.B) {
	for _, fftSize := range []int{256, 1024, 4096} {
		n := fftSize/2 + 1
		mag := makeTestMagnitude(n)
		sc := config.SamplingContext{SamplingFrequency: 48000, FFTSize: fftSize}
		d := NewDetector(config.DefaultPeakParams())

		b.Run(fmt.Sprintf("fft=%d", fftSize), func(b *testing.B) {
			b.SetBytes(int64(n * 8))
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				_ = d.Statistics(mag, sc)
			}
		})
	}
}
