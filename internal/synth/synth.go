// Package synth builds deterministic magnitude spectra for tests and demos.
// The dashboard itself receives spectra from an external source; this package
// stands in for that source.
package synth

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/mjibson/go-dsp/fft"

	"github.com/RyanBlaney/sonido-scope/config"
)

// Tone is one sinusoidal component
type Tone struct {
	Frequency float64 `json:"frequency"` // Hz
	Amplitude float64 `json:"amplitude"`
}

// Signal sums tones over n samples and adds uniform noise of the given
// amplitude from a fixed seed.
func Signal(tones []Tone, sampleRate float64, n int, noise float64, seed int64) []float64 {
	out := make([]float64, n)
	for _, tone := range tones {
		step := 2 * math.Pi * tone.Frequency / sampleRate
		for i := range out {
			out[i] += tone.Amplitude * math.Sin(step*float64(i))
		}
	}

	if noise > 0 {
		rng := rand.New(rand.NewSource(seed))
		for i := range out {
			out[i] += (rng.Float64()*2 - 1) * noise
		}
	}

	return out
}

// Hann returns periodic Hann coefficients, the form used for FFT analysis
func Hann(size int) []float64 {
	coefficients := make([]float64, size)
	for i := range size {
		coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(size)))
	}
	return coefficients
}

// MagnitudeSpectrum windows x with Hann and returns the one-sided amplitude
// spectrum (len(x)/2+1 bins). A bin-centered tone of amplitude A reads A.
func MagnitudeSpectrum(x []float64) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	window := Hann(len(x))
	windowed := make([]float64, len(x))
	gain := 0.0
	for i := range x {
		windowed[i] = x[i] * window[i]
		gain += window[i]
	}

	// mjibson/go-dsp handles non-power-of-2 sizes as well
	spectrum := fft.FFTReal(windowed)

	mag := make([]float64, len(x)/2+1)
	for k := range mag {
		scale := 2.0 / gain
		if k == 0 || (len(x)%2 == 0 && k == len(x)/2) {
			scale = 1.0 / gain
		}
		mag[k] = cmplx.Abs(spectrum[k]) * scale
	}

	return mag
}

// Channel synthesizes one FFT frame for sc and returns its magnitude spectrum
func Channel(sc config.SamplingContext, tones []Tone, noise float64, seed int64) []float64 {
	return MagnitudeSpectrum(Signal(tones, sc.SamplingFrequency, sc.FFTSize, noise, seed))
}
