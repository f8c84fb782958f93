package synth

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-scope/algorithms/peaks"
	"github.com/RyanBlaney/sonido-scope/config"
)

func TestSignalDeterministic(t *testing.T) {
	tones := []Tone{{Frequency: 50, Amplitude: 1}}
	a := Signal(tones, 1000, 256, 0.1, 7)
	b := Signal(tones, 1000, 256, 0.1, 7)
	if !floats.Equal(a, b) {
		t.Error("same seed produced different signals")
	}
	if len(a) != 256 {
		t.Errorf("len = %d, want 256", len(a))
	}
}

func TestHann(t *testing.T) {
	w := Hann(8)
	if w[0] != 0 {
		t.Errorf("w[0] = %g, want 0", w[0])
	}
	if math.Abs(w[4]-1) > 1e-12 {
		t.Errorf("w[4] = %g, want 1", w[4])
	}
}

func TestMagnitudeSpectrumEmpty(t *testing.T) {
	if got := MagnitudeSpectrum(nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestMagnitudeSpectrumBinCenteredTone(t *testing.T) {
	sc := config.SamplingContext{SamplingFrequency: 1024, FFTSize: 1024}
	mag := Channel(sc, []Tone{{Frequency: 100, Amplitude: 1}}, 0, 0)

	if len(mag) != 513 {
		t.Fatalf("len = %d, want 513", len(mag))
	}
	if math.Abs(mag[100]-1) > 1e-9 {
		t.Errorf("mag[100] = %g, want 1", mag[100])
	}
	if math.Abs(mag[99]-0.5) > 1e-9 || math.Abs(mag[101]-0.5) > 1e-9 {
		t.Errorf("side bins = %g, %g, want 0.5", mag[99], mag[101])
	}
	if mag[200] > 1e-9 {
		t.Errorf("mag[200] = %g, want ~0", mag[200])
	}
}

func TestChannelPeaksRecoverTones(t *testing.T) {
	sc := config.SamplingContext{SamplingFrequency: 1024, FFTSize: 1024}
	tones := []Tone{
		{Frequency: 100, Amplitude: 1},
		{Frequency: 250, Amplitude: 0.5},
		{Frequency: 400, Amplitude: 0.25},
	}
	mag := Channel(sc, tones, 0.01, 42)

	found := peaks.ComputeStatistics(mag, sc).Peaks
	if len(found) < 3 {
		t.Fatalf("found %d peaks, want at least 3: %+v", len(found), found)
	}
	for i, want := range []float64{100, 250, 400} {
		if found[i].Frequency != want {
			t.Errorf("peak %d frequency = %g, want %g", i, found[i].Frequency, want)
		}
	}
}
