package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

var (
	ErrInvalidSampling   = errors.New("invalid sampling context")
	ErrInvalidPeakParams = errors.New("invalid peak parameters")
	ErrInvalidDisplay    = errors.New("invalid display configuration")
)

// SamplingContext maps FFT bin indices to frequencies.
// frequency(i) = i * SamplingFrequency / FFTSize
type SamplingContext struct {
	SamplingFrequency float64 `json:"sampling_frequency"` // Hz
	FFTSize           int     `json:"fft_size"`
}

// NewSamplingContext validates and returns a sampling context
func NewSamplingContext(samplingFrequency float64, fftSize int) (SamplingContext, error) {
	sc := SamplingContext{SamplingFrequency: samplingFrequency, FFTSize: fftSize}
	if err := sc.Validate(); err != nil {
		return SamplingContext{}, err
	}
	return sc, nil
}

// Validate checks that the context can be used for bin-to-frequency mapping
func (sc SamplingContext) Validate() error {
	if sc.FFTSize <= 0 {
		return fmt.Errorf("%w: fft size must be positive, got %d", ErrInvalidSampling, sc.FFTSize)
	}
	if !(sc.SamplingFrequency > 0) || math.IsInf(sc.SamplingFrequency, 0) {
		return fmt.Errorf("%w: sampling frequency must be positive and finite, got %g", ErrInvalidSampling, sc.SamplingFrequency)
	}
	return nil
}

// Frequency returns the center frequency in Hz of bin i
func (sc SamplingContext) Frequency(i int) float64 {
	return float64(i) * sc.SamplingFrequency / float64(sc.FFTSize)
}

// BinResolution returns the width of one bin in Hz
func (sc SamplingContext) BinResolution() float64 {
	return sc.SamplingFrequency / float64(sc.FFTSize)
}

// Nyquist returns half the sampling frequency
func (sc SamplingContext) Nyquist() float64 {
	return sc.SamplingFrequency / 2
}

// BinForFrequency returns the nearest bin index for a frequency in Hz.
// Negative frequencies map to bin 0.
func (sc SamplingContext) BinForFrequency(freq float64) int {
	if freq <= 0 {
		return 0
	}
	return int(math.Round(freq * float64(sc.FFTSize) / sc.SamplingFrequency))
}

// PeakParams controls local-maximum peak detection
type PeakParams struct {
	MinHeight   float64 `json:"min_height"`   // amplitude floor
	MinDistance int     `json:"min_distance"` // half-width of the local-maximum window in bins
	MaxPeaks    int     `json:"max_peaks"`
}

// DefaultPeakParams returns the dashboard's standard peak settings
func DefaultPeakParams() PeakParams {
	return PeakParams{
		MinHeight:   0.1,
		MinDistance: 5,
		MaxPeaks:    5,
	}
}

func (p PeakParams) Validate() error {
	if p.MinDistance < 1 {
		return fmt.Errorf("%w: min distance must be at least 1, got %d", ErrInvalidPeakParams, p.MinDistance)
	}
	if p.MinHeight < 0 || math.IsNaN(p.MinHeight) {
		return fmt.Errorf("%w: min height must be non-negative, got %g", ErrInvalidPeakParams, p.MinHeight)
	}
	if p.MaxPeaks < 0 {
		return fmt.Errorf("%w: max peaks must be non-negative, got %d", ErrInvalidPeakParams, p.MaxPeaks)
	}
	return nil
}

// PaddingConfig is the margin around the plotting area in canvas units
type PaddingConfig struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// DisplayConfig describes the chart canvas every channel is mapped onto
type DisplayConfig struct {
	Width        float64       `json:"width"`
	Height       float64       `json:"height"`
	Padding      PaddingConfig `json:"padding"`
	MaxFrequency float64       `json:"max_frequency"` // display ceiling in Hz, bins above are clipped
}

// Validate only rejects values that make the config meaningless.
// A canvas too small for its padding is allowed and renders nothing.
func (d DisplayConfig) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: canvas must be positive, got %gx%g", ErrInvalidDisplay, d.Width, d.Height)
	}
	if d.Padding.Top < 0 || d.Padding.Right < 0 || d.Padding.Bottom < 0 || d.Padding.Left < 0 {
		return fmt.Errorf("%w: padding must be non-negative", ErrInvalidDisplay)
	}
	if !(d.MaxFrequency > 0) {
		return fmt.Errorf("%w: max frequency must be positive, got %g", ErrInvalidDisplay, d.MaxFrequency)
	}
	return nil
}

// ChannelConfig names one input channel. Zero-valued fields inherit the
// dashboard-wide settings.
type ChannelConfig struct {
	Name         string           `json:"name"`
	Sampling     *SamplingContext `json:"sampling,omitempty"`
	MaxFrequency float64          `json:"max_frequency,omitempty"`
}

// DashboardConfig is the complete configuration for a multi-channel view
type DashboardConfig struct {
	Sampling SamplingContext `json:"sampling"`
	Peaks    PeakParams      `json:"peaks"`
	Display  DisplayConfig   `json:"display"`
	Channels []ChannelConfig `json:"channels"`
}

// DefaultDashboardConfig returns a four channel layout at 1 kHz / 1024 bins
func DefaultDashboardConfig() *DashboardConfig {
	sampling := SamplingContext{SamplingFrequency: 1000, FFTSize: 1024}

	return &DashboardConfig{
		Sampling: sampling,
		Peaks:    DefaultPeakParams(),
		Display: DisplayConfig{
			Width:  800,
			Height: 300,
			Padding: PaddingConfig{
				Top:    20,
				Right:  20,
				Bottom: 30,
				Left:   50,
			},
			MaxFrequency: sampling.Nyquist(),
		},
		Channels: []ChannelConfig{
			{Name: "ch1"},
			{Name: "ch2"},
			{Name: "ch3"},
			{Name: "ch4"},
		},
	}
}

// ChannelSampling returns the sampling context in effect for a channel
func (c *DashboardConfig) ChannelSampling(ch ChannelConfig) SamplingContext {
	if ch.Sampling != nil {
		return *ch.Sampling
	}
	return c.Sampling
}

// ChannelMaxFrequency returns the display ceiling in effect for a channel
func (c *DashboardConfig) ChannelMaxFrequency(ch ChannelConfig) float64 {
	if ch.MaxFrequency > 0 {
		return ch.MaxFrequency
	}
	return c.Display.MaxFrequency
}

// Validate checks every construction-time invariant
func (c *DashboardConfig) Validate() error {
	if err := c.Sampling.Validate(); err != nil {
		return err
	}
	if err := c.Peaks.Validate(); err != nil {
		return err
	}
	if err := c.Display.Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Channels))
	for i, ch := range c.Channels {
		if ch.Name == "" {
			return fmt.Errorf("channel %d: name is required", i)
		}
		if seen[ch.Name] {
			return fmt.Errorf("channel %q: duplicate name", ch.Name)
		}
		seen[ch.Name] = true

		if ch.Sampling != nil {
			if err := ch.Sampling.Validate(); err != nil {
				return fmt.Errorf("channel %q: %w", ch.Name, err)
			}
		}
		if ch.MaxFrequency < 0 {
			return fmt.Errorf("channel %q: %w: max frequency must be non-negative", ch.Name, ErrInvalidDisplay)
		}
	}
	return nil
}

// Load reads a JSON config file on top of DefaultDashboardConfig
func Load(path string) (*DashboardConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes JSON config bytes on top of DefaultDashboardConfig
func Parse(data []byte) (*DashboardConfig, error) {
	cfg := DefaultDashboardConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
