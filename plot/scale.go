package plot

import (
	"math"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
	"github.com/RyanBlaney/sonido-scope/config"
)

// minYRange keeps flat series from dividing by zero
const minYRange = 0.001

// Padding is the margin between the canvas edge and the plotting area
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// PlotRect is the canvas a series is mapped onto
type PlotRect struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding Padding `json:"padding"`
}

// RectFromConfig builds a PlotRect from display settings
func RectFromConfig(d config.DisplayConfig) PlotRect {
	return PlotRect{
		Width:  d.Width,
		Height: d.Height,
		Padding: Padding{
			Top:    d.Padding.Top,
			Right:  d.Padding.Right,
			Bottom: d.Padding.Bottom,
			Left:   d.Padding.Left,
		},
	}
}

// PlotWidth is the horizontal extent left after padding
func (r PlotRect) PlotWidth() float64 {
	return r.Width - r.Padding.Left - r.Padding.Right
}

// PlotHeight is the vertical extent left after padding
func (r PlotRect) PlotHeight() float64 {
	return r.Height - r.Padding.Top - r.Padding.Bottom
}

// PlotPoint is a canvas coordinate. Origin top-left, y grows downward.
type PlotPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scale is the linear data-to-canvas mapping for one series on one rect.
// Paths and peak markers for the same series must come from the same Scale.
type Scale struct {
	sampling     config.SamplingContext
	maxFrequency float64

	left, top  float64
	plotWidth  float64
	plotHeight float64

	yMin   float64
	yRange float64
}

// NewScale derives the scale for series on rect. ok is false when the rect
// has no room left after padding or maxFrequency is not positive; callers
// should draw nothing in that case.
func NewScale(series []float64, sc config.SamplingContext, rect PlotRect, maxFrequency float64) (s Scale, ok bool) {
	plotWidth := rect.PlotWidth()
	plotHeight := rect.PlotHeight()
	if !(plotWidth > 0) || !(plotHeight > 0) || !(maxFrequency > 0) {
		return Scale{}, false
	}

	yMin := 0.0
	yMax := common.Max(series, 1)

	return Scale{
		sampling:     sc,
		maxFrequency: maxFrequency,
		left:         rect.Padding.Left,
		top:          rect.Padding.Top,
		plotWidth:    plotWidth,
		plotHeight:   plotHeight,
		yMin:         yMin,
		yRange:       math.Max(yMax-yMin, minYRange),
	}, true
}

// YRange returns the magnitude span mapped onto the plot height
func (s Scale) YRange() float64 {
	return s.yRange
}

// Baseline is the canvas y of magnitude yMin
func (s Scale) Baseline() float64 {
	return s.top + s.plotHeight
}

// Visible reports whether a frequency is within the display ceiling
func (s Scale) Visible(freq float64) bool {
	return freq <= s.maxFrequency
}

// X maps a frequency in Hz to a canvas x
func (s Scale) X(freq float64) float64 {
	return s.left + (freq/s.maxFrequency)*s.plotWidth
}

// Y maps a magnitude to a canvas y
func (s Scale) Y(magnitude float64) float64 {
	return s.top + s.plotHeight - ((magnitude-s.yMin)/s.yRange)*s.plotHeight
}

// Point maps a bin and its magnitude to the canvas
func (s Scale) Point(bin int, magnitude float64) PlotPoint {
	return PlotPoint{
		X: s.X(s.sampling.Frequency(bin)),
		Y: s.Y(magnitude),
	}
}
