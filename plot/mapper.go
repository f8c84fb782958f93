package plot

import (
	"github.com/RyanBlaney/sonido-scope/algorithms/peaks"
	"github.com/RyanBlaney/sonido-scope/config"
)

// Marker places a detected peak on the canvas
type Marker struct {
	Peak  peaks.Peak `json:"peak"`
	Point PlotPoint  `json:"point"`
}

// Path maps every bin at or below the display ceiling, in bin order.
// Bins above the ceiling are dropped, not squeezed onto the edge.
func (s Scale) Path(series []float64) []PlotPoint {
	points := make([]PlotPoint, 0, len(series))
	for i, mag := range series {
		// bin frequencies increase with i
		if !s.Visible(s.sampling.Frequency(i)) {
			break
		}
		points = append(points, s.Point(i, mag))
	}
	return points
}

// Markers maps each visible peak, keeping the order of found
func (s Scale) Markers(found []peaks.Peak) []Marker {
	markers := make([]Marker, 0, len(found))
	for _, p := range found {
		if !s.Visible(s.sampling.Frequency(p.BinIndex)) {
			continue
		}
		markers = append(markers, Marker{
			Peak:  p,
			Point: s.Point(p.BinIndex, p.Magnitude),
		})
	}
	return markers
}

// Area closes the line path down to the baseline for a filled chart
func (s Scale) Area(series []float64) []PlotPoint {
	line := s.Path(series)
	if len(line) == 0 {
		return line
	}

	base := s.Baseline()
	area := make([]PlotPoint, 0, len(line)+2)
	area = append(area, PlotPoint{X: line[0].X, Y: base})
	area = append(area, line...)
	area = append(area, PlotPoint{X: line[len(line)-1].X, Y: base})
	return area
}

// MapSeriesToPath projects series onto rect. The result is empty when the
// rect is unplottable.
func MapSeriesToPath(series []float64, sc config.SamplingContext, rect PlotRect, maxFrequency float64) []PlotPoint {
	s, ok := NewScale(series, sc, rect, maxFrequency)
	if !ok {
		return []PlotPoint{}
	}
	return s.Path(series)
}

// MapPeaksToMarkers projects peaks of series onto rect using the same scale
// MapSeriesToPath would use for series.
func MapPeaksToMarkers(series []float64, found []peaks.Peak, sc config.SamplingContext, rect PlotRect, maxFrequency float64) []Marker {
	s, ok := NewScale(series, sc, rect, maxFrequency)
	if !ok {
		return []Marker{}
	}
	return s.Markers(found)
}

// MapAreaPath is MapSeriesToPath closed to the baseline
func MapAreaPath(series []float64, sc config.SamplingContext, rect PlotRect, maxFrequency float64) []PlotPoint {
	s, ok := NewScale(series, sc, rect, maxFrequency)
	if !ok {
		return []PlotPoint{}
	}
	return s.Area(series)
}
