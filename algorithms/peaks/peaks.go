package peaks

import (
	"sort"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
	"github.com/RyanBlaney/sonido-scope/config"
)

// Peak is a local maximum of a magnitude series
type Peak struct {
	BinIndex  int     `json:"bin_index"`
	Frequency float64 `json:"frequency"` // Hz
	Magnitude float64 `json:"magnitude"`
}

// SeriesStatistics summarizes one magnitude series
type SeriesStatistics struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	RMS   float64 `json:"rms"`
	Peaks []Peak  `json:"peaks"` // descending by magnitude
}

// Detector finds the strongest local maxima in a magnitude spectrum.
// It holds no mutable state and never modifies its input, so one Detector
// may be shared between goroutines.
type Detector struct {
	params config.PeakParams
}

// NewDetector creates a detector. MinDistance below 1 is raised to 1 and
// MaxPeaks <= 0 disables truncation.
func NewDetector(params config.PeakParams) *Detector {
	params.MinDistance = max(params.MinDistance, 1)
	return &Detector{params: params}
}

// Params returns the effective detection parameters
func (d *Detector) Params() config.PeakParams {
	return d.params
}

// Detect returns the peaks of series sorted by magnitude (descending, ties in
// ascending bin order), limited to MaxPeaks.
//
// Bin i is a peak when it lies in [MinDistance, len-MinDistance), is at least
// MinHeight, and every other bin within MinDistance of it is strictly smaller.
// An equal neighbor disqualifies, so flat tops never produce peaks.
func (d *Detector) Detect(series []float64, sc config.SamplingContext) []Peak {
	dist := d.params.MinDistance
	found := []Peak{}

	for i := dist; i < len(series)-dist; i++ {
		v := series[i]
		// NaN never qualifies
		if !(v >= d.params.MinHeight) {
			continue
		}

		isPeak := true
		for j := i - dist; j <= i+dist; j++ {
			if j != i && series[j] >= v {
				isPeak = false
				break
			}
		}

		if isPeak {
			found = append(found, Peak{
				BinIndex:  i,
				Frequency: sc.Frequency(i),
				Magnitude: v,
			})
		}
	}

	sort.SliceStable(found, func(a, b int) bool {
		return found[a].Magnitude > found[b].Magnitude
	})

	if d.params.MaxPeaks > 0 && len(found) > d.params.MaxPeaks {
		found = found[:d.params.MaxPeaks]
	}

	return found
}

// Statistics computes the aggregates and the peak list for series
func (d *Detector) Statistics(series []float64, sc config.SamplingContext) SeriesStatistics {
	stats := Summarize(series)
	stats.Peaks = d.Detect(series, sc)
	return stats
}

// Summarize computes min, max, mean and RMS without searching for peaks.
// An empty series yields all zeros.
func Summarize(series []float64) SeriesStatistics {
	minVal, maxVal := common.Extrema(series)

	return SeriesStatistics{
		Min:   minVal,
		Max:   maxVal,
		Avg:   common.Mean(series),
		RMS:   common.RMS(series),
		Peaks: []Peak{},
	}
}

// ComputeStatistics runs Summarize and peak detection with DefaultPeakParams
func ComputeStatistics(series []float64, sc config.SamplingContext) SeriesStatistics {
	return NewDetector(config.DefaultPeakParams()).Statistics(series, sc)
}

// DetectPeaks is a one-shot form of Detector.Detect
func DetectPeaks(series []float64, sc config.SamplingContext, params config.PeakParams) []Peak {
	return NewDetector(params).Detect(series, sc)
}
