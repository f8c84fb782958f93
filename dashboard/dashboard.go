package dashboard

import (
	"fmt"
	"slices"

	"github.com/RyanBlaney/sonido-scope/algorithms/peaks"
	"github.com/RyanBlaney/sonido-scope/config"
	"github.com/RyanBlaney/sonido-scope/logging"
	"github.com/RyanBlaney/sonido-scope/plot"
)

// ChannelView is everything the rendering layer needs for one chart
type ChannelView struct {
	Name         string                 `json:"name"`
	Sampling     config.SamplingContext `json:"sampling"`
	MaxFrequency float64                `json:"max_frequency"`
	Statistics   peaks.SeriesStatistics `json:"statistics"`
	Plottable    bool                   `json:"plottable"`
	Path         []plot.PlotPoint       `json:"path"`
	Area         []plot.PlotPoint       `json:"area"`
	Markers      []plot.Marker          `json:"markers"`
}

// Analyzer turns frames into per-channel views using one configuration.
// It keeps no per-frame state, so Analyze may be called concurrently.
type Analyzer struct {
	config   *config.DashboardConfig
	detector *peaks.Detector
	rect     plot.PlotRect
	logger   logging.Logger
}

// NewAnalyzer validates cfg and builds an analyzer. A nil cfg uses
// config.DefaultDashboardConfig.
func NewAnalyzer(cfg *config.DashboardConfig) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.DefaultDashboardConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("dashboard config: %w", err)
	}

	return &Analyzer{
		config:   cfg,
		detector: peaks.NewDetector(cfg.Peaks),
		rect:     plot.RectFromConfig(cfg.Display),
		logger: logging.WithFields(logging.Fields{
			"component": "dashboard_analyzer",
		}),
	}, nil
}

// Config returns the analyzer's configuration
func (a *Analyzer) Config() *config.DashboardConfig {
	return a.config
}

// Analyze returns one view per configured channel, in configuration order.
// A configured channel missing from the frame is treated as empty.
func (a *Analyzer) Analyze(frame Frame) []ChannelView {
	views := make([]ChannelView, 0, len(a.config.Channels))
	for _, ch := range a.config.Channels {
		views = append(views, a.AnalyzeChannel(ch, frame.Channels[ch.Name]))
	}

	for name := range frame.Channels {
		if !slices.ContainsFunc(a.config.Channels, func(ch config.ChannelConfig) bool { return ch.Name == name }) {
			a.logger.Debug("ignoring unconfigured channel", logging.Fields{"channel": name})
		}
	}

	return views
}

// AnalyzeChannel computes statistics and plot geometry for one series.
// Path, area and markers share a single scale.
func (a *Analyzer) AnalyzeChannel(ch config.ChannelConfig, series []float64) ChannelView {
	sampling := a.config.ChannelSampling(ch)
	maxFreq := a.config.ChannelMaxFrequency(ch)

	view := ChannelView{
		Name:         ch.Name,
		Sampling:     sampling,
		MaxFrequency: maxFreq,
		Statistics:   a.detector.Statistics(series, sampling),
		Path:         []plot.PlotPoint{},
		Area:         []plot.PlotPoint{},
		Markers:      []plot.Marker{},
	}

	scale, ok := plot.NewScale(series, sampling, a.rect, maxFreq)
	if !ok {
		a.logger.Warn("channel is not plottable", logging.Fields{
			"channel":     ch.Name,
			"plot_width":  a.rect.PlotWidth(),
			"plot_height": a.rect.PlotHeight(),
		})
		return view
	}

	view.Plottable = true
	view.Path = scale.Path(series)
	view.Area = scale.Area(series)
	view.Markers = scale.Markers(view.Statistics.Peaks)

	a.logger.Debug("channel analyzed", logging.Fields{
		"channel": ch.Name,
		"bins":    len(series),
		"points":  len(view.Path),
		"peaks":   len(view.Statistics.Peaks),
		"max":     view.Statistics.Max,
	})

	return view
}
