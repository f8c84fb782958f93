// Command specscope computes spectrum statistics and chart geometry for a
// frame of channel magnitude arrays.
//
// Usage:
//
//	specscope [flags]
//
// The frame is JSON of the form {"channels": {"ch1": [...], ...}} read from
// -input (default stdin). With -synth a deterministic demo frame is used
// instead.
//
// Examples:
//
//	specscope -synth -format table
//	specscope -config dash.json -input frame.json
//	curl -s http://device/fft | specscope -min-distance 3 -max-freq 250
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/RyanBlaney/sonido-scope/config"
	"github.com/RyanBlaney/sonido-scope/dashboard"
	"github.com/RyanBlaney/sonido-scope/internal/synth"
	"github.com/RyanBlaney/sonido-scope/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logging.Fatal(err, "specscope failed")
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("specscope", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON dashboard config file")
	inputPath := fs.String("input", "-", "JSON frame file, - for stdin")
	useSynth := fs.Bool("synth", false, "analyze a synthesized demo frame instead of reading input")
	format := fs.String("format", "json", "output format: json or table")
	minHeight := fs.Float64("min-height", 0, "peak amplitude floor (overrides config)")
	minDistance := fs.Int("min-distance", 0, "peak window half-width in bins (overrides config)")
	maxFreq := fs.Float64("max-freq", 0, "display ceiling in Hz (overrides config)")
	level := fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: specscope [flags]\n\n")
		fmt.Fprintf(fs.Output(), "Computes spectral peaks and plot coordinates for a frame of FFT magnitudes.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	logging.SetLevel(logging.ParseLevel(*level))
	logger := logging.WithFields(logging.Fields{"component": "specscope"})

	cfg := config.DefaultDashboardConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-height":
			cfg.Peaks.MinHeight = *minHeight
		case "min-distance":
			cfg.Peaks.MinDistance = *minDistance
		case "max-freq":
			cfg.Display.MaxFrequency = *maxFreq
		}
	})

	analyzer, err := dashboard.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	var frame dashboard.Frame
	if *useSynth {
		frame = demoFrame(cfg)
	} else {
		frame, err = readFrame(*inputPath, stdin)
		if err != nil {
			return err
		}
	}

	views := analyzer.Analyze(frame)
	logger.Debug("frame analyzed", logging.Fields{"channels": len(views)})

	switch strings.ToLower(*format) {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "table":
		return writeTable(stdout, views)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func readFrame(path string, stdin io.Reader) (dashboard.Frame, error) {
	if path == "-" {
		return dashboard.DecodeFrame(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return dashboard.Frame{}, fmt.Errorf("open frame: %w", err)
	}
	defer f.Close()

	return dashboard.DecodeFrame(f)
}

// demoFrame gives every channel two bin-centered tones over light noise
func demoFrame(cfg *config.DashboardConfig) dashboard.Frame {
	frame := dashboard.Frame{Channels: make(map[string][]float64, len(cfg.Channels))}

	for i, ch := range cfg.Channels {
		sc := cfg.ChannelSampling(ch)
		bins := sc.FFTSize / 2
		fundamental := bins / 8 * (i + 1) / 2

		tones := []synth.Tone{
			{Frequency: sc.Frequency(fundamental), Amplitude: 1},
			{Frequency: sc.Frequency(fundamental * 3), Amplitude: 0.35},
		}
		frame.Channels[ch.Name] = synth.Channel(sc, tones, 0.01, int64(i+1))
	}

	return frame
}

func writeTable(w io.Writer, views []dashboard.ChannelView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHANNEL\tPOINTS\tMIN\tMAX\tAVG\tRMS\tPEAKS (Hz@mag)")

	for _, v := range views {
		peaks := make([]string, 0, len(v.Statistics.Peaks))
		for _, p := range v.Statistics.Peaks {
			peaks = append(peaks, fmt.Sprintf("%.1f@%.3f", p.Frequency, p.Magnitude))
		}
		if !v.Plottable {
			peaks = append(peaks, "(unplottable)")
		}

		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%s\n",
			v.Name, len(v.Path), v.Statistics.Min, v.Statistics.Max,
			v.Statistics.Avg, v.Statistics.RMS, strings.Join(peaks, " "))
	}

	return tw.Flush()
}
