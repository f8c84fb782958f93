package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
)

// Frame is one refresh of the dashboard: the latest magnitude array per
// channel name. Arrays may be empty and may change length between frames.
type Frame struct {
	Channels map[string][]float64 `json:"channels"`
}

// DecodeFrame reads a JSON frame
func DecodeFrame(r io.Reader) (Frame, error) {
	var f Frame
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	if f.Channels == nil {
		f.Channels = make(map[string][]float64)
	}
	return f, nil
}
