package metrics

import (
	"fmt"
	"math"
	"time"
)

// DefaultFPSInterval is the wall-clock length of one FPS sample window.
const DefaultFPSInterval = 500 * time.Millisecond

// FPSWindow counts drawn frames over a fixed interval.
type FPSWindow struct {
	name     string
	interval time.Duration
	start    time.Duration
	frames   int
}

func NewFPSWindow(interval time.Duration) *FPSWindow {
	if interval <= 0 {
		interval = DefaultFPSInterval
	}
	return &FPSWindow{
		name:     "fps",
		interval: interval,
	}
}

func (w *FPSWindow) Name() string {
	return w.name
}

func (w *FPSWindow) Interval() time.Duration { return w.interval }

// Reset opens a fresh window at ts.
func (w *FPSWindow) Reset(ts time.Duration) {
	w.start = ts
	w.frames = 0
}

// Observe counts one drawn frame.
func (w *FPSWindow) Observe() {
	w.frames++
}

func (w *FPSWindow) Frames() int { return w.frames }

// Sample closes the window if its interval has elapsed at ts and returns the
// rounded frame rate. ok is false while the window is still open, or when no
// time has passed, so a collapsed window never divides by zero.
func (w *FPSWindow) Sample(ts time.Duration) (fps int, ok bool) {
	elapsed := ts - w.start
	if elapsed < w.interval || elapsed <= 0 {
		return 0, false
	}
	fps = int(math.Round(float64(w.frames) * float64(time.Second) / float64(elapsed)))
	w.Reset(ts)
	return fps, true
}

// FormatFPS renders the readout shown by every host.
func FormatFPS(fps int) string {
	return fmt.Sprintf("FPS: %d", fps)
}
