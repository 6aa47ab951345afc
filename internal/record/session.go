package record

import (
	"context"
	"time"

	"github.com/san-kum/matrixrain/internal/engine"
)

// Settings describes a headless recording.
type Settings struct {
	Frames   int
	Interval time.Duration
	Output   string
	Scale    int
}

// Record runs a fresh engine on a synthetic clock for s.Frames frames and
// writes the result to s.Output: the final frame for .png, every drawn
// frame for .gif. Any display in opts keeps receiving output.
func Record(ctx context.Context, opts engine.Options, s Settings) (*Recorder, error) {
	format, err := FormatOf(s.Output)
	if err != nil {
		return nil, err
	}
	if s.Interval <= 0 {
		s.Interval = time.Second / 60
	}

	speed := opts.Speed
	if speed == 0 {
		speed = engine.DefaultSpeed
	}
	rec := NewRecorder(Options{
		Scale:     s.Scale,
		Delay:     max(engine.ClampSpeed(speed), s.Interval),
		Theme:     opts.Theme,
		StillOnly: format == "png",
	})
	if opts.Display != nil {
		opts.Display = engine.MultiDisplay{opts.Display, rec}
	} else {
		opts.Display = rec
	}

	e := engine.New(opts)
	if err := e.Run(ctx, &engine.StepSource{Interval: s.Interval, Frames: s.Frames}); err != nil {
		return rec, err
	}
	if err := rec.Save(s.Output); err != nil {
		return rec, err
	}
	return rec, nil
}
