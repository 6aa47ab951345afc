package engine

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSourceDone is returned by finite frame sources once exhausted.
var ErrSourceDone = errors.New("engine: frame source exhausted")

// FrameSource stands in for the host's frame callback: each call blocks until
// the next frame and returns its timestamp relative to the animation start.
type FrameSource interface {
	NextFrame(ctx context.Context) (time.Duration, error)
}

// Run ticks once per frame from src until ctx is cancelled or src fails.
// Exhausting a finite source is not an error.
func (e *Engine) Run(ctx context.Context, src FrameSource) error {
	for {
		ts, err := src.NextFrame(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if errors.Is(err, ErrSourceDone) {
				return nil
			}
			return err
		}
		e.Tick(ts)
	}
}

// Handle controls a loop started with Spawn.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	err    error
}

// Spawn runs the loop on its own goroutine.
func (e *Engine) Spawn(ctx context.Context, src FrameSource) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		h.err = e.Run(ctx, src)
	}()
	return h
}

// Stop cancels the loop and waits for the tick in progress to finish.
func (h *Handle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed when the loop has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err returns the loop's exit error once Done is closed.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		if errors.Is(h.err, context.Canceled) {
			return nil
		}
		return h.err
	default:
		return nil
	}
}

// TickerSource delivers wall-clock frames at a fixed interval.
type TickerSource struct {
	ticker *time.Ticker
	start  time.Time
}

func NewTickerSource(interval time.Duration) *TickerSource {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TickerSource{ticker: time.NewTicker(interval), start: time.Now()}
}

func (s *TickerSource) NextFrame(ctx context.Context) (time.Duration, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case t := <-s.ticker.C:
		return t.Sub(s.start), nil
	}
}

func (s *TickerSource) Stop() { s.ticker.Stop() }

// StepSource is a synthetic clock: Frames timestamps Interval apart, starting
// at Interval, without sleeping.
type StepSource struct {
	Interval time.Duration
	Frames   int

	n int
}

func (s *StepSource) NextFrame(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.Frames > 0 && s.n >= s.Frames {
		return 0, ErrSourceDone
	}
	s.n++
	return time.Duration(s.n) * s.Interval, nil
}

// VsyncSource is a synthetic clock that charges real work to the timeline:
// the time spent between two NextFrame calls, plus Load, is rounded up to
// whole Interval periods, the way a late frame misses vsync.
type VsyncSource struct {
	Interval time.Duration
	Frames   int
	// Load adds simulated per-frame cost on top of measured time.
	Load func() time.Duration

	now  time.Duration
	last time.Time
	n    int
	wall func() time.Time
}

func (s *VsyncSource) NextFrame(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.Frames > 0 && s.n >= s.Frames {
		return 0, ErrSourceDone
	}
	if s.wall == nil {
		s.wall = time.Now
	}
	wall := s.wall()
	var spent time.Duration
	if !s.last.IsZero() {
		spent = wall.Sub(s.last)
	}
	if s.Load != nil {
		spent += s.Load()
	}
	periods := int64(1)
	if spent > s.Interval {
		periods = int64((spent + s.Interval - 1) / s.Interval)
	}
	s.now += time.Duration(periods) * s.Interval
	s.last = wall
	s.n++
	return s.now, nil
}
