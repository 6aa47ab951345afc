package engine

import (
	"time"

	"github.com/san-kum/matrixrain/internal/metrics"
	"github.com/san-kum/matrixrain/internal/registry"
)

// Scheduler paces drawn frames and owns the FPS window. It is a two-state
// machine: idle until Start, then running for good.
type Scheduler struct {
	speed     time.Duration
	lastFrame time.Duration
	running   bool
	window    *metrics.FPSWindow
}

func NewScheduler(speed, fpsInterval time.Duration) *Scheduler {
	if speed == 0 {
		speed = DefaultSpeed
	}
	return &Scheduler{
		speed:  ClampSpeed(speed),
		window: metrics.NewFPSWindow(fpsInterval),
	}
}

// ClampSpeed bounds d to [MinSpeed, MaxSpeed].
func ClampSpeed(d time.Duration) time.Duration {
	return min(MaxSpeed, max(MinSpeed, d))
}

func (s *Scheduler) Speed() time.Duration { return s.speed }

func (s *Scheduler) SetSpeed(d time.Duration) { s.speed = ClampSpeed(d) }

func (s *Scheduler) Running() bool { return s.running }

// Start moves the scheduler to running and opens the first FPS window at ts.
// Later calls are ignored.
func (s *Scheduler) Start(ts time.Duration) {
	if s.running {
		return
	}
	s.running = true
	s.window.Reset(ts)
}

// Due reports whether a frame should be drawn at ts and, if so, records ts
// as the last drawn frame.
func (s *Scheduler) Due(ts time.Duration) bool {
	if ts-s.lastFrame < s.speed {
		return false
	}
	s.lastFrame = ts
	return true
}

// Drawn counts a drawn frame and returns the FPS reading if the window
// closed at ts.
func (s *Scheduler) Drawn(ts time.Duration) (fps int, ok bool) {
	s.window.Observe()
	return s.window.Sample(ts)
}

// Tick runs one frame callback at host timestamp ts and reports whether a
// frame was drawn.
func (e *Engine) Tick(ts time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sched.Start(ts)

	if e.pendingResize {
		e.pendingResize = false
		e.resizeLocked(e.pendingW, e.pendingH)
	}

	if !e.sched.Due(ts) {
		return false
	}

	e.drawLocked(ts)
	e.frames++

	fps, ok := e.sched.Drawn(ts)
	if !ok {
		return true
	}
	e.fps = fps
	e.display.ShowFPS(metrics.FormatFPS(fps))
	if e.quality == registry.Auto {
		if next, changed := e.auto.Evaluate(fps, ts, e.active); changed {
			e.adjustments = append(e.adjustments, Adjustment{At: ts, FPS: fps, From: e.active, To: next})
			e.logger.Infof("auto", "fps=%d quality %s -> %s", fps, e.active, next)
			e.active = next
			e.rebuildLocked()
		}
	}
	e.history.Observe(metrics.Sample{At: ts, FPS: fps, Active: e.active})
	return true
}

func (e *Engine) drawLocked(ts time.Duration) {
	e.color = e.theme.ColorAt(ts)
	e.renderer.RenderFrame(e.surface, e.grid, registry.Quality(e.active), e.color, e.rnd)
	e.display.ShowColor(e.color)
	e.display.Present(e.surface)
}
