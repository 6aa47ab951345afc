package engine

import (
	"image"
	"image/color"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/matrixrain/internal/autoquality"
	"github.com/san-kum/matrixrain/internal/grid"
	"github.com/san-kum/matrixrain/internal/logging"
	"github.com/san-kum/matrixrain/internal/metrics"
	"github.com/san-kum/matrixrain/internal/registry"
	"github.com/san-kum/matrixrain/internal/render"
)

const (
	MinSpeed     = 16 * time.Millisecond
	MaxSpeed     = 200 * time.Millisecond
	SpeedStep    = 10 * time.Millisecond
	DefaultSpeed = 50 * time.Millisecond
)

// Options configures a new Engine. Zero values select defaults.
type Options struct {
	Width     int
	Height    int
	Quality   registry.Level
	Theme     registry.Theme
	Speed     time.Duration
	GlyphSize int

	// FPSInterval is the FPS sample window; default 500ms.
	FPSInterval time.Duration

	// Rand drives glyph choice and column resets. Nil seeds from Seed.
	Rand render.Rand
	Seed int64

	Renderer *render.Renderer
	Auto     *autoquality.Controller
	Display  Display
	Logger   logging.Logger

	// HistorySize bounds the retained FPS samples; default 120.
	HistorySize int
}

// State is a snapshot of the engine's externally visible state.
type State struct {
	Width   int
	Height  int
	Quality registry.Level
	Active  registry.Level
	Theme   registry.Theme
	Speed   time.Duration
	Columns int
	FPS     int
	Color   color.RGBA
	Frames  int
	Running bool
}

// Engine owns all animation state and runs one tick at a time.
type Engine struct {
	mu sync.Mutex

	width   int
	height  int
	quality registry.Level
	active  registry.Level
	theme   registry.Theme

	pendingResize bool
	pendingW      int
	pendingH      int

	sched    *Scheduler
	grid     *grid.Grid
	surface  *image.RGBA
	renderer *render.Renderer
	auto     *autoquality.Controller
	rnd      render.Rand
	display  Display
	logger   logging.Logger
	history  *metrics.History

	fps         int
	color       color.RGBA
	frames      int
	adjustments []Adjustment
}

// Adjustment records one change of active quality made by the auto controller.
type Adjustment struct {
	At   time.Duration
	FPS  int
	From registry.Level
	To   registry.Level
}

func New(opts Options) *Engine {
	logger := logging.OrNoop(opts.Logger)

	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(opts.Seed))
	}
	renderer := opts.Renderer
	if renderer == nil {
		face, err := render.LoadFace("", float64(glyphSizeOr(opts.GlyphSize)))
		if err != nil {
			logger.Errorf("engine", "default face: %v", err)
			face = render.BasicFace()
		}
		renderer = render.New(face, render.Katakana, logger)
	}
	auto := opts.Auto
	if auto == nil {
		auto = autoquality.New()
	}
	display := opts.Display
	if display == nil {
		display = NopDisplay{}
	}
	theme := opts.Theme
	if theme.Name == "" {
		theme = registry.ThemeMatrix
	}

	e := &Engine{
		quality:  opts.Quality,
		active:   registry.High,
		theme:    theme,
		sched:    NewScheduler(opts.Speed, opts.FPSInterval),
		grid:     grid.New(glyphSizeOr(opts.GlyphSize)),
		renderer: renderer,
		auto:     auto,
		rnd:      rnd,
		display:  display,
		logger:   logger,
		history:  metrics.NewHistory(opts.HistorySize),
	}
	if opts.Quality.Concrete() {
		e.active = opts.Quality
	}
	e.color = theme.ColorAt(0)
	e.resizeLocked(opts.Width, opts.Height)
	return e
}

func glyphSizeOr(n int) int {
	if n <= 0 {
		return grid.DefaultGlyphSize
	}
	return n
}

// resizeLocked applies new surface dimensions: the visible surface is
// reallocated and the grid rebuilt.
func (e *Engine) resizeLocked(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if e.surface == nil || e.width != w || e.height != h {
		e.surface = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	e.width, e.height = w, h
	e.rebuildLocked()
	e.logger.Infof("engine", "surface %dx%d, %d columns", w, h, e.grid.Len())
}

func (e *Engine) rebuildLocked() {
	e.grid.Rebuild(e.width, e.height, e.active)
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Width:   e.width,
		Height:  e.height,
		Quality: e.quality,
		Active:  e.active,
		Theme:   e.theme,
		Speed:   e.sched.Speed(),
		Columns: e.grid.Len(),
		FPS:     e.fps,
		Color:   e.color,
		Frames:  e.frames,
		Running: e.sched.Running(),
	}
}

// Drops returns a copy of the column drop positions.
func (e *Engine) Drops() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]int, len(e.grid.Drops))
	copy(out, e.grid.Drops)
	return out
}

// History returns the published FPS samples, oldest first.
func (e *Engine) History() []metrics.Sample {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Samples()
}

// FPSValues returns the published FPS readings, oldest first.
func (e *Engine) FPSValues() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Values()
}

// Adjustments returns every auto-quality change so far.
func (e *Engine) Adjustments() []Adjustment {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Adjustment, len(e.adjustments))
	copy(out, e.adjustments)
	return out
}
