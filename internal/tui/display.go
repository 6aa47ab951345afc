package tui

import (
	"image"
	"image/color"
	"sync"

	"github.com/san-kum/matrixrain/internal/engine"
	"github.com/san-kum/matrixrain/internal/render"
)

// Display receives engine output for the terminal. Each presented frame is
// reduced to cols x rows*2 pixels, two per character cell.
type Display struct {
	mu    sync.Mutex
	cols  int
	rows  int
	cells *image.RGBA
	fps   string
	color color.RGBA
	tee   engine.Display
}

func NewDisplay() *Display {
	return &Display{fps: "FPS: --"}
}

// SetGrid sets the character grid frames are reduced to.
func (d *Display) SetGrid(cols, rows int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cols, d.rows = cols, rows
}

// SetTee forwards output to another display as well; nil stops forwarding.
func (d *Display) SetTee(tee engine.Display) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tee = tee
}

func (d *Display) ShowFPS(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fps = text
	if d.tee != nil {
		d.tee.ShowFPS(text)
	}
}

func (d *Display) ShowColor(c color.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.color = c
	if d.tee != nil {
		d.tee.ShowColor(c)
	}
}

func (d *Display) Present(frame *image.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tee != nil {
		d.tee.Present(frame)
	}
	if d.cols <= 0 || d.rows <= 0 || frame.Bounds().Empty() {
		return
	}
	d.cells = render.Downsample(frame, d.cols, d.rows*2)
}

// Snapshot returns the latest cell image, FPS text and glyph colour.
func (d *Display) Snapshot() (*image.RGBA, string, color.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cells, d.fps, d.color
}
