package engine

import (
	"image"
	"image/color"
)

// Display receives the loop's outputs. Every method runs inside Tick with the
// engine lock held, so implementations must not call back into the Engine
// (Snapshot, Apply, controls); hand state to another goroutine instead.
type Display interface {
	// ShowFPS is called at most once per FPS window with "FPS: <n>".
	ShowFPS(text string)
	// ShowColor is called on every drawn frame with the active glyph colour.
	ShowColor(c color.RGBA)
	// Present is called on every drawn frame with the visible surface. The
	// image is reused by the next frame.
	Present(frame *image.RGBA)
}

type NopDisplay struct{}

func (NopDisplay) ShowFPS(string)       {}
func (NopDisplay) ShowColor(color.RGBA) {}
func (NopDisplay) Present(*image.RGBA)  {}

// MultiDisplay forwards every output to each of its displays in order.
type MultiDisplay []Display

func (m MultiDisplay) ShowFPS(text string) {
	for _, d := range m {
		d.ShowFPS(text)
	}
}

func (m MultiDisplay) ShowColor(c color.RGBA) {
	for _, d := range m {
		d.ShowColor(c)
	}
}

func (m MultiDisplay) Present(frame *image.RGBA) {
	for _, d := range m {
		d.Present(frame)
	}
}
