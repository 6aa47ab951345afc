package fbdev

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/matrixrain/internal/render"
)

// Display blits every frame onto a device, scaling when sizes differ, and
// draws the FPS readout and colour indicator in the top-left corner.
type Display struct {
	mu    sync.Mutex
	dst   draw.Image
	fps   string
	color color.RGBA
}

func NewDisplay(dst draw.Image) *Display {
	return &Display{dst: dst, fps: "FPS: --"}
}

func (d *Display) ShowFPS(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fps = text
}

func (d *Display) ShowColor(c color.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.color = c
}

func (d *Display) Present(frame *image.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if frame.Bounds().Empty() {
		return
	}
	render.Blit(d.dst, frame)
	d.overlay()
}

func (d *Display) overlay() {
	b := d.dst.Bounds()
	panel := image.Rect(b.Min.X+8, b.Min.Y+8, b.Min.X+112, b.Min.Y+30).Intersect(b)
	draw.Draw(d.dst, panel, image.NewUniform(color.RGBA{A: 0xff}), image.Point{}, draw.Src)

	swatch := image.Rect(panel.Min.X+4, panel.Min.Y+5, panel.Min.X+16, panel.Min.Y+17).Intersect(b)
	draw.Draw(d.dst, swatch, image.NewUniform(d.color), image.Point{}, draw.Src)

	dr := &font.Drawer{
		Dst:  d.dst,
		Src:  image.NewUniform(color.RGBA{0xcc, 0xcc, 0xcc, 0xff}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(panel.Min.X+22, panel.Min.Y+16),
	}
	dr.DrawString(d.fps)
}
