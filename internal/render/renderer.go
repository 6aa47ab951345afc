package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/matrixrain/internal/grid"
	"github.com/san-kum/matrixrain/internal/logging"
	"github.com/san-kum/matrixrain/internal/registry"
)

// Rand is the randomness consumed per frame; *rand.Rand satisfies it.
type Rand interface {
	grid.Source
	Intn(n int) int
}

// Renderer draws rain frames into an offscreen buffer and copies the result
// onto the visible surface, so the fade and glyph passes never tear.
type Renderer struct {
	face     *Face
	alphabet Alphabet
	buf      *image.RGBA
	Logger   logging.Logger
}

// New builds a renderer for face. If the face cannot draw the preferred
// alphabet the Latin one is used instead.
func New(face *Face, preferred Alphabet, logger logging.Logger) *Renderer {
	logger = logging.OrNoop(logger)
	if face == nil {
		face = BasicFace()
	}
	alphabet := preferred
	if len(alphabet.Runes) == 0 {
		alphabet = Katakana
	}
	if !face.Covers(alphabet.Runes) {
		logger.Errorf("render", "face %s lacks %s glyphs, using %s", face.Name, alphabet.Name, Latin.Name)
		alphabet = Latin
	}
	logger.Infof("render", "face=%s alphabet=%s", face.Name, alphabet.Name)
	return &Renderer{face: face, alphabet: alphabet, Logger: logger}
}

func (r *Renderer) Alphabet() Alphabet { return r.alphabet }

// Buffer returns the offscreen buffer, nil before the first frame.
func (r *Renderer) Buffer() *image.RGBA { return r.buf }

// ensureBuffer (re)creates the buffer when the surface size changes. A new
// buffer starts out transparent black, dropping any trails.
func (r *Renderer) ensureBuffer(bounds image.Rectangle) {
	size := bounds.Size()
	if r.buf != nil && r.buf.Bounds().Size() == size {
		return
	}
	r.buf = image.NewRGBA(image.Rectangle{Max: size})
	r.Logger.Infof("render", "buffer %dx%d", size.X, size.Y)
}

// RenderFrame draws one tick of the rain and advances every column.
func (r *Renderer) RenderFrame(dst draw.Image, g *grid.Grid, q registry.QualityParams, glyph color.RGBA, rnd Rand) {
	r.ensureBuffer(dst.Bounds())

	// Partial repaint: older glyphs fade by TrailAlpha per frame.
	fade := registry.Background
	fade.A = alpha8(q.TrailAlpha)
	draw.Draw(r.buf, r.buf.Bounds(), image.NewUniform(color.NRGBA(fade)), image.Point{}, draw.Over)

	glyph.A = 0xff
	d := &font.Drawer{
		Dst:  r.buf,
		Src:  image.NewUniform(glyph),
		Face: r.face,
	}
	n := len(r.alphabet.Runes)
	for col := 0; col < g.Len(); col++ {
		ch := r.alphabet.Runes[rnd.Intn(n)]
		d.Dot = fixed.P(g.X(col), g.Y(col))
		d.DrawString(string(ch))
		g.Advance(col, rnd)
	}

	draw.Draw(dst, dst.Bounds(), r.buf, image.Point{}, draw.Src)
}

func alpha8(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 0xff))
}
