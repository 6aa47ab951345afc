// Package grid tracks the fall position of every glyph column.
package grid

import (
	"math"

	"github.com/san-kum/matrixrain/internal/registry"
)

const (
	// DefaultGlyphSize is the glyph height and base column width in pixels.
	DefaultGlyphSize = 20

	// DensityStep is the surface width per extra density multiplier.
	DensityStep = 1200

	// ResetThreshold: a column past the bottom edge restarts when a uniform
	// draw in [0,1) exceeds it, i.e. with probability 0.025 per tick.
	ResetThreshold = 0.975
)

// Source is the randomness the grid consumes; *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Grid holds one drop position (in rows) per column.
type Grid struct {
	GlyphSize   int
	Width       int
	Height      int
	Level       registry.Level
	ColumnWidth float64
	Drops       []int
}

func New(glyphSize int) *Grid {
	if glyphSize <= 0 {
		glyphSize = DefaultGlyphSize
	}
	return &Grid{GlyphSize: glyphSize, ColumnWidth: float64(glyphSize)}
}

// DensityScale is a coarse step function of the surface width.
func DensityScale(width int) int {
	return max(1, width/DensityStep)
}

// ColumnWidth returns the pixel width of one column.
func ColumnWidth(width, glyphSize int, level registry.Level) float64 {
	return float64(glyphSize) * float64(DensityScale(width)) * registry.Quality(level).ColumnScale
}

// ColumnCount returns how many whole columns fit into width.
func ColumnCount(width, glyphSize int, level registry.Level) int {
	if width <= 0 {
		return 0
	}
	return int(math.Floor(float64(width) / ColumnWidth(width, glyphSize, level)))
}

// Rebuild recomputes the column layout and reallocates every drop at row 1.
// It must follow any change of width, height or active level.
func (g *Grid) Rebuild(width, height int, level registry.Level) {
	g.Width = width
	g.Height = height
	g.Level = level
	g.ColumnWidth = ColumnWidth(width, g.GlyphSize, level)
	drops := make([]int, ColumnCount(width, g.GlyphSize, level))
	for i := range drops {
		drops[i] = 1
	}
	g.Drops = drops
}

// Len returns the number of columns.
func (g *Grid) Len() int { return len(g.Drops) }

// X returns the left pixel edge of column col.
func (g *Grid) X(col int) int { return int(float64(col) * g.ColumnWidth) }

// Y returns the baseline pixel row of column col's current drop.
func (g *Grid) Y(col int) int { return g.Drops[col] * g.GlyphSize }

// Offscreen reports whether column col has scrolled past the bottom edge.
func (g *Grid) Offscreen(col int) bool {
	return g.Drops[col]*g.GlyphSize > g.Height
}

// Advance moves column col down one row. Once the drop is below the visible
// area every call runs an independent reset trial; a successful trial restarts
// the column at the top before the increment.
func (g *Grid) Advance(col int, rnd Source) (pos int, reset bool) {
	if g.Offscreen(col) && rnd.Float64() > ResetThreshold {
		g.Drops[col] = 0
		reset = true
	}
	g.Drops[col]++
	return g.Drops[col], reset
}
