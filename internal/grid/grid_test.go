package grid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/matrixrain/internal/registry"
)

type fixedSource []float64

func (f *fixedSource) Float64() float64 {
	v := (*f)[0]
	*f = (*f)[1:]
	return v
}

func TestColumnCountFormula(t *testing.T) {
	widths := []int{0, 1, 19, 20, 640, 1199, 1200, 1920, 2399, 2400, 3840, 5000}
	levels := []registry.Level{registry.High, registry.Medium, registry.Low}

	for _, w := range widths {
		for _, l := range levels {
			density := math.Max(1, math.Floor(float64(w)/1200))
			expected := int(math.Floor(float64(w) / (20 * density * registry.Quality(l).ColumnScale)))
			if got := ColumnCount(w, 20, l); got != expected {
				t.Errorf("ColumnCount(%d, %v) = %d, want %d", w, l, got, expected)
			}
			if got := DensityScale(w); got != int(density) {
				t.Errorf("DensityScale(%d) = %d, want %d", w, got, int(density))
			}
		}
	}
}

func TestRebuild_EndToEnd(t *testing.T) {
	g := New(20)
	g.Rebuild(1200, 800, registry.High)

	if DensityScale(1200) != 1 {
		t.Errorf("expected density 1")
	}
	if g.ColumnWidth != 20 {
		t.Errorf("expected column width 20, got %.1f", g.ColumnWidth)
	}
	if g.Len() != 60 {
		t.Errorf("expected 60 columns, got %d", g.Len())
	}
	for i, d := range g.Drops {
		if d != 1 {
			t.Fatalf("drop %d initialised to %d, want 1", i, d)
		}
	}
}

func TestRebuild_Quality(t *testing.T) {
	tests := []struct {
		level    registry.Level
		width    float64
		expected int
	}{
		{registry.High, 20, 96},
		{registry.Medium, 30, 64},
		{registry.Low, 40, 48},
	}

	g := New(20)
	for _, tt := range tests {
		g.Rebuild(1920, 1080, tt.level)
		if g.ColumnWidth != tt.width {
			t.Errorf("%v: expected width %.0f, got %.1f", tt.level, tt.width, g.ColumnWidth)
		}
		if g.Len() != tt.expected {
			t.Errorf("%v: expected %d columns, got %d", tt.level, tt.expected, g.Len())
		}
	}
}

func TestRebuild_Idempotent(t *testing.T) {
	g := New(20)
	g.Rebuild(2560, 1440, registry.Medium)
	first := g.Len()
	g.Drops[0] = 42
	g.Rebuild(2560, 1440, registry.Medium)

	if g.Len() != first {
		t.Errorf("rebuild changed column count: %d then %d", first, g.Len())
	}
	if g.Drops[0] != 1 {
		t.Error("rebuild should recreate drops from scratch")
	}
}

func TestRebuild_DensityStep(t *testing.T) {
	g := New(20)
	g.Rebuild(2400, 100, registry.High)
	if g.ColumnWidth != 40 {
		t.Errorf("expected width 40 at density 2, got %.1f", g.ColumnWidth)
	}
	if g.Len() != 60 {
		t.Errorf("expected 60 columns, got %d", g.Len())
	}
}

func TestAdvance_NoResetWhileVisible(t *testing.T) {
	g := New(20)
	g.Rebuild(100, 400, registry.High)

	// Every draw would trigger a reset if the trial ran.
	always := alwaysReset{}
	for tick := 0; tick < 19; tick++ {
		before := g.Drops[0]
		pos, reset := g.Advance(0, always)
		if reset {
			t.Fatalf("tick %d: reset while drop at row %d is visible", tick, before)
		}
		if pos != before+1 {
			t.Fatalf("tick %d: expected %d, got %d", tick, before+1, pos)
		}
	}

	// Row 20 is exactly at the bottom edge, still not past it.
	if g.Drops[0] != 20 || g.Offscreen(0) {
		t.Fatalf("expected drop at bottom edge, got %d", g.Drops[0])
	}
	if _, reset := g.Advance(0, always); reset {
		t.Error("drop at the bottom edge must not reset")
	}
	pos, reset := g.Advance(0, always)
	if !reset || pos != 1 {
		t.Errorf("expected reset to row 1, got pos=%d reset=%v", pos, reset)
	}
}

func TestAdvance_TrialOnlyPastBottom(t *testing.T) {
	g := New(20)
	g.Rebuild(40, 40, registry.High)
	g.Drops[0] = 3

	src := fixedSource{0.5, 0.99}
	if pos, reset := g.Advance(0, &src); reset || pos != 4 {
		t.Errorf("0.5 should not reset: pos=%d reset=%v", pos, reset)
	}
	if pos, reset := g.Advance(0, &src); !reset || pos != 1 {
		t.Errorf("0.99 should reset: pos=%d reset=%v", pos, reset)
	}
	if len(src) != 0 {
		t.Error("each off-screen advance should consume one draw")
	}
}

func TestAdvance_Monotonic(t *testing.T) {
	g := New(20)
	g.Rebuild(400, 300, registry.High)
	rnd := rand.New(rand.NewSource(7))

	for tick := 0; tick < 2000; tick++ {
		for c := range g.Drops {
			before := g.Drops[c]
			visible := !g.Offscreen(c)
			pos, reset := g.Advance(c, rnd)
			switch {
			case reset && visible:
				t.Fatalf("column %d reset inside visible area", c)
			case reset && pos != 1:
				t.Fatalf("column %d reset to %d", c, pos)
			case !reset && pos != before+1:
				t.Fatalf("column %d went %d -> %d", c, before, pos)
			}
		}
	}
}

type alwaysReset struct{}

func (alwaysReset) Float64() float64 { return 0.999 }
