package metrics

import (
	"testing"
	"time"

	"github.com/san-kum/matrixrain/internal/registry"
)

func TestFPSWindow(t *testing.T) {
	w := NewFPSWindow(500 * time.Millisecond)
	w.Reset(time.Second)

	for i := 0; i < 30; i++ {
		w.Observe()
	}
	if _, ok := w.Sample(1400 * time.Millisecond); ok {
		t.Fatal("window should still be open at 400ms")
	}

	fps, ok := w.Sample(1500 * time.Millisecond)
	if !ok {
		t.Fatal("window should close at 500ms")
	}
	if fps != 60 {
		t.Errorf("expected 60 fps, got %d", fps)
	}
	if w.Frames() != 0 {
		t.Error("sample should reset the frame count")
	}
}

func TestFPSWindow_Rounding(t *testing.T) {
	w := NewFPSWindow(500 * time.Millisecond)
	w.Reset(0)
	for i := 0; i < 29; i++ {
		w.Observe()
	}
	// 29 frames over 510ms = 56.86
	fps, ok := w.Sample(510 * time.Millisecond)
	if !ok || fps != 57 {
		t.Errorf("expected 57, got %d (ok=%v)", fps, ok)
	}
}

func TestFPSWindow_NoDivideByZero(t *testing.T) {
	w := &FPSWindow{name: "fps"}
	w.Reset(time.Second)
	w.Observe()
	if _, ok := w.Sample(time.Second); ok {
		t.Error("zero-length window must not publish")
	}
	if _, ok := w.Sample(900 * time.Millisecond); ok {
		t.Error("negative window must not publish")
	}
}

func TestFormatFPS(t *testing.T) {
	if got := FormatFPS(58); got != "FPS: 58" {
		t.Errorf("unexpected readout %q", got)
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	levels := []registry.Level{registry.High, registry.High, registry.Low, registry.Low, registry.Medium}
	for i, l := range levels {
		h.Observe(Sample{At: time.Duration(i) * time.Second, FPS: 10 * (i + 1), Active: l})
	}

	if h.Len() != 3 {
		t.Fatalf("expected 3 retained samples, got %d", h.Len())
	}
	vals := h.Values()
	expected := []float64{30, 40, 50}
	for i := range expected {
		if vals[i] != expected[i] {
			t.Errorf("value %d: expected %.0f, got %.0f", i, expected[i], vals[i])
		}
	}
	if h.Mean() != 40 {
		t.Errorf("expected mean 40, got %f", h.Mean())
	}

	if got := h.Samples()[2].Active; got != registry.Medium {
		t.Errorf("expected newest sample at medium, got %v", got)
	}

	h.Reset()
	if h.Len() != 0 || h.Mean() != 0 {
		t.Error("reset should empty the history")
	}
}
