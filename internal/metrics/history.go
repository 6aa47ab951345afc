package metrics

import (
	"time"

	"github.com/san-kum/matrixrain/internal/registry"
)

// Sample is one published FPS reading together with the level in effect.
type Sample struct {
	At     time.Duration
	FPS    int
	Active registry.Level
}

// History keeps the most recent samples in a fixed-size ring.
type History struct {
	buf   []Sample
	next  int
	count int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 120
	}
	return &History{buf: make([]Sample, capacity)}
}

func (h *History) Observe(s Sample) {
	h.buf[h.next] = s
	h.next = (h.next + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

func (h *History) Len() int { return h.count }

// Samples returns the retained samples, oldest first.
func (h *History) Samples() []Sample {
	out := make([]Sample, 0, h.count)
	start := (h.next - h.count + len(h.buf)) % len(h.buf)
	for i := 0; i < h.count; i++ {
		out = append(out, h.buf[(start+i)%len(h.buf)])
	}
	return out
}

// Values returns the FPS readings, oldest first, for plotting.
func (h *History) Values() []float64 {
	samples := h.Samples()
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s.FPS)
	}
	return out
}

// Mean returns the average FPS, or 0 when empty.
func (h *History) Mean() float64 {
	if h.count == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range h.Values() {
		sum += v
	}
	return sum / float64(h.count)
}

func (h *History) Reset() {
	h.next = 0
	h.count = 0
}
