package analysis

import (
	"math"
	"testing"
	"time"
)

func TestDominantOscillation(t *testing.T) {
	// Period of 8 samples over 64 samples: bin 8.
	data := make([]float64, 64)
	for i := range data {
		data[i] = 45 + 15*math.Sin(2*math.Pi*float64(i)/8)
	}

	osc, ok := DominantOscillation(data, 500*time.Millisecond)
	if !ok {
		t.Fatal("expected an oscillation")
	}
	if osc.Bin != 8 {
		t.Errorf("expected bin 8, got %d", osc.Bin)
	}
	if osc.Period != 4*time.Second {
		t.Errorf("expected a 4s period, got %v", osc.Period)
	}
	if osc.Share < 0.9 {
		t.Errorf("a pure tone should dominate, share %.3f", osc.Share)
	}
}

func TestDominantOscillation_Flat(t *testing.T) {
	tests := []struct {
		name string
		data []float64
	}{
		{"empty", nil},
		{"short", []float64{60, 30, 60}},
		{"constant", []float64{60, 60, 60, 60, 60, 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := DominantOscillation(tt.data, time.Second); ok {
				t.Error("expected no oscillation")
			}
		})
	}
}

func TestPowerSpectrum_RemovesMean(t *testing.T) {
	ps := PowerSpectrum([]float64{10, 12, 10, 12, 10, 12, 10, 12})
	if len(ps) != 4 {
		t.Fatalf("expected 4 bins, got %d", len(ps))
	}
	if ps[0] > 1e-9 {
		t.Errorf("DC bin should be empty, got %v", ps[0])
	}
}

func TestJitter(t *testing.T) {
	if got := Jitter([]float64{50, 50, 50}); got != 0 {
		t.Errorf("constant series jitter = %v", got)
	}
	if got := Jitter([]float64{40, 60}); math.Abs(got-10) > 1e-9 {
		t.Errorf("expected 10, got %v", got)
	}
	if Mean(nil) != 0 || Jitter(nil) != 0 {
		t.Error("empty input should give 0")
	}
}
