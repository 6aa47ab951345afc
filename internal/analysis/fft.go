package analysis

import (
	"math"
	"math/cmplx"
	"time"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X[k]| for k in [0, n/2) after removing the mean, so
// bin 0 is always close to zero.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	centred := make([]float64, len(data))
	mean := Mean(data)
	for i, v := range data {
		centred[i] = v - mean
	}

	bins := fft.FFTReal(centred)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// Oscillation is a periodic component of a sample series.
type Oscillation struct {
	Bin    int
	Period time.Duration
	// Share is the bin's fraction of the total non-DC power.
	Share float64
}

// DominantOscillation finds the strongest periodic component of data sampled
// every interval. It reports false for series shorter than four samples or
// without any variation.
func DominantOscillation(data []float64, interval time.Duration) (Oscillation, bool) {
	if len(data) < 4 {
		return Oscillation{}, false
	}
	ps := PowerSpectrum(data)

	best, total := 0, 0.0
	for k := 1; k < len(ps); k++ {
		total += ps[k] * ps[k]
		if best == 0 || ps[k] > ps[best] {
			best = k
		}
	}
	if best == 0 || total < 1e-9 {
		return Oscillation{}, false
	}
	return Oscillation{
		Bin:    best,
		Period: time.Duration(len(data)) * interval / time.Duration(best),
		Share:  ps[best] * ps[best] / total,
	}, true
}

func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// Jitter is the population standard deviation of data.
func Jitter(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	mean := Mean(data)
	sum := 0.0
	for _, v := range data {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(len(data)))
}
