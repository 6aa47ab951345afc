// Package analysis inspects FPS histories recorded by the benchmark.
//
//   - [PowerSpectrum]: magnitude spectrum of a sample series, mean removed
//   - [DominantOscillation]: strongest periodic component, if any
//   - [Jitter]: standard deviation of the readings
//
// # Hunting Detection
//
// An auto-quality controller that keeps flipping between two levels shows up
// as a strong periodic component in its FPS history:
//
//	osc, ok := analysis.DominantOscillation(values, 500*time.Millisecond)
//	if ok && osc.Share > 0.5 {
//	    // the controller is oscillating with period osc.Period
//	}
package analysis
