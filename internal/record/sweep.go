package record

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/san-kum/matrixrain/internal/engine"
	"github.com/san-kum/matrixrain/internal/optim"
)

const (
	paramSpeed = "speed_ms"
	paramLoad  = "load_us"

	// TargetFPS is the rate a sweep point is scored against.
	TargetFPS = 60
	// ChangePenalty is the score added per quality transition.
	ChangePenalty = 10
)

// SweepSettings lists the speeds and per-column loads to combine.
type SweepSettings struct {
	Bench   BenchSettings
	Speeds  []time.Duration
	Loads   []time.Duration
	Workers int
}

type SweepPoint struct {
	Speed  time.Duration
	Load   time.Duration
	Result *BenchResult
	Score  float64
	Err    error
}

// Score rates a run: the FPS shortfall against TargetFPS plus a penalty per
// quality change. Lower is better.
func Score(r *BenchResult) float64 {
	return math.Max(0, TargetFPS-r.MeanFPS()) + ChangePenalty*float64(len(r.Adjustments))
}

// Sweep benchmarks every (speed, load) combination. build is called once per
// point so concurrent runs never share a renderer.
func Sweep(ctx context.Context, build func() (engine.Options, error), s SweepSettings) ([]SweepPoint, error) {
	g := optim.NewGridSearch(
		[]string{paramSpeed, paramLoad},
		[][]float64{inUnits(s.Speeds, time.Millisecond), inUnits(s.Loads, time.Microsecond)},
	)
	g.Workers = s.Workers

	runs := make(map[[2]float64]*BenchResult)
	var mu sync.Mutex

	results, err := g.Evaluate(ctx, func(ctx context.Context, p optim.Params) (float64, error) {
		opts, err := build()
		if err != nil {
			return 0, err
		}
		opts.Speed = time.Duration(p[paramSpeed]) * time.Millisecond
		bs := s.Bench
		bs.LoadPerColumn = time.Duration(p[paramLoad]) * time.Microsecond

		res, err := Bench(ctx, opts, bs)
		if err != nil {
			return 0, err
		}
		mu.Lock()
		runs[[2]float64{p[paramSpeed], p[paramLoad]}] = res
		mu.Unlock()
		return Score(res), nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]SweepPoint, len(results))
	for i, r := range results {
		out[i] = SweepPoint{
			Speed: time.Duration(r.Params[paramSpeed]) * time.Millisecond,
			Load:  time.Duration(r.Params[paramLoad]) * time.Microsecond,
			Score: r.Score,
			Err:   r.Err,
		}
		if r.Err == nil {
			out[i].Result = runs[[2]float64{r.Params[paramSpeed], r.Params[paramLoad]}]
		}
	}
	return out, nil
}

func inUnits(ds []time.Duration, unit time.Duration) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = float64(d / unit)
	}
	return out
}

// BestPoint returns the lowest-scoring successful point.
func BestPoint(points []SweepPoint) (SweepPoint, bool) {
	var best SweepPoint
	found := false
	for _, p := range points {
		if p.Err != nil {
			continue
		}
		if !found || p.Score < best.Score {
			best, found = p, true
		}
	}
	return best, found
}

func WriteSweep(w io.Writer, points []SweepPoint) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SPEED\tLOAD\tFINAL\tMEAN FPS\tCHANGES\tSCORE")
	for _, p := range points {
		if p.Err != nil {
			fmt.Fprintf(tw, "%v\t%v\terror: %v\t\t\t\n", p.Speed, p.Load, p.Err)
			continue
		}
		fmt.Fprintf(tw, "%v\t%v\t%s\t%.1f\t%d\t%.1f\n",
			p.Speed, p.Load, p.Result.Final.Active, p.Result.MeanFPS(), len(p.Result.Adjustments), p.Score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if best, ok := BestPoint(points); ok {
		fmt.Fprintf(w, "\nbest: speed=%v load=%v score=%.1f\n", best.Speed, best.Load, best.Score)
	}
	return nil
}
