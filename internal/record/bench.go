package record

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/matrixrain/internal/analysis"
	"github.com/san-kum/matrixrain/internal/engine"
	"github.com/san-kum/matrixrain/internal/metrics"
)

// BenchSettings describes a benchmark run.
type BenchSettings struct {
	// Duration of simulated time to run.
	Duration time.Duration
	// Vsync is the refresh period frames are rounded up to.
	Vsync time.Duration
	// LoadPerColumn adds simulated render cost for every column each frame.
	LoadPerColumn time.Duration
}

type BenchResult struct {
	Frames      int
	Interval    time.Duration
	Simulated   time.Duration
	Wall        time.Duration
	Samples     []metrics.Sample
	Adjustments []engine.Adjustment
	Final       engine.State
}

// HuntingShare is the spectral share above which an FPS oscillation is
// reported.
const HuntingShare = 0.5

// untilSource ends src once its timestamps pass end.
type untilSource struct {
	src  engine.FrameSource
	end  time.Duration
	last time.Duration
}

func (s *untilSource) NextFrame(ctx context.Context) (time.Duration, error) {
	ts, err := s.src.NextFrame(ctx)
	if err != nil {
		return 0, err
	}
	if ts > s.end {
		return 0, engine.ErrSourceDone
	}
	s.last = ts
	return ts, nil
}

// Bench runs a fresh engine on a vsync clock charged with real render time
// plus the simulated load, so the auto controller sees realistic frame rates.
func Bench(ctx context.Context, opts engine.Options, s BenchSettings) (*BenchResult, error) {
	if s.Vsync <= 0 {
		s.Vsync = time.Second / 60
	}
	if s.Duration <= 0 {
		s.Duration = 10 * time.Second
	}
	interval := opts.FPSInterval
	if interval <= 0 {
		interval = metrics.DefaultFPSInterval
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = int(s.Duration/interval) + 2
	}

	e := engine.New(opts)
	vsync := &engine.VsyncSource{Interval: s.Vsync}
	if s.LoadPerColumn > 0 {
		vsync.Load = func() time.Duration {
			return time.Duration(e.Snapshot().Columns) * s.LoadPerColumn
		}
	}
	src := &untilSource{src: vsync, end: s.Duration}

	start := time.Now()
	if err := e.Run(ctx, src); err != nil {
		return nil, err
	}

	final := e.Snapshot()
	return &BenchResult{
		Frames:      final.Frames,
		Interval:    interval,
		Simulated:   src.last,
		Wall:        time.Since(start),
		Samples:     e.History(),
		Adjustments: e.Adjustments(),
		Final:       final,
	}, nil
}

// Values returns the FPS readings for plotting.
func (r *BenchResult) Values() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = float64(s.FPS)
	}
	return out
}

// MeanFPS averages the published readings, 0 when there are none.
func (r *BenchResult) MeanFPS() float64 {
	if len(r.Samples) == 0 {
		return 0
	}
	sum := 0
	for _, s := range r.Samples {
		sum += s.FPS
	}
	return float64(sum) / float64(len(r.Samples))
}

func (r *BenchResult) WriteReport(w io.Writer) error {
	fmt.Fprintf(w, "frames: %d  simulated: %v  wall: %v\n", r.Frames, r.Simulated, r.Wall.Round(time.Millisecond))
	fmt.Fprintf(w, "final: quality=%s active=%s columns=%d fps=%d\n\n",
		r.Final.Quality, r.Final.Active, r.Final.Columns, r.Final.FPS)

	fmt.Fprintln(w, "samples:")
	for _, s := range r.Samples {
		fmt.Fprintf(w, "  t=%6.2fs  fps=%3d  %s\n", s.At.Seconds(), s.FPS, s.Active)
	}

	fmt.Fprintln(w, "\ntransitions:")
	if len(r.Adjustments) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, a := range r.Adjustments {
		fmt.Fprintf(w, "  t=%6.2fs  fps=%3d  %s -> %s\n", a.At.Seconds(), a.FPS, a.From, a.To)
	}

	values := r.Values()
	fmt.Fprintf(w, "\njitter: %.1f fps\n", analysis.Jitter(values))
	if osc, ok := analysis.DominantOscillation(values, r.Interval); ok && osc.Share >= HuntingShare {
		fmt.Fprintf(w, "oscillation: period %v (%.0f%% of variation)\n", osc.Period, osc.Share*100)
	}

	if len(values) > 1 {
		chart := asciigraph.Plot(values, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("FPS"))
		fmt.Fprintf(w, "\n%s\n", chart)
	}
	return nil
}
