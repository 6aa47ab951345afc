package optim

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoints(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{{1, 2}, {10, 20, 30}})
	points := g.Points()

	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}
	if points[0]["a"] != 1 || points[0]["b"] != 10 {
		t.Errorf("unexpected first point %v", points[0])
	}
	if points[1]["a"] != 1 || points[1]["b"] != 20 {
		t.Errorf("last parameter should vary fastest, got %v", points[1])
	}
	if points[5]["a"] != 2 || points[5]["b"] != 30 {
		t.Errorf("unexpected last point %v", points[5])
	}
}

func TestPoints_Empty(t *testing.T) {
	g := NewGridSearch([]string{"a"}, [][]float64{{}})
	if n := len(g.Points()); n != 0 {
		t.Errorf("empty range should produce no points, got %d", n)
	}
}

func TestSearch(t *testing.T) {
	g := NewGridSearch([]string{"x", "y"}, [][]float64{{-2, 0, 3}, {1, 5}})
	g.Workers = 4

	var calls atomic.Int32
	obj := func(ctx context.Context, p Params) (float64, error) {
		calls.Add(1)
		return p["x"]*p["x"] + p["y"], nil
	}

	params, score, err := g.Search(context.Background(), obj)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if params["x"] != 0 || params["y"] != 1 || score != 1 {
		t.Errorf("expected x=0 y=1 score 1, got %v score %v", params, score)
	}
	if calls.Load() != 6 {
		t.Errorf("expected 6 evaluations, got %d", calls.Load())
	}
}

func TestEvaluate_KeepsOrderAndErrors(t *testing.T) {
	g := NewGridSearch([]string{"x"}, [][]float64{{1, 2, 3}})
	g.Workers = 3
	boom := errors.New("boom")

	results, err := g.Evaluate(context.Background(), func(ctx context.Context, p Params) (float64, error) {
		if p["x"] == 2 {
			return 0, boom
		}
		return p["x"], nil
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	for i, r := range results {
		if r.Params["x"] != float64(i+1) {
			t.Errorf("result %d out of order: %v", i, r.Params)
		}
	}
	if !errors.Is(results[1].Err, boom) {
		t.Errorf("expected failure on the second point, got %v", results[1].Err)
	}

	best, ok := Best(results)
	if !ok || best.Params["x"] != 1 {
		t.Errorf("failed points must be skipped, got %v", best)
	}
}

func TestSearch_AllFailed(t *testing.T) {
	g := NewGridSearch([]string{"x"}, [][]float64{{1}})
	_, _, err := g.Search(context.Background(), func(ctx context.Context, p Params) (float64, error) {
		return 0, errors.New("nope")
	})
	if !errors.Is(err, ErrNoResult) {
		t.Errorf("expected ErrNoResult, got %v", err)
	}
}

func TestEvaluate_Cancelled(t *testing.T) {
	g := NewGridSearch([]string{"x"}, [][]float64{{1, 2}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Evaluate(ctx, func(ctx context.Context, p Params) (float64, error) { return 0, nil }); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEvaluate_RespectsWorkerLimit(t *testing.T) {
	g := NewGridSearch([]string{"x"}, [][]float64{{1, 2, 3, 4, 5, 6, 7, 8}})
	g.Workers = 2

	var running, peak atomic.Int32
	results, err := g.Evaluate(context.Background(), func(ctx context.Context, p Params) (float64, error) {
		n := running.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return p["x"], nil
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(results) != 8 {
		t.Fatalf("expected 8 results, got %d", len(results))
	}
	if got := peak.Load(); got > 2 || got < 1 {
		t.Errorf("expected at most 2 concurrent evaluations, saw %d", got)
	}
}
