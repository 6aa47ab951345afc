package optim

import (
	"context"
	"errors"
	"math"

	"golang.org/x/sync/errgroup"
)

var ErrNoResult = errors.New("no grid point evaluated successfully")

// Params holds one grid point, keyed by parameter name.
type Params map[string]float64

// Objective scores a grid point; lower is better.
type Objective func(ctx context.Context, p Params) (float64, error)

type Result struct {
	Params Params
	Score  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64

	// Workers bounds concurrent evaluations; values below 1 mean one.
	Workers int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Points enumerates the grid in order, the last parameter varying fastest.
func (g *GridSearch) Points() []Params {
	var out []Params
	g.pointsRecursive(0, Params{}, &out)
	return out
}

func (g *GridSearch) pointsRecursive(depth int, current Params, out *[]Params) {
	if depth == len(g.paramNames) || depth == len(g.ranges) {
		p := make(Params, len(current))
		for k, v := range current {
			p[k] = v
		}
		*out = append(*out, p)
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		g.pointsRecursive(depth+1, current, out)
	}
	delete(current, name)
}

// Evaluate scores every point, at most Workers at a time. Results keep the
// order of Points; a failed point carries its error instead of aborting the
// search.
func (g *GridSearch) Evaluate(ctx context.Context, obj Objective) ([]Result, error) {
	points := g.Points()
	results := make([]Result, len(points))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, g.Workers))
	for i, p := range points {
		i, p := i, p
		if egctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			score, err := obj(egctx, p)
			results[i] = Result{Params: p, Score: score, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Search returns the lowest-scoring point.
func (g *GridSearch) Search(ctx context.Context, obj Objective) (Params, float64, error) {
	results, err := g.Evaluate(ctx, obj)
	if err != nil {
		return nil, 0, err
	}
	best, ok := Best(results)
	if !ok {
		return nil, 0, ErrNoResult
	}
	return best.Params, best.Score, nil
}

// Best picks the lowest score among successful results. Ties keep the
// earlier point.
func Best(results []Result) (Result, bool) {
	best := Result{Score: math.Inf(1)}
	found := false
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found || r.Score < best.Score {
			best = r
			found = true
		}
	}
	return best, found
}
