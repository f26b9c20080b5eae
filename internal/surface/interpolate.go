package surface

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"
)

// Surface is the grid resampled onto an evenly spaced mesh.
type Surface struct {
	Xs []float64   // base prices
	Ys []float64   // quote prices
	Z  [][]float64 // Z[j][i] is IL at (Xs[i], Ys[j])
	// Filled counts mesh cells outside the data that were set to the mean IL.
	Filled int
	MinZ   float64
	MaxZ   float64
	MeanZ  float64
}

// Interpolate resamples the grid onto linspace(min, max, n) along each axis, where n is the
// number of distinct prices on that axis. Values are bilinear in the grid cells; mesh
// points with no surrounding data get the mean IL of the grid.
func Interpolate(g *Grid) (*Surface, error) {
	if g == nil || len(g.Points) == 0 {
		return nil, fmt.Errorf("empty grid")
	}
	if len(g.BasePrices) < 2 || len(g.QuotePrices) < 2 {
		return nil, fmt.Errorf("grid needs at least 2 prices per axis, got %dx%d", len(g.BasePrices), len(g.QuotePrices))
	}

	xs := floats.Span(make([]float64, len(g.BasePrices)), floats.Min(g.BasePrices), floats.Max(g.BasePrices))
	ys := floats.Span(make([]float64, len(g.QuotePrices)), floats.Min(g.QuotePrices), floats.Max(g.QuotePrices))
	src := g.lattice()

	// Pass 1: along the base axis for every source quote row.
	rows := make([][]float64, len(g.QuotePrices))
	for j, row := range src {
		vals, err := resample(g.BasePrices, row, xs)
		if err != nil {
			return nil, fmt.Errorf("interpolate row %d: %w", j, err)
		}
		rows[j] = vals
	}

	// Pass 2: along the quote axis for every target base column.
	z := make([][]float64, len(ys))
	for j := range z {
		z[j] = make([]float64, len(xs))
	}
	col := make([]float64, len(g.QuotePrices))
	for i := range xs {
		for j := range rows {
			col[j] = rows[j][i]
		}
		vals, err := resample(g.QuotePrices, col, ys)
		if err != nil {
			return nil, fmt.Errorf("interpolate column %d: %w", i, err)
		}
		for j, v := range vals {
			z[j][i] = v
		}
	}

	mean := stat.Mean(g.Values(), nil)
	s := &Surface{Xs: xs, Ys: ys, Z: z, MeanZ: mean, MinZ: math.Inf(1), MaxZ: math.Inf(-1)}
	for j := range z {
		for i, v := range z[j] {
			if math.IsNaN(v) {
				z[j][i] = mean
				s.Filled++
				v = mean
			}
			s.MinZ = math.Min(s.MinZ, v)
			s.MaxZ = math.Max(s.MaxZ, v)
		}
	}
	return s, nil
}

// resample evaluates the piecewise linear function through (xs, ys) at targets.
// Targets outside [xs[0], xs[n-1]] are NaN.
func resample(xs, ys, targets []float64) ([]float64, error) {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, err
	}
	lo, hi := xs[0], xs[len(xs)-1]
	out := make([]float64, len(targets))
	for k, t := range targets {
		if t < lo || t > hi {
			out[k] = math.NaN()
			continue
		}
		out[k] = pl.Predict(t)
	}
	return out, nil
}

// At returns the surface value at the mesh cell closest to (x, y).
func (s *Surface) At(x, y float64) float64 {
	return s.Z[nearest(s.Ys, y)][nearest(s.Xs, x)]
}

func nearest(vals []float64, v float64) int {
	best := 0
	for i := range vals {
		if math.Abs(vals[i]-v) < math.Abs(vals[best]-v) {
			best = i
		}
	}
	return best
}
