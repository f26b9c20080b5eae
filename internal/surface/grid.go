package surface

import (
	"fmt"
	"math"
	"time"

	"il-surface/internal/metrics"
	"il-surface/internal/model"
)

// Point is one hypothetical end state of the position.
type Point struct {
	Index           int
	BasePrice       float64
	QuotePrice      float64
	Ratio           float64
	ImpermanentLoss float64
}

// Grid is IL evaluated on every (base price, quote price) combination of two axes.
type Grid struct {
	Position    model.Position
	BasePrices  []float64
	QuotePrices []float64
	// Points holds the finite cells only, base-major order.
	Points []Point
	// Dropped counts cells whose IL was not finite.
	Dropped int
}

// Build evaluates IL on the cartesian product of the two axes.
func Build(pos *model.Position, baseAxis, quoteAxis Axis) (*Grid, error) {
	if pos == nil {
		return nil, fmt.Errorf("position is nil")
	}
	if baseAxis == nil || quoteAxis == nil {
		return nil, fmt.Errorf("axis is nil")
	}
	bases, err := baseAxis.Values(pos.BasePrice)
	if err != nil {
		return nil, err
	}
	quotes, err := quoteAxis.Values(pos.QuotePrice)
	if err != nil {
		return nil, err
	}

	if err := checkIncreasing("base", bases); err != nil {
		return nil, err
	}
	if err := checkIncreasing("quote", quotes); err != nil {
		return nil, err
	}

	g := &Grid{
		Position:    *pos,
		BasePrices:  bases,
		QuotePrices: quotes,
		Points:      make([]Point, 0, len(bases)*len(quotes)),
	}
	for i, pxB := range bases {
		for j, pxQ := range quotes {
			ratio := model.PriceRatio(pos.BasePrice, pxB, pos.QuotePrice, pxQ)
			il := model.ImpermanentLoss(ratio)
			if math.IsNaN(il) || math.IsInf(il, 0) {
				g.Dropped++
				continue
			}
			g.Points = append(g.Points, Point{
				Index:           i*len(quotes) + j,
				BasePrice:       pxB,
				QuotePrice:      pxQ,
				Ratio:           ratio,
				ImpermanentLoss: il,
			})
		}
	}
	if len(g.Points) == 0 {
		return nil, fmt.Errorf("grid has no finite points")
	}
	return g, nil
}

// Values returns the IL of every finite point.
func (g *Grid) Values() []float64 {
	out := make([]float64, len(g.Points))
	for i, p := range g.Points {
		out[i] = p.ImpermanentLoss
	}
	return out
}

// lattice lays the points back onto the full axis product; dropped cells are NaN.
// Indexed [quote][base].
func (g *Grid) lattice() [][]float64 {
	nq := len(g.QuotePrices)
	z := make([][]float64, nq)
	for j := range z {
		z[j] = make([]float64, len(g.BasePrices))
		for i := range z[j] {
			z[j][i] = math.NaN()
		}
	}
	for _, p := range g.Points {
		i, j := p.Index/nq, p.Index%nq
		z[j][i] = p.ImpermanentLoss
	}
	return z
}

// Compute builds the grid and its interpolated surface in one step.
func Compute(pos *model.Position, baseAxis, quoteAxis Axis) (*Grid, *Surface, error) {
	start := time.Now()
	defer func() { metrics.SurfaceBuildDuration.Observe(time.Since(start).Seconds()) }()

	g, err := Build(pos, baseAxis, quoteAxis)
	if err != nil {
		return nil, nil, err
	}
	s, err := Interpolate(g)
	if err != nil {
		return nil, nil, err
	}
	return g, s, nil
}

func checkIncreasing(axis string, vals []float64) error {
	for i := 1; i < len(vals); i++ {
		if !(vals[i] > vals[i-1]) {
			return fmt.Errorf("%s axis is not strictly increasing at step %d (%g after %g)", axis, i, vals[i], vals[i-1])
		}
	}
	return nil
}
