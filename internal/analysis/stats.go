package analysis

import (
	"math"
	"sort"

	"il-surface/internal/surface"

	"gonum.org/v1/gonum/stat"
)

// Stats summarises the IL over every finite cell of a grid.
// IL values are fractions: -0.05 is a 5% loss against holding.
type Stats struct {
	Count   int `json:"count"`
	Dropped int `json:"dropped"`

	MinIL  float64 `json:"min_il"`
	MaxIL  float64 `json:"max_il"`
	MeanIL float64 `json:"mean_il"`
	StdIL  float64 `json:"std_il"`
	P05IL  float64 `json:"p05_il"`
	P50IL  float64 `json:"p50_il"`
	P95IL  float64 `json:"p95_il"`

	// Worst is the cell with the largest loss.
	Worst surface.Point `json:"worst"`
}

func Summarize(g *surface.Grid) Stats {
	s := Stats{}
	if g == nil || len(g.Points) == 0 {
		return s
	}
	s.Count = len(g.Points)
	s.Dropped = g.Dropped

	vals := g.Values()
	s.MeanIL, s.StdIL = stat.MeanStdDev(vals, nil)
	if s.Count < 2 {
		s.StdIL = 0
	}

	minv := math.Inf(1)
	maxv := math.Inf(-1)
	for _, p := range g.Points {
		v := p.ImpermanentLoss
		if v < minv {
			minv = v
			s.Worst = p
		}
		if v > maxv {
			maxv = v
		}
	}
	s.MinIL = minv
	s.MaxIL = maxv

	sort.Float64s(vals)
	s.P05IL = percentileSorted(vals, 0.05)
	s.P50IL = percentileSorted(vals, 0.50)
	s.P95IL = percentileSorted(vals, 0.95)
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
