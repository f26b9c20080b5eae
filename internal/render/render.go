package render

import (
	"math"

	"il-surface/internal/model"
)

// Options controls titles, labels and the camera of the rendered surface.
type Options struct {
	Title      string
	BaseLabel  string
	QuoteLabel string
	ZLabel     string
	// Elevation and Azimuth are the view angles in degrees; nil means 25 and -165.
	Elevation *float64
	Azimuth   *float64
	// Lines caps the number of wireframe lines per axis (PNG).
	Lines int
	// MaxPoints caps the number of mesh points per axis (HTML).
	MaxPoints int
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Impermanent Loss Surface"
	}
	if o.ZLabel == "" {
		o.ZLabel = "Impermanent loss"
	}
	if o.Elevation == nil {
		o.Elevation = Degrees(25)
	}
	if o.Azimuth == nil {
		o.Azimuth = Degrees(-165)
	}
	if o.Lines <= 1 {
		o.Lines = 50
	}
	if o.MaxPoints <= 1 {
		o.MaxPoints = 100
	}
	return o
}

// Degrees returns a pointer to a view angle.
func Degrees(v float64) *float64 { return &v }

// Marker is the start state drawn over the surface.
type Marker struct {
	BasePrice  float64
	QuotePrice float64
	Z          float64
}

// markerHeight lifts the start marker just above the zero-loss plane.
const markerHeight = 0.05

// dropFloor is the bottom of the dashed line under the marker.
const dropFloor = -1.0

func StartMarker(pos model.Position) Marker {
	return Marker{BasePrice: pos.BasePrice, QuotePrice: pos.QuotePrice, Z: markerHeight}
}

// strideIndices picks at most max indices out of n, always keeping the first and last.
func strideIndices(n, max int) []int {
	if n <= 0 {
		return nil
	}
	if n <= max || max < 2 {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	step := int(math.Ceil(float64(n-1) / float64(max-1)))
	out := make([]int, 0, max)
	for i := 0; i < n-1; i += step {
		out = append(out, i)
	}
	return append(out, n-1)
}
