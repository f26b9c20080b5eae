package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"il-surface/internal/surface"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	wireColor  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x99}
	boxColor   = color.Gray{Y: 0xa0}
	markColor  = color.Black
	figureSize = 8 * vg.Inch
)

// projector maps price space onto the page with an orthographic camera.
// Each axis is first normalised to [0, 1] and centred.
type projector struct {
	x0, x1, y0, y1, z0, z1 float64
	sinA, cosA, sinE, cosE float64
}

func newProjector(s *surface.Surface, m Marker, o Options) projector {
	o = o.withDefaults()
	a := *o.Azimuth * math.Pi / 180
	e := *o.Elevation * math.Pi / 180
	p := projector{
		x0: s.Xs[0], x1: s.Xs[len(s.Xs)-1],
		y0: s.Ys[0], y1: s.Ys[len(s.Ys)-1],
		z0: math.Min(s.MinZ, dropFloor), z1: math.Max(s.MaxZ, m.Z),
		sinA: math.Sin(a), cosA: math.Cos(a),
		sinE: math.Sin(e), cosE: math.Cos(e),
	}
	return p
}

func norm(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (v-lo)/(hi-lo) - 0.5
}

func (p projector) project(x, y, z float64) plotter.XY {
	nx, ny, nz := norm(x, p.x0, p.x1), norm(y, p.y0, p.y1), norm(z, p.z0, p.z1)
	return plotter.XY{
		X: -nx*p.sinA + ny*p.cosA,
		Y: -(nx*p.cosA+ny*p.sinA)*p.sinE + nz*p.cosE,
	}
}

// Plot draws the surface as a wireframe seen from the configured elevation and azimuth,
// with the bounding box, axis labels, the start marker and its dashed drop line.
func Plot(s *surface.Surface, m Marker, o Options) (*plot.Plot, error) {
	if s == nil || len(s.Xs) < 2 || len(s.Ys) < 2 {
		return nil, fmt.Errorf("surface needs at least 2x2 points")
	}
	o = o.withDefaults()
	pr := newProjector(s, m, o)

	p := plot.New()
	p.Title.Text = o.Title
	p.HideAxes()

	if err := addBox(p, pr, o); err != nil {
		return nil, err
	}

	rows := strideIndices(len(s.Ys), o.Lines)
	cols := strideIndices(len(s.Xs), o.Lines)
	for _, j := range rows {
		pts := make(plotter.XYs, len(s.Xs))
		for i, x := range s.Xs {
			pts[i] = pr.project(x, s.Ys[j], s.Z[j][i])
		}
		if err := addLine(p, pts, wireColor, false); err != nil {
			return nil, err
		}
	}
	for _, i := range cols {
		pts := make(plotter.XYs, len(s.Ys))
		for j, y := range s.Ys {
			pts[j] = pr.project(s.Xs[i], y, s.Z[j][i])
		}
		if err := addLine(p, pts, wireColor, false); err != nil {
			return nil, err
		}
	}

	drop := plotter.XYs{
		pr.project(m.BasePrice, m.QuotePrice, 0),
		pr.project(m.BasePrice, m.QuotePrice, dropFloor),
	}
	if err := addLine(p, drop, markColor, true); err != nil {
		return nil, err
	}

	sc, err := plotter.NewScatter(plotter.XYs{pr.project(m.BasePrice, m.QuotePrice, m.Z)})
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Shape = draw.TriangleGlyph{}
	sc.GlyphStyle.Color = markColor
	sc.GlyphStyle.Radius = vg.Points(8)
	p.Add(sc)
	return p, nil
}

// addBox draws the floor of the bounding box and the vertical edge at the origin corner.
func addBox(p *plot.Plot, pr projector, o Options) error {
	floor := plotter.XYs{
		pr.project(pr.x0, pr.y0, pr.z0),
		pr.project(pr.x1, pr.y0, pr.z0),
		pr.project(pr.x1, pr.y1, pr.z0),
		pr.project(pr.x0, pr.y1, pr.z0),
		pr.project(pr.x0, pr.y0, pr.z0),
	}
	if err := addLine(p, floor, boxColor, false); err != nil {
		return err
	}
	edge := plotter.XYs{pr.project(pr.x0, pr.y0, pr.z0), pr.project(pr.x0, pr.y0, pr.z1)}
	if err := addLine(p, edge, boxColor, false); err != nil {
		return err
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: plotter.XYs{
			pr.project((pr.x0+pr.x1)/2, pr.y0, pr.z0),
			pr.project(pr.x0, (pr.y0+pr.y1)/2, pr.z0),
			pr.project(pr.x0, pr.y0, (pr.z0+pr.z1)/2),
		},
		Labels: []string{
			fmt.Sprintf("%s [%.5g, %.5g]", o.BaseLabel, pr.x0, pr.x1),
			fmt.Sprintf("%s [%.5g, %.5g]", o.QuoteLabel, pr.y0, pr.y1),
			fmt.Sprintf("%s [%.2f, %.2f]", o.ZLabel, pr.z0, pr.z1),
		},
	})
	if err != nil {
		return err
	}
	p.Add(labels)
	return nil
}

func addLine(p *plot.Plot, pts plotter.XYs, c color.Color, dashed bool) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(0.75)
	if dashed {
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	}
	p.Add(l)
	return nil
}

// WritePNG saves an 8x8 inch PNG, creating parent directories.
func WritePNG(path string, s *surface.Surface, m Marker, o Options) error {
	p, err := Plot(s, m, o)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(figureSize, figureSize, path)
}

// WritePNGTo streams the PNG to w.
func WritePNGTo(w io.Writer, s *surface.Surface, m Marker, o Options) error {
	p, err := Plot(s, m, o)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(figureSize, figureSize, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
