package render

import (
	"fmt"
	"io"

	"il-surface/internal/surface"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

var viridis = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}

// Chart builds an interactive echarts-gl surface with the start marker and its drop line.
func Chart(s *surface.Surface, m Marker, o Options) (*charts.Surface3D, error) {
	if s == nil || len(s.Xs) == 0 || len(s.Ys) == 0 {
		return nil, fmt.Errorf("empty surface")
	}
	o = o.withDefaults()

	chart := charts.NewSurface3D()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Width:     "900px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: o.BaseLabel, Type: "value"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: o.QuoteLabel, Type: "value"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: o.ZLabel, Type: "value", Min: dropFloor}),
		charts.WithGrid3DOpts(opts.Grid3D{
			ViewControl: &opts.ViewControl{AutoRotate: opts.Bool(false)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Dimension:  "2",
			Min:        float32(s.MinZ),
			Max:        float32(s.MaxZ),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)

	rows := strideIndices(len(s.Ys), o.MaxPoints)
	cols := strideIndices(len(s.Xs), o.MaxPoints)
	data := make([]opts.Chart3DData, 0, len(rows)*len(cols))
	for _, j := range rows {
		for _, i := range cols {
			data = append(data, opts.Chart3DData{Value: []interface{}{s.Xs[i], s.Ys[j], s.Z[j][i]}})
		}
	}

	chart.AddSeries("impermanent loss", data, seriesType(types.ChartSurface3D))
	chart.AddSeries("start",
		[]opts.Chart3DData{{Value: []interface{}{m.BasePrice, m.QuotePrice, m.Z}}},
		seriesType(types.ChartScatter3D),
		charts.WithSeriesOpts(func(ss *charts.SingleSeries) {
			ss.Symbol = "triangle"
			ss.SymbolSize = 18
		}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "black"}),
	)
	chart.AddSeries("start drop",
		[]opts.Chart3DData{
			{Value: []interface{}{m.BasePrice, m.QuotePrice, 0}},
			{Value: []interface{}{m.BasePrice, m.QuotePrice, dropFloor}},
		},
		seriesType(types.ChartLine3D),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "black", Width: 1, Type: "dashed"}),
	)
	return chart, nil
}

// WriteHTML renders the chart as a standalone HTML page.
func WriteHTML(w io.Writer, s *surface.Surface, m Marker, o Options) error {
	chart, err := Chart(s, m, o)
	if err != nil {
		return err
	}
	return chart.Render(w)
}

// Surface3D.AddSeries registers every series as scatter3D; the type is set explicitly.
func seriesType(t string) charts.SeriesOpts {
	return charts.WithSeriesOpts(func(ss *charts.SingleSeries) {
		ss.Type = t
	})
}
