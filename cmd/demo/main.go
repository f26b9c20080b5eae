package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"il-surface/internal/analysis"
	"il-surface/internal/config"
	"il-surface/internal/data"
	"il-surface/internal/logging"
	"il-surface/internal/model"
	"il-surface/internal/pipeline"
	"il-surface/internal/surface"
)

// Demo:
// - Take the spot price from a quote snapshot (or --price), no network access
// - Build the reference grid (USDC pinned, ETH from 1% to 300% of spot)
// - Print the scenario report, surface statistics and a few grid rows
func main() {
	quotePath := flag.String("quote", "data/sample_quote.json", "Quote snapshot written by 'cli quote --save'")
	price := flag.Float64("price", 0, "ETH price in USDC; overrides --quote")
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	n := flag.Int("n", 5, "Number of grid rows to print")
	htmlOut := flag.String("html", "", "Optional path to write the interactive surface")
	pngOut := flag.String("png", "", "Optional path to write the wireframe plot")
	flag.Parse()

	logger, err := logging.FromEnv(false)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Default()
	if *cfgPath != "" {
		if cfg, err = config.Load(*cfgPath); err != nil {
			panic(err)
		}
	}
	cfg.Render.HTMLOut = *htmlOut
	cfg.Render.PNGOut = *pngOut
	cfg.Render.CSVOut = ""

	pair, err := pipeline.ResolvePair(cfg)
	if err != nil {
		panic(err)
	}

	var q *model.Quote
	if *price > 0 {
		q = &model.Quote{Pair: pair, Price: *price, Source: "flag", FetchedAt: time.Now().UTC()}
	} else {
		q, err = data.LoadQuoteJSON(*quotePath)
		if err != nil {
			panic(err)
		}
		fmt.Printf("Loaded %s quote from %s (%s)\n", q.Source, *quotePath, q.FetchedAt.Format(time.RFC3339))
	}

	res, err := pipeline.Analyze(cfg, pair, q)
	if err != nil {
		panic(err)
	}

	if err := analysis.Report(os.Stdout, pair, res.Outcome); err != nil {
		panic(err)
	}

	s := res.Stats
	fmt.Printf("\nGrid %dx%d, %d points (%d dropped), surface cells filled with mean: %d\n",
		len(res.Grid.BasePrices), len(res.Grid.QuotePrices), s.Count, s.Dropped, res.Surface.Filled)
	fmt.Printf("IL min=%.2f%% p05=%.2f%% p50=%.2f%% p95=%.2f%% mean=%.2f%%\n",
		s.MinIL*100, s.P05IL*100, s.P50IL*100, s.P95IL*100, s.MeanIL*100)
	fmt.Printf("Worst cell: %s=%.5f %s=%.2f\n", pair.Base.Label(), s.Worst.BasePrice, pair.Quote.Label(), s.Worst.QuotePrice)
	fmt.Printf("Surface at start: %s=%.5f %s=%.2f iloss=%.2f%%\n\n",
		pair.Base.Label(), res.Position.BasePrice, pair.Quote.Label(), res.Position.QuotePrice,
		res.Surface.At(res.Position.BasePrice, res.Position.QuotePrice)*100)

	for _, p := range sampleRows(res.Grid, *n) {
		fmt.Printf("%s=%.5f %s=%9.2f ratio=%8.4f iloss=%7.2f%%\n",
			pair.Base.Label(), p.BasePrice, pair.Quote.Label(), p.QuotePrice, p.Ratio, p.ImpermanentLoss*100)
	}

	if err := pipeline.WriteOutputs(res, cfg.Render, logger); err != nil {
		panic(err)
	}
}

// sampleRows walks the quote axis at the first base price, returning at most n evenly
// spaced points. n <= 0 returns none.
func sampleRows(g *surface.Grid, n int) []surface.Point {
	if n <= 0 {
		return nil
	}
	step := len(g.QuotePrices) / n
	if step < 1 {
		step = 1
	}
	var out []surface.Point
	for i := 0; i < len(g.Points) && i < len(g.QuotePrices); i += step {
		out = append(out, g.Points[i])
	}
	return out
}
