package main

import (
	"context"
	"os"

	"il-surface/internal/analysis"
	"il-surface/internal/config"
	"il-surface/internal/pipeline"

	"github.com/spf13/cobra"
)

var simulateFlags struct {
	price    float64
	value    float64
	basePct  float64
	quotePct float64
	base     string
	quote    string
	csvOut   string
	htmlOut  string
	pngOut   string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Fetch the spot price, build the IL surface and estimate the end value",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applySimulateFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		pair, err := pipeline.ResolvePair(cfg)
		if err != nil {
			return err
		}

		ctx := context.Background()
		src, closer, err := pipeline.NewSource(ctx, cfg, simulateFlags.price, logger)
		if err != nil {
			return err
		}
		defer closer()

		res, err := pipeline.Run(ctx, src, cfg, pair)
		if err != nil {
			return err
		}
		logger.Sugar().Infow("surface built",
			"pair", pair.String(),
			"points", res.Stats.Count,
			"dropped", res.Stats.Dropped,
			"filled", res.Surface.Filled,
			"min_il", res.Stats.MinIL,
		)

		if err := analysis.Report(os.Stdout, pair, res.Outcome); err != nil {
			return err
		}
		return pipeline.WriteOutputs(res, cfg.Render, logger)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.Float64Var(&simulateFlags.price, "price", 0, "Use this quote price (in base tokens) instead of calling the oracle")
	f.Float64Var(&simulateFlags.value, "value", 0, "Start value of the position")
	f.Float64Var(&simulateFlags.basePct, "base-pct", 0, "Base price change in percent")
	f.Float64Var(&simulateFlags.quotePct, "quote-pct", 0, "Quote price change in percent")
	f.StringVar(&simulateFlags.base, "base", "", "Base token symbol or address")
	f.StringVar(&simulateFlags.quote, "quote", "", "Quote token symbol or address")
	f.StringVar(&simulateFlags.csvOut, "csv", "", "Write the IL grid as CSV")
	f.StringVar(&simulateFlags.htmlOut, "html", "", "Write an interactive 3D surface (HTML)")
	f.StringVar(&simulateFlags.pngOut, "png", "", "Write a wireframe plot (PNG)")
}

// applySimulateFlags overlays only the flags the user set, so a 0% move can override the config.
func applySimulateFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("value") {
		cfg.Position.Value = simulateFlags.value
	}
	if f.Changed("base-pct") {
		cfg.Position.BasePctChange = simulateFlags.basePct
	}
	if f.Changed("quote-pct") {
		cfg.Position.QuotePctChange = simulateFlags.quotePct
	}
	if f.Changed("base") {
		cfg.Pair.Base = simulateFlags.base
		cfg.Render.BaseLabel = "Price " + simulateFlags.base
	}
	if f.Changed("quote") {
		cfg.Pair.Quote = simulateFlags.quote
		cfg.Render.QuoteLabel = "Price " + simulateFlags.quote
	}
	if f.Changed("csv") {
		cfg.Render.CSVOut = simulateFlags.csvOut
	}
	if f.Changed("html") {
		cfg.Render.HTMLOut = simulateFlags.htmlOut
	}
	if f.Changed("png") {
		cfg.Render.PNGOut = simulateFlags.pngOut
	}
}
