package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"il-surface/internal/analysis"
	"il-surface/internal/config"
	"il-surface/internal/data"
	"il-surface/internal/model"
	"il-surface/internal/pipeline"

	"github.com/spf13/cobra"
)

var tableFlags struct {
	price     float64
	quoteFile string
	scenarios []string
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Rank base:quote percent scenarios by impermanent loss",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		scenarios, err := parseScenarios(tableFlags.scenarios)
		if err != nil {
			return err
		}
		if len(scenarios) == 0 {
			scenarios = defaultScenarios()
		}

		pair, err := pipeline.ResolvePair(cfg)
		if err != nil {
			return err
		}
		q, err := tableQuote(cfg, pair)
		if err != nil {
			return err
		}
		pos, err := model.NewPosition(cfg.Position.Value, cfg.Pair.BasePrice, q.Price*cfg.Pair.BasePrice)
		if err != nil {
			return err
		}

		ranked := analysis.RankScenarios(*pos, scenarios)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "rank\t%s %%\t%s %%\tratio\tiloss %%\tend value\t\n",
			strings.ToUpper(pair.Base.Label()), strings.ToUpper(pair.Quote.Label()))
		for _, r := range ranked {
			fmt.Fprintf(w, "%d\t%g\t%g\t%.4f\t%.2f\t%.0f\t\n",
				r.Rank, r.Scenario.BasePctChange, r.Scenario.QuotePctChange, r.Ratio, r.ImpermanentLoss*100, r.FinalValue)
		}
		return w.Flush()
	},
}

func init() {
	f := tableCmd.Flags()
	f.Float64Var(&tableFlags.price, "price", 0, "Use this quote price instead of calling the oracle")
	f.StringVar(&tableFlags.quoteFile, "quote-file", "", "Use a quote snapshot written by 'quote --save'")
	f.StringArrayVar(&tableFlags.scenarios, "scenario", nil, "base_pct:quote_pct, repeatable (default: a sweep of the quote price)")
}

func tableQuote(cfg *config.Config, pair model.Pair) (*model.Quote, error) {
	if tableFlags.quoteFile != "" {
		return data.LoadQuoteJSON(tableFlags.quoteFile)
	}
	ctx := context.Background()
	src, closer, err := pipeline.NewSource(ctx, cfg, tableFlags.price, logger)
	if err != nil {
		return nil, err
	}
	defer closer()
	return src.SpotPrice(ctx, pair)
}

func parseScenarios(specs []string) ([]model.Scenario, error) {
	out := make([]model.Scenario, 0, len(specs))
	for _, s := range specs {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("scenario %q: want base_pct:quote_pct", s)
		}
		b, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s, err)
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s, err)
		}
		out = append(out, model.Scenario{BasePctChange: b, QuotePctChange: q})
	}
	return out, nil
}

func defaultScenarios() []model.Scenario {
	pcts := []float64{-90, -75, -50, -25, -10, 10, 25, 50, 100, 200, 400}
	out := make([]model.Scenario, len(pcts))
	for i, p := range pcts {
		out[i] = model.Scenario{QuotePctChange: p}
	}
	return out
}
