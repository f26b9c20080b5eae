package main

import (
	"context"
	"fmt"

	"il-surface/internal/data"
	"il-surface/internal/pipeline"

	"github.com/spf13/cobra"
)

var quoteSave string

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print the spot price of the configured pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pair, err := pipeline.ResolvePair(cfg)
		if err != nil {
			return err
		}

		ctx := context.Background()
		src, closer, err := pipeline.NewSource(ctx, cfg, 0, logger)
		if err != nil {
			return err
		}
		defer closer()

		q, err := src.SpotPrice(ctx, pair)
		if err != nil {
			return err
		}
		fmt.Printf("%s %.6f (%s, in %s out %s)\n", pair, q.Price, q.Source, q.AmountIn, q.AmountOut)

		if quoteSave != "" {
			if err := data.SaveQuoteJSON(quoteSave, q); err != nil {
				return err
			}
			fmt.Printf("Saved quote to %s\n", quoteSave)
		}
		return nil
	},
}

func init() {
	quoteCmd.Flags().StringVar(&quoteSave, "save", "", "Write the quote as JSON to this path")
}
